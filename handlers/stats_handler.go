package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lchou/hoopstats/services"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(ss services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: ss,
	}
}

func (h *StatsHandler) GetPlayerSummary(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	summary, err := h.statsService.PlayerSummary(r.Context(), name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"summary": summary}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) GetPlayerTrend(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	trend, err := h.statsService.PlayerTrend(r.Context(), name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"trend": trend}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ComparePlayers returns per-player trend series for the comma-separated
// players query parameter.
func (h *StatsHandler) ComparePlayers(w http.ResponseWriter, r *http.Request) {
	names := strings.Split(r.URL.Query().Get("players"), ",")

	series, err := h.statsService.Compare(r.Context(), names)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"series": series}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
