package handlers

import (
	"net/http"

	"github.com/lchou/hoopstats/services"
)

type RecordHandler struct {
	recordService services.RecordService
}

func NewRecordHandler(rs services.RecordService) *RecordHandler {
	return &RecordHandler{
		recordService: rs,
	}
}

func (h *RecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var input services.CreateRecordInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	record, err := h.recordService.Add(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"record": record}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListRecords returns the full record set, or one player's working set
// when the player query parameter is present.
func (h *RecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("player")

	records, err := h.recordService.WorkingSet(r.Context(), player)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"records": records}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RecordHandler) ReconcileRecords(w http.ResponseWriter, r *http.Request) {
	var input services.ReconcileInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.recordService.Reconcile(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"result": result}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportRecords serves the record file itself, byte for byte, as a
// downloadable backup.
func (h *RecordHandler) ExportRecords(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="basketball_data.csv"`)
	http.ServeFile(w, r, h.recordService.ExportFilePath())
}
