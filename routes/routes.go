package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lchou/hoopstats/handlers"
	"github.com/lchou/hoopstats/middleware"
)

func SetupRoutes(
	router *chi.Mux,
	logger *slog.Logger,
	recordHandler *handlers.RecordHandler,
	playerHandler *handlers.PlayerHandler,
	statsHandler *handlers.StatsHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/records", func(r chi.Router) {
		r.Get("/", recordHandler.ListRecords)
		r.Post("/", recordHandler.CreateRecord)
		r.Put("/reconcile", recordHandler.ReconcileRecords)
		r.Get("/export", recordHandler.ExportRecords)
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.ListPlayers)
		r.Post("/", playerHandler.RegisterPlayer)

		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", playerHandler.GetPlayer)
			r.Put("/", playerHandler.UpdatePlayer)
			r.Delete("/", playerHandler.DeletePlayer)
			r.Post("/photo", playerHandler.UploadPhoto)
			r.Get("/photo", playerHandler.GetPhoto)
			r.Get("/summary", statsHandler.GetPlayerSummary)
			r.Get("/trend", statsHandler.GetPlayerTrend)
		})
	})

	router.Get("/stats/compare", statsHandler.ComparePlayers)
}
