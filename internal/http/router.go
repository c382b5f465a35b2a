package http

import (
	"ops-backend/internal/handlers"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	boqHandler *handlers.BOQHandler,
	costReportHandler *handlers.CostReportHandler,
	monitoringHandler *handlers.MonitoringHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Health and metrics
	r.HandleFunc("/health", healthHandler.Check).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// BOQ documents
	boqAPI := r.PathPrefix("/api/boqs").Subrouter()
	boqAPI.HandleFunc("", boqHandler.List).Methods("GET")
	boqAPI.HandleFunc("/{id:[0-9]+}", boqHandler.Get).Methods("GET")
	boqAPI.HandleFunc("/{id:[0-9]+}", boqHandler.Update).Methods("PUT")
	boqAPI.HandleFunc("/{id:[0-9]+}/recalculate", boqHandler.Recalculate).Methods("POST")

	// Cost reports
	reportAPI := r.PathPrefix("/api/cost-reports").Subrouter()
	reportAPI.HandleFunc("", costReportHandler.List).Methods("GET")
	reportAPI.HandleFunc("/{id:[0-9]+}", costReportHandler.Get).Methods("GET")
	reportAPI.HandleFunc("/{id:[0-9]+}", costReportHandler.Update).Methods("PUT")
	reportAPI.HandleFunc("/{id:[0-9]+}/recalculate", costReportHandler.Recalculate).Methods("POST")

	// Runtime stats
	r.HandleFunc("/api/monitoring/stats", monitoringHandler.Stats).Methods("GET")

	return r
}
