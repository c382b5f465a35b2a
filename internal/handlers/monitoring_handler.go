package handlers

import (
	"net/http"

	"ops-backend/internal/monitoring"
	"ops-backend/pkg/utils"
)

// MonitoringHandler exposes the runtime stats snapshot.
type MonitoringHandler struct {
	collector *monitoring.Collector
}

func NewMonitoringHandler(collector *monitoring.Collector) *MonitoringHandler {
	return &MonitoringHandler{collector: collector}
}

// Stats handles GET /api/monitoring/stats
func (h *MonitoringHandler) Stats(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.collector.Collect())
}
