package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"ops-backend/internal/models"
	"ops-backend/internal/services"
	"ops-backend/pkg/utils"
)

// CostReportHandler handles cost report endpoints.
type CostReportHandler struct {
	service *services.CostReportService
}

func NewCostReportHandler(service *services.CostReportService) *CostReportHandler {
	return &CostReportHandler{service: service}
}

// List handles GET /api/cost-reports
func (h *CostReportHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.ListReports(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list cost reports")
		return
	}

	if reports == nil {
		reports = []*models.CostReport{}
	}
	utils.JSON(w, http.StatusOK, reports)
}

// Get handles GET /api/cost-reports/{id}
func (h *CostReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	report, err := h.service.GetReport(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "cost report not found")
		return
	}
	utils.JSON(w, http.StatusOK, report)
}

// Update handles PUT /api/cost-reports/{id}
func (h *CostReportHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.UpdateCostReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.service.UpdateReport(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, "cost report not found")
		return
	}
	utils.JSON(w, http.StatusOK, report)
}

// Recalculate handles POST /api/cost-reports/{id}/recalculate
// The body is optional; an empty body keeps existing actuals.
func (h *CostReportHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.RecalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.service.Recalculate(r.Context(), id, req.ResetActuals)
	if err != nil {
		writeServiceError(w, err, "cost report not found")
		return
	}
	utils.JSON(w, http.StatusOK, report)
}
