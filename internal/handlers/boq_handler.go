package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"ops-backend/internal/models"
	"ops-backend/internal/repositories"
	"ops-backend/internal/services"
	"ops-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// BOQHandler handles BOQ document endpoints.
type BOQHandler struct {
	service *services.BOQService
}

func NewBOQHandler(service *services.BOQService) *BOQHandler {
	return &BOQHandler{service: service}
}

// List handles GET /api/boqs
func (h *BOQHandler) List(w http.ResponseWriter, r *http.Request) {
	boqs, err := h.service.ListBOQs(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list boqs")
		return
	}

	if boqs == nil {
		boqs = []*models.BOQ{}
	}
	utils.JSON(w, http.StatusOK, boqs)
}

// Get handles GET /api/boqs/{id}
func (h *BOQHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	boq, err := h.service.GetBOQ(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "boq not found")
		return
	}
	utils.JSON(w, http.StatusOK, boq)
}

// Update handles PUT /api/boqs/{id}
func (h *BOQHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.UpdateBOQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	boq, err := h.service.UpdateBOQ(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, "boq not found")
		return
	}
	utils.JSON(w, http.StatusOK, boq)
}

// Recalculate handles POST /api/boqs/{id}/recalculate
func (h *BOQHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	boq, err := h.service.RecalculateBOQ(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "boq not found")
		return
	}
	utils.JSON(w, http.StatusOK, boq)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.Error(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, repositories.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, notFoundMsg)
		return
	}
	utils.Error(w, http.StatusInternalServerError, "internal server error")
}
