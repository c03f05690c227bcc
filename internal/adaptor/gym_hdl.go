package adaptor

import (
	"encoding/json"
	"net/http"

	"gym-management/internal/dto/request"
	"gym-management/internal/usecase"
	"gym-management/pkg/utils"

	"go.uber.org/zap"
)

type GymHandler struct {
	service usecase.GymService
	log     *zap.Logger
}

func NewGymHandler(service usecase.GymService, log *zap.Logger) *GymHandler {
	return &GymHandler{
		service: service,
		log:     log,
	}
}

// Settings handles GET /api/settings/gym
func (h *GymHandler) Settings(w http.ResponseWriter, r *http.Request) {
	gymID, ok := gymIDFromRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Settings(r.Context(), gymID)
	if err != nil {
		writeServiceError(w, h.log, err, "gym settings")
		return
	}

	utils.ResponseSuccess(w, "Settings retrieved", resp)
}

// UpdateSettings handles PUT /api/settings/gym
func (h *GymHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	gymID, ok := gymIDFromRequest(w, r)
	if !ok {
		return
	}

	var req request.UpdateGymRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.UpdateSettings(r.Context(), gymID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update gym settings")
		return
	}

	utils.ResponseSuccess(w, "Settings updated", resp)
}

// AdminProfile handles GET /api/settings/admin
func (h *GymHandler) AdminProfile(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetAdminIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Invalid session")
		return
	}

	resp, err := h.service.AdminProfile(r.Context(), adminID)
	if err != nil {
		writeServiceError(w, h.log, err, "admin profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved", resp)
}

// DashboardStats handles GET /api/dashboard/stats
func (h *GymHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	gymID, ok := gymIDFromRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.DashboardStats(r.Context(), gymID)
	if err != nil {
		writeServiceError(w, h.log, err, "dashboard stats")
		return
	}

	utils.ResponseSuccess(w, "Stats retrieved", resp)
}
