package adaptor

import (
	"encoding/json"
	"net/http"

	"gym-management/internal/dto/request"
	"gym-management/internal/usecase"
	"gym-management/pkg/utils"

	"go.uber.org/zap"
)

type AttendanceHandler struct {
	service usecase.AttendanceService
	log     *zap.Logger
}

func NewAttendanceHandler(service usecase.AttendanceService, log *zap.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		log:     log,
	}
}

// Scan handles POST /api/attendance/scan
func (h *AttendanceHandler) Scan(w http.ResponseWriter, r *http.Request) {
	gymID, ok := gymIDFromRequest(w, r)
	if !ok {
		return
	}

	var req request.ScanRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Scan(r.Context(), gymID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "scan")
		return
	}

	utils.ResponseSuccess(w, resp.Message, resp)
}

// List handles GET /api/attendance
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	gymID, ok := gymIDFromRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.List(
		r.Context(),
		gymID,
		r.URL.Query().Get("date"),
		utils.ParseInt(r.URL.Query().Get("page"), 1),
		utils.ParseInt(r.URL.Query().Get("page_size"), 20),
	)
	if err != nil {
		writeServiceError(w, h.log, err, "list attendance")
		return
	}

	utils.ResponseSuccess(w, "Attendance retrieved", resp)
}
