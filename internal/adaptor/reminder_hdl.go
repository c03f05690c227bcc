package adaptor

import (
	"net/http"

	"gym-management/internal/usecase"
	"gym-management/pkg/utils"

	"go.uber.org/zap"
)

type ReminderHandler struct {
	service usecase.ReminderService
	log     *zap.Logger
}

func NewReminderHandler(service usecase.ReminderService, log *zap.Logger) *ReminderHandler {
	return &ReminderHandler{
		service: service,
		log:     log,
	}
}

// Run handles POST /api/reminders/run. The gate middleware admits either an
// admin session or the scheduler's shared secret; a session present in the
// context marks the run as manual.
func (h *ReminderHandler) Run(w http.ResponseWriter, r *http.Request) {
	_, manual := utils.GetAdminIDFromContext(r.Context())

	resp, err := h.service.Run(r.Context(), manual)
	if err != nil {
		writeServiceError(w, h.log, err, "run reminders")
		return
	}

	utils.ResponseSuccess(w, "Reminder run finished", resp)
}

// Status handles GET /api/reminders/status
func (h *ReminderHandler) Status(w http.ResponseWriter, r *http.Request) {
	gymID, ok := gymIDFromRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Status(r.Context(), gymID)
	if err != nil {
		writeServiceError(w, h.log, err, "reminder status")
		return
	}

	utils.ResponseSuccess(w, "Status retrieved", resp)
}
