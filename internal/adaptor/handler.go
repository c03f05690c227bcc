package adaptor

import (
	"errors"
	"net/http"

	"gym-management/internal/usecase"
	"gym-management/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth       *AuthHandler
	Member     *MemberHandler
	Attendance *AttendanceHandler
	Gym        *GymHandler
	Reminder   *ReminderHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Auth, log),
		Member:     NewMemberHandler(service.Member, log),
		Attendance: NewAttendanceHandler(service.Attendance, log),
		Gym:        NewGymHandler(service.Gym, log),
		Reminder:   NewReminderHandler(service.Reminder, log),
	}
}

// writeServiceError maps a service error onto the response envelope. Services
// return typed errors; anything untyped is treated as internal.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, action string) {
	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		log.Error("Unexpected error", zap.Error(err), zap.String("action", action))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	switch appErr.Code {
	case utils.CodeValidation:
		utils.ResponseBadRequest(w, appErr.Message, nil)
	case utils.CodeUnauthorized:
		utils.ResponseUnauthorized(w, appErr.Message)
	case utils.CodeForbidden:
		utils.ResponseForbidden(w, appErr.Message)
	case utils.CodeNotFound:
		utils.ResponseNotFound(w, appErr.Message)
	case utils.CodeConflict:
		utils.ResponseConflict(w, appErr.Message)
	case utils.CodeGone:
		utils.ResponseGone(w, appErr.Message)
	case utils.CodeRateLimited:
		utils.ResponseTooManyRequests(w, appErr.Message)
	default:
		log.Error("Internal error", zap.Error(err), zap.String("action", action))
		utils.ResponseInternalError(w, appErr.Message)
	}
}

// gymIDFromRequest pulls the tenant scope placed by the auth middleware.
func gymIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	gymID, ok := utils.GetGymIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Invalid session")
		return uuid.Nil, false
	}
	return gymID, true
}
