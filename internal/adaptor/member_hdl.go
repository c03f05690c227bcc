package adaptor

import (
	"encoding/json"
	"net/http"

	"gym-management/internal/dto/request"
	"gym-management/internal/usecase"
	"gym-management/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MemberHandler struct {
	service usecase.MemberService
	log     *zap.Logger
}

func NewMemberHandler(service usecase.MemberService, log *zap.Logger) *MemberHandler {
	return &MemberHandler{
		service: service,
		log:     log,
	}
}

// List handles GET /api/members
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	gymID, ok := gymIDFromRequest(w, r)
	if !ok {
		return
	}

	query := request.ListMembersQuery{
		Search:   r.URL.Query().Get("search"),
		Status:   r.URL.Query().Get("status"),
		Page:     utils.ParseInt(r.URL.Query().Get("page"), 1),
		PageSize: utils.ParseInt(r.URL.Query().Get("page_size"), 20),
	}

	resp, err := h.service.List(r.Context(), gymID, &query)
	if err != nil {
		writeServiceError(w, h.log, err, "list members")
		return
	}

	utils.ResponseSuccess(w, "Members retrieved", resp)
}

// Create handles POST /api/members
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	gymID, ok := gymIDFromRequest(w, r)
	if !ok {
		return
	}

	var req request.CreateMemberRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Create(r.Context(), gymID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create member")
		return
	}

	utils.ResponseCreated(w, "Member created", resp)
}

// Get handles GET /api/members/{id}
func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	gymID, ok := gymIDFromRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Get(r.Context(), gymID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get member")
		return
	}

	utils.ResponseSuccess(w, "Member retrieved", resp)
}

// Update handles PATCH /api/members/{id}
func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	gymID, ok := gymIDFromRequest(w, r)
	if !ok {
		return
	}

	var req request.UpdateMemberRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Update(r.Context(), gymID, chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update member")
		return
	}

	utils.ResponseSuccess(w, "Member updated", resp)
}

// Delete handles DELETE /api/members/{id}
func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	gymID, ok := gymIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), gymID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "delete member")
		return
	}

	utils.ResponseSuccess(w, "Member deleted", nil)
}

// Renew handles POST /api/members/{id}/renew
func (h *MemberHandler) Renew(w http.ResponseWriter, r *http.Request) {
	gymID, ok := gymIDFromRequest(w, r)
	if !ok {
		return
	}

	var req request.RenewMemberRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Renew(r.Context(), gymID, chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "renew member")
		return
	}

	utils.ResponseSuccess(w, "Membership renewed", resp)
}

// Attendance handles GET /api/members/{id}/attendance
func (h *MemberHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	gymID, ok := gymIDFromRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Attendance(r.Context(), gymID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "member attendance")
		return
	}

	utils.ResponseSuccess(w, "Attendance retrieved", resp)
}
