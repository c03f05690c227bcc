package adaptor

import (
	"encoding/json"
	"net/http"

	"gym-management/internal/dto/request"
	"gym-management/internal/usecase"
	"gym-management/pkg/middleware"
	"gym-management/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

// SendSignupOTP handles POST /api/auth/send-signup-otp
func (h *AuthHandler) SendSignupOTP(w http.ResponseWriter, r *http.Request) {
	var req request.SendSignupOTPRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.SendSignupOTP(r.Context(), &req); err != nil {
		writeServiceError(w, h.log, err, "send signup OTP")
		return
	}

	utils.ResponseSuccess(w, "Verification code sent", nil)
}

// VerifySignupOTP handles POST /api/auth/verify-signup-otp
func (h *AuthHandler) VerifySignupOTP(w http.ResponseWriter, r *http.Request) {
	var req request.VerifySignupOTPRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.VerifySignupOTP(r.Context(), &req); err != nil {
		writeServiceError(w, h.log, err, "verify signup OTP")
		return
	}

	utils.ResponseSuccess(w, "Email verified", nil)
}

// RegisterFinalize handles POST /api/auth/register-finalize
func (h *AuthHandler) RegisterFinalize(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterFinalizeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.RegisterFinalize(r.Context(), &req, r.UserAgent(), middleware.ClientIP(r))
	if err != nil {
		writeServiceError(w, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "Gym registered", resp)
}

// RegisterCancel handles POST /api/auth/register-cancel
func (h *AuthHandler) RegisterCancel(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterCancelRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.RegisterCancel(r.Context(), &req); err != nil {
		writeServiceError(w, h.log, err, "cancel registration")
		return
	}

	utils.ResponseSuccess(w, "Registration cancelled", nil)
}

// CheckSlug handles POST /api/gym/check-slug
func (h *AuthHandler) CheckSlug(w http.ResponseWriter, r *http.Request) {
	var req request.CheckSlugRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.CheckSlug(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "check slug")
		return
	}

	utils.ResponseSuccess(w, "Slug checked", resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Login(r.Context(), &req, r.UserAgent(), middleware.ClientIP(r))
	if err != nil {
		writeServiceError(w, h.log, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", resp)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Invalid session")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		writeServiceError(w, h.log, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}

// ForgotPasswordSend handles POST /api/auth/forgot-password/send-otp
func (h *AuthHandler) ForgotPasswordSend(w http.ResponseWriter, r *http.Request) {
	var req request.ForgotPasswordSendRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.ForgotPasswordSend(r.Context(), &req); err != nil {
		writeServiceError(w, h.log, err, "send reset OTP")
		return
	}

	utils.ResponseSuccess(w, "If the email exists, a reset code has been sent", nil)
}

// ForgotPasswordVerify handles POST /api/auth/forgot-password/verify-otp
func (h *AuthHandler) ForgotPasswordVerify(w http.ResponseWriter, r *http.Request) {
	var req request.ForgotPasswordVerifyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.ForgotPasswordVerify(r.Context(), &req); err != nil {
		writeServiceError(w, h.log, err, "verify reset OTP")
		return
	}

	utils.ResponseSuccess(w, "Code verified", nil)
}

// ForgotPasswordReset handles POST /api/auth/forgot-password/reset
func (h *AuthHandler) ForgotPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req request.ForgotPasswordResetRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.ForgotPasswordReset(r.Context(), &req); err != nil {
		writeServiceError(w, h.log, err, "reset password")
		return
	}

	utils.ResponseSuccess(w, "Password reset successful", nil)
}

// ChangePassword handles POST /api/settings/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetAdminIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Invalid session")
		return
	}

	var req request.ChangePasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.ChangePassword(r.Context(), adminID.String(), &req, r.UserAgent(), middleware.ClientIP(r))
	if err != nil {
		writeServiceError(w, h.log, err, "change password")
		return
	}

	utils.ResponseSuccess(w, "Password changed", resp)
}
