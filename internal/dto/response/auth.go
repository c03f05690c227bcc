package response

import (
	"time"

	"gym-management/internal/data/entity"
)

type AuthResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	AdminID   string     `json:"admin_id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Gym       GymSummary `json:"gym"`
}

func AuthToResponse(admin *entity.AdminUser, gym *entity.Gym, session *entity.Session) *AuthResponse {
	resp := &AuthResponse{
		AdminID: admin.ID.String(),
		Email:   admin.Email,
		Role:    string(admin.Role),
		Gym:     GymToSummary(gym),
	}

	if session != nil {
		resp.Token = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}
