package response

import (
	"time"

	"gym-management/internal/data/entity"
)

type GymSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type GymSettings struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	OwnerName   string    `json:"owner_name"`
	OwnerEmail  string    `json:"owner_email"`
	OwnerPhone  string    `json:"owner_phone"`
	TrialEndsAt time.Time `json:"trial_ends_at"`
}

type AdminProfile struct {
	ID    string           `json:"id"`
	Email string           `json:"email"`
	Role  entity.AdminRole `json:"role"`
	Gym   GymSummary       `json:"gym"`
}

type DashboardStats struct {
	TotalMembers  int64 `json:"total_members"`
	ActiveMembers int64 `json:"active_members"`
	ExpiringSoon  int64 `json:"expiring_soon"`
	TodayCheckIns int64 `json:"today_check_ins"`
}

type SlugAvailability struct {
	Available bool `json:"available"`
}

func GymToSummary(gym *entity.Gym) GymSummary {
	return GymSummary{
		ID:   gym.ID.String(),
		Name: gym.Name,
		Slug: gym.Slug,
	}
}

func GymToSettings(gym *entity.Gym) GymSettings {
	return GymSettings{
		ID:          gym.ID.String(),
		Name:        gym.Name,
		Slug:        gym.Slug,
		OwnerName:   gym.OwnerName,
		OwnerEmail:  gym.OwnerEmail,
		OwnerPhone:  gym.OwnerPhone,
		TrialEndsAt: gym.TrialEndsAt,
	}
}
