package response

import "time"

type ReminderGymResult struct {
	GymID        string `json:"gym_id"`
	GymName      string `json:"gym_name"`
	OwnerEmail   string `json:"owner_email"`
	ExpiredToday int    `json:"expired_today"`
	ExpiringSoon int    `json:"expiring_soon"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

type ReminderRunResponse struct {
	TotalGyms    int                 `json:"total_gyms"`
	TotalMembers int                 `json:"total_members"`
	EmailsSent   int                 `json:"emails_sent"`
	EmailsFailed int                 `json:"emails_failed"`
	Manual       bool                `json:"manual"`
	Timestamp    time.Time           `json:"timestamp"`
	Results      []ReminderGymResult `json:"results"`
}

type ReminderStatusResponse struct {
	ExpiringSoonCount int64      `json:"expiring_soon_count"`
	ExpiredTodayCount int64      `json:"expired_today_count"`
	LastRunAt         *time.Time `json:"last_run_at"`
	LastRunManual     bool       `json:"last_run_manual"`
}
