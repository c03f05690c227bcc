package entity

import "time"

// ReminderLog records one reminder dispatch run for display purposes.
type ReminderLog struct {
	BaseSimple
	RunAt         time.Time `db:"run_at"`
	Manual        bool      `db:"manual"`
	GymsProcessed int       `db:"gyms_processed"`
	EmailsSent    int       `db:"emails_sent"`
	EmailsFailed  int       `db:"emails_failed"`
}
