package entity

import (
	"time"

	"github.com/google/uuid"
)

// CalendarConnection is a user's subscription to an external calendar
// feed (university timetable, shared team calendar) whose events count as
// busy time in free-slot queries.
type CalendarConnection struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Provider  string    `db:"provider" json:"provider"` // e.g. "ecampus", "ics"
	FeedURL   string    `db:"feed_url" json:"feed_url"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
