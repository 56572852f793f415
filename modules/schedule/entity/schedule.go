package entity

import (
	"time"

	"github.com/google/uuid"
)

// Schedule is one committed calendar entry of a user (meeting, task
// session, course session). All entries count as busy for free-slot
// queries, including completed ones.
type Schedule struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	Location    *string   `db:"location" json:"location,omitempty"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	IsCompleted bool      `db:"is_completed" json:"is_completed"`
	CalendarID  *string   `db:"calendar_id" json:"calendar_id,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
