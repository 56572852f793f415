package entity

import "time"

// FreeSlot is a maximal common free interval that survived the
// minimum-duration filter. Output-only; never mutated after creation.
type FreeSlot struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	DayOfWeek       string    `json:"day_of_week"`
}

// FreeSlotResult is the assembled outcome of one query.
type FreeSlotResult struct {
	ParticipantCount int        `json:"participant_count"`
	FreeSlots        []FreeSlot `json:"free_slots"`
}
