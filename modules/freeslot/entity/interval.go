package entity

import "time"

// TimeInterval is a half-open time range [Start, End). Instants are
// compared as absolute times, independent of their Location.
type TimeInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports whether two half-open intervals share any instant.
func (i TimeInterval) Overlaps(o TimeInterval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

// Clip returns the portion of i inside bounds, and whether any portion
// remains.
func (i TimeInterval) Clip(bounds TimeInterval) (TimeInterval, bool) {
	start := i.Start
	if bounds.Start.After(start) {
		start = bounds.Start
	}
	end := i.End
	if bounds.End.Before(end) {
		end = bounds.End
	}
	if !start.Before(end) {
		return TimeInterval{}, false
	}
	return TimeInterval{Start: start, End: end}, true
}

// BusyInterval is a committed time range attributed to one participant.
type BusyInterval struct {
	ParticipantID string `json:"participant_id"`
	TimeInterval
}

// Participant is a group member taking part in a free-slot query, carrying
// the busy intervals gathered from the schedule collaborators.
type Participant struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Busy []TimeInterval `json:"busy"`
}
