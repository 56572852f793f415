package dto

import (
	"fmt"
	"time"

	"timelink/core/errors"
	"timelink/modules/freeslot/entity"
)

// ===================== Request DTOs =====================

// BusyScheduleInput is one committed time range of a participant,
// ISO 8601 / RFC 3339 encoded.
type BusyScheduleInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ParticipantInput carries a participant and their busy schedules inline.
type ParticipantInput struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	BusySchedules []BusyScheduleInput `json:"busySchedules"`
}

// FindFreeSlotsRequest is the self-contained query: the caller supplies
// every participant's busy schedules directly.
type FindFreeSlotsRequest struct {
	Participants       []ParticipantInput `json:"participants"`
	StartDate          string             `json:"startDate"` // YYYY-MM-DD
	EndDate            string             `json:"endDate"`   // YYYY-MM-DD, inclusive
	MinDurationMinutes int                `json:"minDurationMinutes"`
	WorkingHoursStart  string             `json:"workingHoursStart"` // HH:mm
	WorkingHoursEnd    string             `json:"workingHoursEnd"`   // HH:mm
	DaysOfWeek         []int              `json:"daysOfWeek"`        // 1=Monday .. 7=Sunday
	Timezone           string             `json:"timezone,omitempty"`
}

// GroupFindFreeSlotsRequest is the group-based query: membership and busy
// schedules are resolved server-side. Working hours and weekdays fall back
// to configured defaults when omitted.
type GroupFindFreeSlotsRequest struct {
	GroupID            int64    `json:"groupId"`
	UserIDs            []string `json:"userIds,omitempty"` // subset of members; empty = all
	StartDate          string   `json:"startDate"`
	EndDate            string   `json:"endDate"`
	MinDurationMinutes int      `json:"minDurationMinutes"`
	WorkingHoursStart  string   `json:"workingHoursStart,omitempty"`
	WorkingHoursEnd    string   `json:"workingHoursEnd,omitempty"`
	DaysOfWeek         []int    `json:"daysOfWeek,omitempty"`
	Timezone           string   `json:"timezone,omitempty"`
}

// ===================== Response DTOs =====================

type SearchPeriodDTO struct {
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
	MinDurationMinutes int    `json:"minDurationMinutes"`
}

type FreeSlotDTO struct {
	StartTime       string `json:"startTime"` // ISO 8601
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	DayOfWeek       string `json:"dayOfWeek"`
}

type FindFreeSlotsResponse struct {
	ParticipantCount    int             `json:"participantCount"`
	SearchPeriod        SearchPeriodDTO `json:"searchPeriod"`
	FreeSlots           []FreeSlotDTO   `json:"freeSlots"`
	TotalFreeSlotsFound int             `json:"totalFreeSlotsFound"`
}

type GroupFindFreeSlotsResponse struct {
	GroupID             int64           `json:"groupId"`
	GroupName           string          `json:"groupName"`
	MemberCount         int             `json:"memberCount"`
	SearchPeriod        SearchPeriodDTO `json:"searchPeriod"`
	FreeSlots           []FreeSlotDTO   `json:"freeSlots"`
	TotalFreeSlotsFound int             `json:"totalFreeSlotsFound"`
}

// ===================== Mapping =====================

// ConstraintFields is the subset shared by both request shapes.
type ConstraintFields struct {
	StartDate          string
	EndDate            string
	MinDurationMinutes int
	WorkingHoursStart  string
	WorkingHoursEnd    string
	DaysOfWeek         []int
	Timezone           string
}

// ToSearchConstraints parses the wire fields into engine constraints.
// Malformed dates, hours or timezone fail with INVALID_CONSTRAINTS; range
// and emptiness rules are enforced by SearchConstraints.Validate.
func ToSearchConstraints(f ConstraintFields) (entity.SearchConstraints, *errors.AppError) {
	var c entity.SearchConstraints

	loc, err := time.LoadLocation(f.Timezone)
	if err != nil {
		return c, errors.NewAppError(errors.ErrInvalidConstraints,
			fmt.Sprintf("unknown timezone %q", f.Timezone), err)
	}

	start, err := time.ParseInLocation("2006-01-02", f.StartDate, loc)
	if err != nil {
		return c, errors.NewAppError(errors.ErrInvalidConstraints,
			fmt.Sprintf("invalid startDate %q", f.StartDate), err)
	}
	end, err := time.ParseInLocation("2006-01-02", f.EndDate, loc)
	if err != nil {
		return c, errors.NewAppError(errors.ErrInvalidConstraints,
			fmt.Sprintf("invalid endDate %q", f.EndDate), err)
	}

	workStart, appErr := parseClock(f.WorkingHoursStart)
	if appErr != nil {
		return c, appErr
	}
	workEnd, appErr := parseClock(f.WorkingHoursEnd)
	if appErr != nil {
		return c, appErr
	}

	days := make(map[int]bool, len(f.DaysOfWeek))
	for _, d := range f.DaysOfWeek {
		days[d] = true
	}

	c = entity.SearchConstraints{
		StartDate:        start,
		EndDate:          end,
		MinDuration:      time.Duration(f.MinDurationMinutes) * time.Minute,
		WorkStartMinutes: workStart,
		WorkEndMinutes:   workEnd,
		DaysOfWeek:       days,
		Location:         loc,
	}
	if appErr := c.Validate(); appErr != nil {
		return entity.SearchConstraints{}, appErr
	}
	return c, nil
}

// ToParticipants parses inline participant busy schedules. Timestamps that
// do not parse are treated as corrupt upstream data.
func ToParticipants(inputs []ParticipantInput) ([]entity.Participant, *errors.AppError) {
	out := make([]entity.Participant, 0, len(inputs))
	for _, in := range inputs {
		p := entity.Participant{
			ID:   in.ID,
			Name: in.Name,
			Busy: make([]entity.TimeInterval, 0, len(in.BusySchedules)),
		}
		for _, s := range in.BusySchedules {
			start, err := time.Parse(time.RFC3339, s.Start)
			if err != nil {
				return nil, errors.NewAppError(errors.ErrInvalidInterval,
					fmt.Sprintf("participant %s has unparseable schedule start %q", in.ID, s.Start), err)
			}
			end, err := time.Parse(time.RFC3339, s.End)
			if err != nil {
				return nil, errors.NewAppError(errors.ErrInvalidInterval,
					fmt.Sprintf("participant %s has unparseable schedule end %q", in.ID, s.End), err)
			}
			p.Busy = append(p.Busy, entity.TimeInterval{Start: start, End: end})
		}
		out = append(out, p)
	}
	return out, nil
}

// ToFreeSlotDTOs formats engine output for the wire.
func ToFreeSlotDTOs(slots []entity.FreeSlot) []FreeSlotDTO {
	out := make([]FreeSlotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, FreeSlotDTO{
			StartTime:       s.StartTime.Format(time.RFC3339),
			EndTime:         s.EndTime.Format(time.RFC3339),
			DurationMinutes: s.DurationMinutes,
			DayOfWeek:       s.DayOfWeek,
		})
	}
	return out
}

func parseClock(v string) (int, *errors.AppError) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrInvalidConstraints,
			fmt.Sprintf("invalid working hours value %q, expected HH:mm", v), err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
