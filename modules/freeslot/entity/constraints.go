package entity

import (
	"fmt"
	"time"

	"timelink/core/errors"
)

// SearchConstraints bounds a free-slot query: the date window, the daily
// working-hour envelope, the allowed weekdays and the minimum usable
// duration. Dates and hours are interpreted in Location.
type SearchConstraints struct {
	StartDate        time.Time // midnight of the first day, in Location
	EndDate          time.Time // midnight of the last day (inclusive), in Location
	MinDuration      time.Duration
	WorkStartMinutes int // minutes after midnight
	WorkEndMinutes   int
	DaysOfWeek       map[int]bool // ISO weekdays, 1=Monday .. 7=Sunday
	Location         *time.Location
}

// Validate fails fast on any malformed constraint, before computation.
func (c SearchConstraints) Validate() *errors.AppError {
	if c.Location == nil {
		return errors.NewAppError(errors.ErrInvalidConstraints, "timezone is required", nil)
	}
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return errors.NewAppError(errors.ErrInvalidConstraints, "startDate and endDate are required", nil)
	}
	if c.EndDate.Before(c.StartDate) {
		return errors.NewAppError(errors.ErrInvalidConstraints, "endDate must not be before startDate", nil)
	}
	if c.MinDuration <= 0 {
		return errors.NewAppError(errors.ErrInvalidConstraints, "minDurationMinutes must be positive", nil)
	}
	if c.WorkStartMinutes < 0 || c.WorkEndMinutes > 24*60 || c.WorkStartMinutes >= c.WorkEndMinutes {
		return errors.NewAppError(errors.ErrInvalidConstraints, "workingHoursStart must be before workingHoursEnd", nil)
	}
	if len(c.DaysOfWeek) == 0 {
		return errors.NewAppError(errors.ErrInvalidConstraints, "daysOfWeek must not be empty", nil)
	}
	for d := range c.DaysOfWeek {
		if d < 1 || d > 7 {
			return errors.NewAppError(errors.ErrInvalidConstraints,
				fmt.Sprintf("daysOfWeek contains invalid weekday %d", d), nil)
		}
	}
	return nil
}

// Window returns the full search window [startDate 00:00, day after
// endDate 00:00) used to clip busy intervals.
func (c SearchConstraints) Window() TimeInterval {
	return TimeInterval{
		Start: c.StartDate,
		End:   c.EndDate.AddDate(0, 0, 1),
	}
}

// DayAllowed reports whether the given date's weekday is selected.
func (c SearchConstraints) DayAllowed(date time.Time) bool {
	return c.DaysOfWeek[ISOWeekday(date)]
}

// WorkdayWindow is the working-hour envelope of one calendar date.
// time.Date normalises minute overflow, so DST transitions resolve to real
// local instants.
func (c SearchConstraints) WorkdayWindow(date time.Time) TimeInterval {
	y, m, d := date.Date()
	return TimeInterval{
		Start: time.Date(y, m, d, 0, c.WorkStartMinutes, 0, 0, c.Location),
		End:   time.Date(y, m, d, 0, c.WorkEndMinutes, 0, 0, c.Location),
	}
}

// ISOWeekday maps time.Weekday onto ISO-8601 numbering (1=Monday..7=Sunday).
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
