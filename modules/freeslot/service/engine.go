package service

import (
	"fmt"
	"sort"
	"time"

	"timelink/core/errors"
	"timelink/modules/freeslot/entity"
)

// Engine computes the time intervals where every participant is
// simultaneously free, inside the working-hour envelope of the allowed
// weekdays. It holds no state; every query is an independent pure
// computation, so concurrent queries need no coordination.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// FindFreeSlots runs the full pipeline: constraint validation, busy-interval
// extraction, per-participant availability, intersection, minimum-duration
// filtering and result assembly. Invalid constraints or a corrupt busy
// interval fail the whole query before any result is produced.
func (e *Engine) FindFreeSlots(c entity.SearchConstraints, participants []entity.Participant) (*entity.FreeSlotResult, *errors.AppError) {
	if appErr := c.Validate(); appErr != nil {
		return nil, appErr
	}
	if len(participants) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidConstraints, "at least one participant is required", nil)
	}

	window := c.Window()

	// Extract and validate everyone's busy intervals up front so a bad
	// record rejects the query even when the intersection would have
	// emptied out earlier.
	busyByParticipant := make([][]entity.TimeInterval, len(participants))
	for i, p := range participants {
		busy, appErr := e.extractBusy(p, window)
		if appErr != nil {
			return nil, appErr
		}
		busyByParticipant[i] = busy
	}

	var common []entity.TimeInterval
	for i := range participants {
		free := e.availability(c, busyByParticipant[i])
		if i == 0 {
			common = free
		} else {
			common = intersectIntervals(common, free)
		}
		if len(common) == 0 {
			common = nil
			break
		}
	}

	slots := make([]entity.FreeSlot, 0, len(common))
	for _, iv := range common {
		minutes := int(iv.Duration() / time.Minute)
		if time.Duration(minutes)*time.Minute < c.MinDuration {
			continue
		}
		start := iv.Start.In(c.Location)
		slots = append(slots, entity.FreeSlot{
			StartTime:       start,
			EndTime:         iv.End.In(c.Location),
			DurationMinutes: minutes,
			DayOfWeek:       start.Weekday().String(),
		})
	}

	// The sweep already yields chronological order; sorting is kept as a
	// post-condition guard.
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})

	return &entity.FreeSlotResult{
		ParticipantCount: len(participants),
		FreeSlots:        slots,
	}, nil
}

// extractBusy validates a participant's busy intervals, clips them to the
// search window and merges overlapping or adjacent ranges.
func (e *Engine) extractBusy(p entity.Participant, window entity.TimeInterval) ([]entity.TimeInterval, *errors.AppError) {
	out := make([]entity.TimeInterval, 0, len(p.Busy))
	for _, b := range p.Busy {
		if !b.Start.Before(b.End) {
			return nil, errors.NewAppError(errors.ErrInvalidInterval,
				fmt.Sprintf("participant %s has a busy interval with start >= end", p.ID), nil)
		}
		if clipped, ok := b.Clip(window); ok {
			out = append(out, clipped)
		}
	}
	return mergeIntervals(out), nil
}

// availability computes one participant's free time: for each allowed date,
// the workday window minus the participant's busy intervals. A busy block
// spanning midnight is clipped independently against each day's window.
func (e *Engine) availability(c entity.SearchConstraints, busy []entity.TimeInterval) []entity.TimeInterval {
	var free []entity.TimeInterval
	for d := c.StartDate; !d.After(c.EndDate); d = d.AddDate(0, 0, 1) {
		if !c.DayAllowed(d) {
			continue
		}
		free = append(free, subtractIntervals(c.WorkdayWindow(d), busy)...)
	}
	return free
}

// mergeIntervals sorts by start and coalesces overlapping or adjacent
// intervals into maximal disjoint ranges.
func mergeIntervals(intervals []entity.TimeInterval) []entity.TimeInterval {
	if len(intervals) <= 1 {
		return intervals
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})

	merged := []entity.TimeInterval{intervals[0]}
	for i := 1; i < len(intervals); i++ {
		last := &merged[len(merged)-1]
		current := intervals[i]

		if !current.Start.After(last.End) {
			if current.End.After(last.End) {
				last.End = current.End
			}
		} else {
			merged = append(merged, current)
		}
	}

	return merged
}

// subtractIntervals removes the busy ranges from a single window. The busy
// list must be sorted and disjoint; the output preserves order.
func subtractIntervals(window entity.TimeInterval, busy []entity.TimeInterval) []entity.TimeInterval {
	var out []entity.TimeInterval
	cursor := window.Start

	for _, b := range busy {
		if !b.Overlaps(window) {
			continue
		}
		if b.Start.After(cursor) {
			out = append(out, entity.TimeInterval{Start: cursor, End: b.Start})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
		if !cursor.Before(window.End) {
			return out
		}
	}

	if cursor.Before(window.End) {
		out = append(out, entity.TimeInterval{Start: cursor, End: window.End})
	}
	return out
}

// intersectIntervals computes the pairwise overlap of two sorted disjoint
// interval lists with a two-pointer sweep: emit [max(starts), min(ends))
// when non-empty, then advance whichever interval ends first.
func intersectIntervals(a, b []entity.TimeInterval) []entity.TimeInterval {
	var out []entity.TimeInterval
	i, j := 0, 0

	for i < len(a) && j < len(b) {
		start := a[i].Start
		if b[j].Start.After(start) {
			start = b[j].Start
		}
		end := a[i].End
		if b[j].End.Before(end) {
			end = b[j].End
		}
		if start.Before(end) {
			out = append(out, entity.TimeInterval{Start: start, End: end})
		}

		if a[i].End.Before(b[j].End) {
			i++
		} else {
			j++
		}
	}

	return out
}
