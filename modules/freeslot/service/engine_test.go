package service

import (
	"reflect"
	"testing"
	"time"

	"timelink/core/errors"
	"timelink/modules/freeslot/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

func testConstraints(start, end time.Time, minDurationMinutes int, days ...int) entity.SearchConstraints {
	dw := make(map[int]bool, len(days))
	for _, d := range days {
		dw[d] = true
	}
	return entity.SearchConstraints{
		StartDate:        start,
		EndDate:          end,
		MinDuration:      time.Duration(minDurationMinutes) * time.Minute,
		WorkStartMinutes: 9 * 60,
		WorkEndMinutes:   22 * 60,
		DaysOfWeek:       dw,
		Location:         time.UTC,
	}
}

func busy(start, end time.Time) entity.TimeInterval {
	return entity.TimeInterval{Start: start, End: end}
}

// monday is 2025-01-06, a Monday.
var monday = date(2025, time.January, 6)

func TestFindFreeSlots_SingleParticipantFullDay(t *testing.T) {
	engine := NewEngine()
	c := testConstraints(monday, monday, 60, 1)

	result, appErr := engine.FindFreeSlots(c, []entity.Participant{
		{ID: "u1", Name: "Alice"},
	})
	if appErr != nil {
		t.Fatalf("FindFreeSlots failed: %v", appErr)
	}

	if len(result.FreeSlots) != 1 {
		t.Fatalf("expected 1 free slot, got %d", len(result.FreeSlots))
	}

	slot := result.FreeSlots[0]
	if !slot.StartTime.Equal(at(monday, 9, 0)) || !slot.EndTime.Equal(at(monday, 22, 0)) {
		t.Errorf("expected slot 09:00-22:00, got %v-%v", slot.StartTime, slot.EndTime)
	}
	if slot.DurationMinutes != 13*60 {
		t.Errorf("expected 780 minutes, got %d", slot.DurationMinutes)
	}
	if slot.DayOfWeek != "Monday" {
		t.Errorf("expected Monday, got %s", slot.DayOfWeek)
	}
}

func TestFindFreeSlots_TwoParticipantsDisjointBusy(t *testing.T) {
	engine := NewEngine()
	c := testConstraints(monday, monday, 30, 1)

	result, appErr := engine.FindFreeSlots(c, []entity.Participant{
		{ID: "u1", Busy: []entity.TimeInterval{busy(at(monday, 10, 0), at(monday, 11, 0))}},
		{ID: "u2", Busy: []entity.TimeInterval{busy(at(monday, 13, 0), at(monday, 14, 0))}},
	})
	if appErr != nil {
		t.Fatalf("FindFreeSlots failed: %v", appErr)
	}

	expected := []entity.TimeInterval{
		{Start: at(monday, 9, 0), End: at(monday, 10, 0)},
		{Start: at(monday, 11, 0), End: at(monday, 13, 0)},
		{Start: at(monday, 14, 0), End: at(monday, 22, 0)},
	}

	if len(result.FreeSlots) != len(expected) {
		t.Fatalf("expected %d slots, got %d", len(expected), len(result.FreeSlots))
	}
	for i, want := range expected {
		got := result.FreeSlots[i]
		if !got.StartTime.Equal(want.Start) || !got.EndTime.Equal(want.End) {
			t.Errorf("slot %d: expected %v-%v, got %v-%v", i, want.Start, want.End, got.StartTime, got.EndTime)
		}
	}
}

func TestFindFreeSlots_WeekendOnly(t *testing.T) {
	engine := NewEngine()
	sunday := date(2025, time.January, 12)
	c := testConstraints(monday, sunday, 60, 6, 7)

	result, appErr := engine.FindFreeSlots(c, []entity.Participant{{ID: "u1"}})
	if appErr != nil {
		t.Fatalf("FindFreeSlots failed: %v", appErr)
	}

	if len(result.FreeSlots) != 2 {
		t.Fatalf("expected 2 slots (Sat+Sun), got %d", len(result.FreeSlots))
	}
	if result.FreeSlots[0].DayOfWeek != "Saturday" || result.FreeSlots[1].DayOfWeek != "Sunday" {
		t.Errorf("expected Saturday then Sunday, got %s then %s",
			result.FreeSlots[0].DayOfWeek, result.FreeSlots[1].DayOfWeek)
	}
	saturday := date(2025, time.January, 11)
	if !result.FreeSlots[0].StartTime.Equal(at(saturday, 9, 0)) {
		t.Errorf("expected Saturday slot to start 09:00, got %v", result.FreeSlots[0].StartTime)
	}
}

func TestFindFreeSlots_OneParticipantFullyBusy(t *testing.T) {
	engine := NewEngine()
	c := testConstraints(monday, monday, 30, 1)

	result, appErr := engine.FindFreeSlots(c, []entity.Participant{
		{ID: "u1", Busy: []entity.TimeInterval{busy(at(monday, 10, 0), at(monday, 11, 0))}},
		{ID: "u2"},
		{ID: "u3", Busy: []entity.TimeInterval{busy(at(monday, 9, 0), at(monday, 22, 0))}},
	})
	if appErr != nil {
		t.Fatalf("FindFreeSlots failed: %v", appErr)
	}

	if len(result.FreeSlots) != 0 {
		t.Errorf("expected empty result when one participant has no free time, got %d slots", len(result.FreeSlots))
	}
	if result.ParticipantCount != 3 {
		t.Errorf("expected participant count 3, got %d", result.ParticipantCount)
	}
}

func TestFindFreeSlots_MinDurationFiltersAll(t *testing.T) {
	engine := NewEngine()
	// Gaps are 60, 120 and 480 minutes; require more than the largest.
	c := testConstraints(monday, monday, 8*60+1, 1)

	result, appErr := engine.FindFreeSlots(c, []entity.Participant{
		{ID: "u1", Busy: []entity.TimeInterval{
			busy(at(monday, 10, 0), at(monday, 11, 0)),
			busy(at(monday, 13, 0), at(monday, 14, 0)),
		}},
	})
	if appErr != nil {
		t.Fatalf("FindFreeSlots failed: %v", appErr)
	}
	if len(result.FreeSlots) != 0 {
		t.Errorf("expected all gaps filtered by min duration, got %d slots", len(result.FreeSlots))
	}
}

func TestFindFreeSlots_BusyOutsideWindowIgnored(t *testing.T) {
	engine := NewEngine()
	c := testConstraints(monday, monday, 60, 1)

	withOutside, appErr := engine.FindFreeSlots(c, []entity.Participant{
		{ID: "u1", Busy: []entity.TimeInterval{
			busy(at(date(2025, time.January, 3), 10, 0), at(date(2025, time.January, 3), 12, 0)),
		}},
	})
	if appErr != nil {
		t.Fatalf("FindFreeSlots failed: %v", appErr)
	}

	without, appErr := engine.FindFreeSlots(c, []entity.Participant{{ID: "u1"}})
	if appErr != nil {
		t.Fatalf("FindFreeSlots failed: %v", appErr)
	}

	if !reflect.DeepEqual(withOutside.FreeSlots, without.FreeSlots) {
		t.Errorf("busy interval outside the window changed the result")
	}
}

func TestFindFreeSlots_BusySpanningMidnight(t *testing.T) {
	engine := NewEngine()
	tuesday := monday.AddDate(0, 0, 1)
	c := testConstraints(monday, tuesday, 60, 1, 2)

	// Busy 20:00 Monday through 10:00 Tuesday.
	result, appErr := engine.FindFreeSlots(c, []entity.Participant{
		{ID: "u1", Busy: []entity.TimeInterval{busy(at(monday, 20, 0), at(tuesday, 10, 0))}},
	})
	if appErr != nil {
		t.Fatalf("FindFreeSlots failed: %v", appErr)
	}

	expected := []entity.TimeInterval{
		{Start: at(monday, 9, 0), End: at(monday, 20, 0)},
		{Start: at(tuesday, 10, 0), End: at(tuesday, 22, 0)},
	}
	if len(result.FreeSlots) != len(expected) {
		t.Fatalf("expected %d slots, got %d", len(expected), len(result.FreeSlots))
	}
	for i, want := range expected {
		got := result.FreeSlots[i]
		if !got.StartTime.Equal(want.Start) || !got.EndTime.Equal(want.End) {
			t.Errorf("slot %d: expected %v-%v, got %v-%v", i, want.Start, want.End, got.StartTime, got.EndTime)
		}
	}
}

func TestFindFreeSlots_OverlappingBusyMerged(t *testing.T) {
	engine := NewEngine()
	c := testConstraints(monday, monday, 30, 1)

	result, appErr := engine.FindFreeSlots(c, []entity.Participant{
		{ID: "u1", Busy: []entity.TimeInterval{
			busy(at(monday, 10, 0), at(monday, 12, 0)),
			busy(at(monday, 11, 0), at(monday, 13, 0)),
			busy(at(monday, 13, 0), at(monday, 14, 0)), // adjacent
		}},
	})
	if appErr != nil {
		t.Fatalf("FindFreeSlots failed: %v", appErr)
	}

	expected := []entity.TimeInterval{
		{Start: at(monday, 9, 0), End: at(monday, 10, 0)},
		{Start: at(monday, 14, 0), End: at(monday, 22, 0)},
	}
	if len(result.FreeSlots) != len(expected) {
		t.Fatalf("expected %d slots, got %d", len(expected), len(result.FreeSlots))
	}
	for i, want := range expected {
		got := result.FreeSlots[i]
		if !got.StartTime.Equal(want.Start) || !got.EndTime.Equal(want.End) {
			t.Errorf("slot %d: expected %v-%v, got %v-%v", i, want.Start, want.End, got.StartTime, got.EndTime)
		}
	}
}

func TestFindFreeSlots_IntersectionIsCommutative(t *testing.T) {
	engine := NewEngine()
	c := testConstraints(monday, monday.AddDate(0, 0, 4), 30, 1, 2, 3, 4, 5)

	p := entity.Participant{ID: "p", Busy: []entity.TimeInterval{
		busy(at(monday, 9, 30), at(monday, 12, 0)),
		busy(at(monday.AddDate(0, 0, 2), 15, 0), at(monday.AddDate(0, 0, 2), 18, 0)),
	}}
	q := entity.Participant{ID: "q", Busy: []entity.TimeInterval{
		busy(at(monday, 11, 0), at(monday, 14, 0)),
		busy(at(monday.AddDate(0, 0, 3), 9, 0), at(monday.AddDate(0, 0, 3), 22, 0)),
	}}

	pq, appErr := engine.FindFreeSlots(c, []entity.Participant{p, q})
	if appErr != nil {
		t.Fatalf("FindFreeSlots(p,q) failed: %v", appErr)
	}
	qp, appErr := engine.FindFreeSlots(c, []entity.Participant{q, p})
	if appErr != nil {
		t.Fatalf("FindFreeSlots(q,p) failed: %v", appErr)
	}

	if !reflect.DeepEqual(pq.FreeSlots, qp.FreeSlots) {
		t.Errorf("intersection not commutative:\n p,q: %+v\n q,p: %+v", pq.FreeSlots, qp.FreeSlots)
	}
}

func TestFindFreeSlots_AddingParticipantNeverAddsFreeTime(t *testing.T) {
	engine := NewEngine()
	c := testConstraints(monday, monday.AddDate(0, 0, 2), 30, 1, 2, 3)

	p := entity.Participant{ID: "p", Busy: []entity.TimeInterval{
		busy(at(monday, 10, 0), at(monday, 12, 0)),
	}}
	q := entity.Participant{ID: "q", Busy: []entity.TimeInterval{
		busy(at(monday, 11, 0), at(monday, 15, 0)),
		busy(at(monday.AddDate(0, 0, 1), 9, 0), at(monday.AddDate(0, 0, 1), 13, 0)),
	}}

	alone, appErr := engine.FindFreeSlots(c, []entity.Participant{p})
	if appErr != nil {
		t.Fatalf("FindFreeSlots(p) failed: %v", appErr)
	}
	both, appErr := engine.FindFreeSlots(c, []entity.Participant{p, q})
	if appErr != nil {
		t.Fatalf("FindFreeSlots(p,q) failed: %v", appErr)
	}

	// Every pair slot must lie inside some single-participant slot.
	for _, slot := range both.FreeSlots {
		contained := false
		for _, outer := range alone.FreeSlots {
			if !slot.StartTime.Before(outer.StartTime) && !slot.EndTime.After(outer.EndTime) {
				contained = true
				break
			}
		}
		if !contained {
			t.Errorf("pair slot %v-%v not contained in any single-participant slot", slot.StartTime, slot.EndTime)
		}
	}
}

func TestFindFreeSlots_Idempotent(t *testing.T) {
	engine := NewEngine()
	c := testConstraints(monday, monday.AddDate(0, 0, 6), 45, 1, 3, 5, 7)

	participants := []entity.Participant{
		{ID: "u1", Busy: []entity.TimeInterval{busy(at(monday, 9, 0), at(monday, 10, 30))}},
		{ID: "u2", Busy: []entity.TimeInterval{busy(at(monday, 18, 0), at(monday, 21, 15))}},
	}

	first, appErr := engine.FindFreeSlots(c, participants)
	if appErr != nil {
		t.Fatalf("first run failed: %v", appErr)
	}
	second, appErr := engine.FindFreeSlots(c, participants)
	if appErr != nil {
		t.Fatalf("second run failed: %v", appErr)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical queries produced different results")
	}
}

func TestFindFreeSlots_InvalidBusyIntervalRejectsQuery(t *testing.T) {
	engine := NewEngine()
	c := testConstraints(monday, monday, 30, 1)

	_, appErr := engine.FindFreeSlots(c, []entity.Participant{
		{ID: "u1", Busy: []entity.TimeInterval{busy(at(monday, 11, 0), at(monday, 10, 0))}},
	})
	if appErr == nil {
		t.Fatal("expected error for busy interval with start >= end")
	}
	if appErr.Code != errors.ErrInvalidInterval {
		t.Errorf("expected INVALID_INTERVAL, got %s", appErr.Code)
	}
}

func TestFindFreeSlots_InvalidIntervalRejectedEvenWhenIntersectionEmpty(t *testing.T) {
	engine := NewEngine()
	c := testConstraints(monday, monday, 30, 1)

	// First participant wipes out all free time; the corrupt record of the
	// second must still reject the whole query.
	_, appErr := engine.FindFreeSlots(c, []entity.Participant{
		{ID: "u1", Busy: []entity.TimeInterval{busy(at(monday, 9, 0), at(monday, 22, 0))}},
		{ID: "u2", Busy: []entity.TimeInterval{busy(at(monday, 12, 0), at(monday, 12, 0))}},
	})
	if appErr == nil {
		t.Fatal("expected error for corrupt busy interval")
	}
	if appErr.Code != errors.ErrInvalidInterval {
		t.Errorf("expected INVALID_INTERVAL, got %s", appErr.Code)
	}
}

func TestFindFreeSlots_InvalidConstraints(t *testing.T) {
	engine := NewEngine()
	participant := []entity.Participant{{ID: "u1"}}

	cases := []struct {
		name   string
		mutate func(*entity.SearchConstraints)
	}{
		{"end before start", func(c *entity.SearchConstraints) {
			c.StartDate = monday
			c.EndDate = monday.AddDate(0, 0, -1)
		}},
		{"zero min duration", func(c *entity.SearchConstraints) { c.MinDuration = 0 }},
		{"reversed working hours", func(c *entity.SearchConstraints) {
			c.WorkStartMinutes = 18 * 60
			c.WorkEndMinutes = 9 * 60
		}},
		{"empty days of week", func(c *entity.SearchConstraints) { c.DaysOfWeek = map[int]bool{} }},
		{"weekday out of range", func(c *entity.SearchConstraints) { c.DaysOfWeek = map[int]bool{8: true} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := testConstraints(monday, monday, 30, 1)
			tc.mutate(&c)
			_, appErr := engine.FindFreeSlots(c, participant)
			if appErr == nil {
				t.Fatal("expected constraint error")
			}
			if appErr.Code != errors.ErrInvalidConstraints {
				t.Errorf("expected INVALID_CONSTRAINTS, got %s", appErr.Code)
			}
		})
	}
}

func TestFindFreeSlots_NoParticipants(t *testing.T) {
	engine := NewEngine()
	c := testConstraints(monday, monday, 30, 1)

	_, appErr := engine.FindFreeSlots(c, nil)
	if appErr == nil {
		t.Fatal("expected error for empty participant set")
	}
	if appErr.Code != errors.ErrInvalidConstraints {
		t.Errorf("expected INVALID_CONSTRAINTS, got %s", appErr.Code)
	}
}

func TestIntersectIntervals(t *testing.T) {
	a := []entity.TimeInterval{
		{Start: at(monday, 9, 0), End: at(monday, 12, 0)},
		{Start: at(monday, 14, 0), End: at(monday, 18, 0)},
	}
	b := []entity.TimeInterval{
		{Start: at(monday, 10, 0), End: at(monday, 15, 0)},
		{Start: at(monday, 17, 0), End: at(monday, 20, 0)},
	}

	got := intersectIntervals(a, b)
	want := []entity.TimeInterval{
		{Start: at(monday, 10, 0), End: at(monday, 12, 0)},
		{Start: at(monday, 14, 0), End: at(monday, 15, 0)},
		{Start: at(monday, 17, 0), End: at(monday, 18, 0)},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("intersect mismatch:\n got: %+v\nwant: %+v", got, want)
	}
}

func TestSubtractIntervals_TouchingBoundariesProduceNoEmptySlots(t *testing.T) {
	window := entity.TimeInterval{Start: at(monday, 9, 0), End: at(monday, 22, 0)}
	blocks := []entity.TimeInterval{
		{Start: at(monday, 9, 0), End: at(monday, 10, 0)},  // starts at window start
		{Start: at(monday, 21, 0), End: at(monday, 22, 0)}, // ends at window end
	}

	got := subtractIntervals(window, blocks)
	want := []entity.TimeInterval{
		{Start: at(monday, 10, 0), End: at(monday, 21, 0)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("subtract mismatch:\n got: %+v\nwant: %+v", got, want)
	}
}
