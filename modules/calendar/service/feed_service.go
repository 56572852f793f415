package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"timelink/core/logger"
	"timelink/modules/calendar/repository"
	freeslot "timelink/modules/freeslot/entity"
)

const (
	fetchTimeout = 10 * time.Second
	maxFeedBytes = 4 << 20
	// Cap per event so a runaway RRULE cannot blow up a query.
	maxOccurrencesPerEvent = 1000
)

// FeedService turns a user's external ICS calendar feeds into busy
// intervals. Recurring events are expanded inside the query window.
type FeedService struct {
	repo   repository.CalendarRepositoryInterface
	client *http.Client
}

func NewFeedService(repo repository.CalendarRepositoryInterface) *FeedService {
	return &FeedService{
		repo: repo,
		client: &http.Client{
			Timeout: fetchTimeout,
		},
	}
}

// BusyIntervals fetches every active feed of the user and collects event
// occurrences overlapping the window. A failing feed fails the lookup:
// partial busy data would make the engine report free time that may not
// exist.
func (s *FeedService) BusyIntervals(ctx context.Context, userID string, window freeslot.TimeInterval) ([]freeslot.TimeInterval, error) {
	connections, err := s.repo.GetActiveConnectionsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var out []freeslot.TimeInterval
	for _, conn := range connections {
		body, err := s.fetch(ctx, conn.FeedURL)
		if err != nil {
			logger.Error("FeedService:BusyIntervals:Fetch", err, "user_id", userID, "provider", conn.Provider)
			return nil, fmt.Errorf("fetch calendar feed %s: %w", conn.Provider, err)
		}

		intervals, err := ExpandBusyIntervals(body, window)
		if err != nil {
			logger.Error("FeedService:BusyIntervals:Expand", err, "user_id", userID, "provider", conn.Provider)
			return nil, fmt.Errorf("parse calendar feed %s: %w", conn.Provider, err)
		}
		out = append(out, intervals...)
	}

	return out, nil
}

func (s *FeedService) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
}

// ExpandBusyIntervals parses an ICS payload and returns every event
// occurrence clipped to the window. RRULE recurrences are expanded with
// EXDATE exceptions applied; events without usable DTSTART/DTEND are
// skipped rather than failing the whole feed.
func ExpandBusyIntervals(body []byte, window freeslot.TimeInterval) ([]freeslot.TimeInterval, error) {
	cal, err := ical.ParseCalendar(strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}

	var out []freeslot.TimeInterval
	for _, ve := range cal.Events() {
		start, err := ve.GetStartAt()
		if err != nil {
			continue
		}
		end, err := ve.GetEndAt()
		if err != nil || !start.Before(end) {
			continue
		}

		rruleProp := ve.GetProperty(ical.ComponentPropertyRrule)
		if rruleProp == nil || rruleProp.Value == "" {
			if iv, ok := (freeslot.TimeInterval{Start: start, End: end}).Clip(window); ok {
				out = append(out, iv)
			}
			continue
		}

		occurrences := expandRecurring(start, end, rruleProp.Value, exceptionDates(ve), window)
		out = append(out, occurrences...)
	}

	return out, nil
}

func expandRecurring(start, end time.Time, rawRRule string, exDates []time.Time, window freeslot.TimeInterval) []freeslot.TimeInterval {
	r, err := rrule.StrToRRule(rawRRule)
	if err != nil {
		logger.Warn("FeedService:ExpandRecurring:BadRRule", "rrule", rawRRule, "error", err)
		return nil
	}
	r.DTStart(start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range exDates {
		set.ExDate(ex.In(start.Location()))
	}

	duration := end.Sub(start)

	// Widen the lower bound so an occurrence that starts before the window
	// but runs into it is still found.
	rangeStart := window.Start.Add(-duration).In(start.Location())
	rangeEnd := window.End.In(start.Location())

	occStarts := set.Between(rangeStart, rangeEnd, true)
	if len(occStarts) > maxOccurrencesPerEvent {
		occStarts = occStarts[:maxOccurrencesPerEvent]
	}

	var out []freeslot.TimeInterval
	for _, occStart := range occStarts {
		iv := freeslot.TimeInterval{Start: occStart, End: occStart.Add(duration)}
		if clipped, ok := iv.Clip(window); ok {
			out = append(out, clipped)
		}
	}
	return out
}

// exceptionDates collects EXDATE values; EXDATE can appear multiple times
// and hold comma-separated lists.
func exceptionDates(ve *ical.VEvent) []time.Time {
	var out []time.Time
	for _, prop := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(prop.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part); err == nil {
				out = append(out, t)
			}
		}
	}
	return out
}

func parseICSTime(v string) (time.Time, error) {
	if strings.HasSuffix(v, "Z") {
		return time.Parse("20060102T150405Z", v)
	}
	if strings.Contains(v, "T") {
		return time.ParseInLocation("20060102T150405", v, time.Local)
	}
	return time.ParseInLocation("20060102", v, time.Local)
}
