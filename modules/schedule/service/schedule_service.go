package service

import (
	"context"

	freeslot "timelink/modules/freeslot/entity"
	"timelink/modules/schedule/repository"
)

// ScheduleService exposes the schedules store as a busy-interval source.
// Every stored entry counts as busy; filtering of cancelled or completed
// entries is deliberately not done here.
type ScheduleService struct {
	repo repository.ScheduleRepositoryInterface
}

func NewScheduleService(repo repository.ScheduleRepositoryInterface) *ScheduleService {
	return &ScheduleService{repo: repo}
}

// BusyIntervals returns the user's committed time ranges overlapping the
// window. Validation of start/end ordering is left to the engine so that
// corrupt rows reject the query instead of being silently dropped.
func (s *ScheduleService) BusyIntervals(ctx context.Context, userID string, window freeslot.TimeInterval) ([]freeslot.TimeInterval, error) {
	schedules, err := s.repo.GetSchedulesInRange(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	out := make([]freeslot.TimeInterval, 0, len(schedules))
	for _, sch := range schedules {
		out = append(out, freeslot.TimeInterval{Start: sch.StartTime, End: sch.EndTime})
	}
	return out, nil
}
