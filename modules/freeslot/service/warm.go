package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"timelink/core/constants"
	"timelink/core/logger"
	"timelink/modules/freeslot/dto"
)

// WarmGroupPayload identifies the group whose availability to precompute.
type WarmGroupPayload struct {
	GroupID int64 `json:"group_id"`
}

// Precomputed entries outlive the on-demand TTL so the nightly warm run
// carries a group through the day.
const warmCacheTTL = 24 * time.Hour

func NewWarmGroupTask(groupID int64) (*asynq.Task, error) {
	payload, err := json.Marshal(WarmGroupPayload{GroupID: groupID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskWarmGroup, payload), nil
}

func NewWarmAllTask() *asynq.Task {
	return asynq.NewTask(constants.TaskWarmAll, nil)
}

// HandleWarmGroup precomputes the coming week's free slots for one group
// with default constraints, priming the result cache.
func (s *FreeSlotService) HandleWarmGroup(ctx context.Context, t *asynq.Task) error {
	var payload WarmGroupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("FreeSlotService:HandleWarmGroup:Payload", err)
		return err
	}

	loc, err := time.LoadLocation(s.defaults.Timezone)
	if err != nil {
		loc = time.UTC
	}
	today := time.Now().In(loc)

	req := &dto.GroupFindFreeSlotsRequest{
		GroupID:            payload.GroupID,
		StartDate:          today.Format("2006-01-02"),
		EndDate:            today.AddDate(0, 0, constants.WarmSearchDays).Format("2006-01-02"),
		MinDurationMinutes: constants.WarmMinDurationMn,
	}

	if _, appErr := s.findGroupFreeSlots(ctx, req, warmCacheTTL); appErr != nil {
		logger.Error("FreeSlotService:HandleWarmGroup", appErr, "group_id", payload.GroupID)
		return appErr
	}

	logger.Info("FreeSlotService:HandleWarmGroup:Done", "group_id", payload.GroupID)
	return nil
}

// HandleWarmAll fans the warm computation out over every known group.
// Groups are processed sequentially; a failing group is logged and skipped
// so one bad feed does not starve the rest.
func (s *FreeSlotService) HandleWarmAll(ctx context.Context, _ *asynq.Task) error {
	ids, appErr := s.groups.ListGroupIDs(ctx)
	if appErr != nil {
		logger.Error("FreeSlotService:HandleWarmAll:ListGroups", appErr)
		return appErr
	}

	warmed := 0
	for _, id := range ids {
		task, err := NewWarmGroupTask(id)
		if err != nil {
			continue
		}
		if err := s.HandleWarmGroup(ctx, task); err != nil {
			continue
		}
		warmed++
	}

	logger.Info("FreeSlotService:HandleWarmAll:Done", "groups", len(ids), "warmed", warmed)
	return nil
}
