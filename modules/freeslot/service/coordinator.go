package service

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"timelink/core/cache"
	"timelink/core/constants"
	"timelink/core/errors"
	"timelink/core/logger"
	"timelink/modules/freeslot/dto"
	"timelink/modules/freeslot/entity"
)

// BusySource supplies a participant's committed time ranges overlapping a
// window. The schedules store and the external calendar feeds both
// implement it; their results are unioned.
type BusySource interface {
	BusyIntervals(ctx context.Context, userID string, window entity.TimeInterval) ([]entity.TimeInterval, error)
}

// MembershipSource resolves a group's participant list.
type MembershipSource interface {
	ResolveParticipants(ctx context.Context, groupID int64, userIDs []string) (string, []entity.Participant, *errors.AppError)
	ListGroupIDs(ctx context.Context) ([]int64, *errors.AppError)
}

// QueryDefaults fill request fields the caller omitted.
type QueryDefaults struct {
	Timezone          string
	WorkingHoursStart string
	WorkingHoursEnd   string
}

// FreeSlotService orchestrates free-slot queries: membership resolution,
// parallel busy-data fetch, engine invocation and result caching.
type FreeSlotService struct {
	engine   *Engine
	groups   MembershipSource
	sources  []BusySource
	cache    cache.Cache
	defaults QueryDefaults
}

// FreeSlotServiceInterface defines the service contract.
type FreeSlotServiceInterface interface {
	FindFreeSlots(ctx context.Context, req *dto.FindFreeSlotsRequest) (*dto.FindFreeSlotsResponse, *errors.AppError)
	FindGroupFreeSlots(ctx context.Context, req *dto.GroupFindFreeSlotsRequest) (*dto.GroupFindFreeSlotsResponse, *errors.AppError)
}

func NewFreeSlotService(groups MembershipSource, sources []BusySource, c cache.Cache, defaults QueryDefaults) *FreeSlotService {
	return &FreeSlotService{
		engine:   NewEngine(),
		groups:   groups,
		sources:  sources,
		cache:    c,
		defaults: defaults,
	}
}

// FindFreeSlots answers a self-contained query where the caller supplied
// every participant's busy schedules inline. Never cached: the data is
// already in hand and the computation is a single cheap pass.
func (s *FreeSlotService) FindFreeSlots(ctx context.Context, req *dto.FindFreeSlotsRequest) (*dto.FindFreeSlotsResponse, *errors.AppError) {
	constraints, appErr := dto.ToSearchConstraints(s.constraintFields(
		req.StartDate, req.EndDate, req.MinDurationMinutes,
		req.WorkingHoursStart, req.WorkingHoursEnd, req.DaysOfWeek, req.Timezone))
	if appErr != nil {
		return nil, appErr
	}

	participants, appErr := dto.ToParticipants(req.Participants)
	if appErr != nil {
		return nil, appErr
	}

	result, appErr := s.engine.FindFreeSlots(constraints, participants)
	if appErr != nil {
		return nil, appErr
	}

	return &dto.FindFreeSlotsResponse{
		ParticipantCount: result.ParticipantCount,
		SearchPeriod: dto.SearchPeriodDTO{
			StartDate:          req.StartDate,
			EndDate:            req.EndDate,
			MinDurationMinutes: req.MinDurationMinutes,
		},
		FreeSlots:           dto.ToFreeSlotDTOs(result.FreeSlots),
		TotalFreeSlotsFound: len(result.FreeSlots),
	}, nil
}

// FindGroupFreeSlots resolves the group server-side, gathers each member's
// busy intervals from every source in parallel, and runs the engine over
// the whole window in one pass.
func (s *FreeSlotService) FindGroupFreeSlots(ctx context.Context, req *dto.GroupFindFreeSlotsRequest) (*dto.GroupFindFreeSlotsResponse, *errors.AppError) {
	return s.findGroupFreeSlots(ctx, req, constants.FreeSlotCacheTTL)
}

func (s *FreeSlotService) findGroupFreeSlots(ctx context.Context, req *dto.GroupFindFreeSlotsRequest, ttl time.Duration) (*dto.GroupFindFreeSlotsResponse, *errors.AppError) {
	constraints, appErr := dto.ToSearchConstraints(s.constraintFields(
		req.StartDate, req.EndDate, req.MinDurationMinutes,
		req.WorkingHoursStart, req.WorkingHoursEnd, req.DaysOfWeek, req.Timezone))
	if appErr != nil {
		return nil, appErr
	}

	key := s.cacheKey(req)
	if s.cache != nil {
		var cached dto.GroupFindFreeSlotsResponse
		if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
			logger.Warn("FreeSlotService:FindGroupFreeSlots:CacheGet", "key", key, "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	groupName, participants, appErr := s.groups.ResolveParticipants(ctx, req.GroupID, req.UserIDs)
	if appErr != nil {
		return nil, appErr
	}

	if appErr := s.fetchBusy(ctx, participants, constraints.Window()); appErr != nil {
		return nil, appErr
	}

	result, appErr := s.engine.FindFreeSlots(constraints, participants)
	if appErr != nil {
		return nil, appErr
	}

	response := &dto.GroupFindFreeSlotsResponse{
		GroupID:     req.GroupID,
		GroupName:   groupName,
		MemberCount: result.ParticipantCount,
		SearchPeriod: dto.SearchPeriodDTO{
			StartDate:          req.StartDate,
			EndDate:            req.EndDate,
			MinDurationMinutes: req.MinDurationMinutes,
		},
		FreeSlots:           dto.ToFreeSlotDTOs(result.FreeSlots),
		TotalFreeSlotsFound: len(result.FreeSlots),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, response, ttl); err != nil {
			logger.Warn("FreeSlotService:FindGroupFreeSlots:CacheSet", "key", key, "error", err)
		}
	}

	return response, nil
}

// fetchBusy loads busy intervals for all participants concurrently. Any
// source failure aborts the whole query: computing with partial busy data
// would report free time that may not exist.
func (s *FreeSlotService) fetchBusy(ctx context.Context, participants []entity.Participant, window entity.TimeInterval) *errors.AppError {
	g, gctx := errgroup.WithContext(ctx)

	for i := range participants {
		g.Go(func() error {
			var busy []entity.TimeInterval
			for _, src := range s.sources {
				intervals, err := src.BusyIntervals(gctx, participants[i].ID, window)
				if err != nil {
					return fmt.Errorf("busy lookup for %s: %w", participants[i].ID, err)
				}
				busy = append(busy, intervals...)
			}
			participants[i].Busy = busy
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to load participant schedules", err)
	}
	return nil
}

func (s *FreeSlotService) constraintFields(startDate, endDate string, minDuration int, whStart, whEnd string, days []int, tz string) dto.ConstraintFields {
	if whStart == "" {
		whStart = s.defaults.WorkingHoursStart
	}
	if whEnd == "" {
		whEnd = s.defaults.WorkingHoursEnd
	}
	if tz == "" {
		tz = s.defaults.Timezone
	}
	if len(days) == 0 {
		days = []int{1, 2, 3, 4, 5, 6, 7}
	}
	return dto.ConstraintFields{
		StartDate:          startDate,
		EndDate:            endDate,
		MinDurationMinutes: minDuration,
		WorkingHoursStart:  whStart,
		WorkingHoursEnd:    whEnd,
		DaysOfWeek:         days,
		Timezone:           tz,
	}
}

// cacheKey derives a stable key from the normalized request.
func (s *FreeSlotService) cacheKey(req *dto.GroupFindFreeSlotsRequest) string {
	raw, _ := json.Marshal(req)
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("%s:%d:%x", constants.FreeSlotCacheKeySpace, req.GroupID, sum[:8])
}
