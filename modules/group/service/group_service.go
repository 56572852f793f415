package service

import (
	"context"
	"fmt"

	"timelink/core/errors"
	freeslot "timelink/modules/freeslot/entity"
	"timelink/modules/group/repository"
)

// GroupService resolves a group's participant list for free-slot queries.
type GroupService struct {
	repo repository.GroupRepositoryInterface
}

func NewGroupService(repo repository.GroupRepositoryInterface) *GroupService {
	return &GroupService{repo: repo}
}

// ResolveParticipants loads the group and its members, optionally filtered
// to the given user ids. A filter id that is not a member fails the query:
// accepting it would silently compute availability for a smaller set than
// the caller asked about.
func (s *GroupService) ResolveParticipants(ctx context.Context, groupID int64, userIDs []string) (string, []freeslot.Participant, *errors.AppError) {
	group, err := s.repo.GetGroupByID(ctx, groupID)
	if err != nil {
		return "", nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load group", err)
	}
	if group == nil {
		return "", nil, errors.NewAppError(errors.ErrNotFound, fmt.Sprintf("Group %d not found", groupID), nil)
	}

	members, err := s.repo.GetMembersByGroupID(ctx, groupID)
	if err != nil {
		return "", nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load group members", err)
	}

	byUserID := make(map[string]freeslot.Participant, len(members))
	for _, m := range members {
		byUserID[m.UserID] = freeslot.Participant{ID: m.UserID, Name: m.UserName}
	}

	var participants []freeslot.Participant
	if len(userIDs) == 0 {
		participants = make([]freeslot.Participant, 0, len(members))
		for _, m := range members {
			participants = append(participants, byUserID[m.UserID])
		}
	} else {
		participants = make([]freeslot.Participant, 0, len(userIDs))
		for _, id := range userIDs {
			p, ok := byUserID[id]
			if !ok {
				return "", nil, errors.NewAppError(errors.ErrInvalidRequestData,
					fmt.Sprintf("user %s is not a member of group %d", id, groupID), nil)
			}
			participants = append(participants, p)
		}
	}

	return group.Name, participants, nil
}

// ListGroupIDs exposes the full group id list for the warm job.
func (s *GroupService) ListGroupIDs(ctx context.Context) ([]int64, *errors.AppError) {
	ids, err := s.repo.ListGroupIDs(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list groups", err)
	}
	return ids, nil
}
