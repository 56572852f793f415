package repository

import (
	"context"
	"database/sql"

	"timelink/core/database"
	"timelink/core/logger"
	"timelink/modules/group/entity"
)

// GroupRepository is the read-side adapter over the groups tables. Group
// management itself lives in another service; this one only resolves
// membership for free-slot queries.
type GroupRepository struct {
	DB database.Database
}

func NewGroupRepository(db database.Database) *GroupRepository {
	return &GroupRepository{DB: db}
}

// GroupRepositoryInterface defines the repository contract.
type GroupRepositoryInterface interface {
	GetGroupByID(ctx context.Context, id int64) (*entity.Group, error)
	GetMembersByGroupID(ctx context.Context, groupID int64) ([]entity.GroupMember, error)
	ListGroupIDs(ctx context.Context) ([]int64, error)
}

func (r *GroupRepository) GetGroupByID(ctx context.Context, id int64) (*entity.Group, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM groups WHERE id = $1
	`

	var group entity.Group
	err := r.DB.GetContext(ctx, &group, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("GroupRepository:GetGroupByID", err, "group_id", id)
		return nil, err
	}

	return &group, nil
}

func (r *GroupRepository) GetMembersByGroupID(ctx context.Context, groupID int64) ([]entity.GroupMember, error) {
	query := `
		SELECT id, group_id, user_id, user_name, role, joined_at
		FROM group_members
		WHERE group_id = $1
		ORDER BY joined_at ASC
	`

	var members []entity.GroupMember
	err := r.DB.SelectContext(ctx, &members, query, groupID)
	if err != nil {
		logger.Error("GroupRepository:GetMembersByGroupID", err, "group_id", groupID)
		return nil, err
	}

	return members, nil
}

// ListGroupIDs returns every group id, used by the availability warm job.
func (r *GroupRepository) ListGroupIDs(ctx context.Context) ([]int64, error) {
	query := `SELECT id FROM groups ORDER BY id ASC`

	var ids []int64
	err := r.DB.SelectContext(ctx, &ids, query)
	if err != nil {
		logger.Error("GroupRepository:ListGroupIDs", err)
		return nil, err
	}

	return ids, nil
}
