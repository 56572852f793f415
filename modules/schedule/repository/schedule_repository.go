package repository

import (
	"context"
	"time"

	"timelink/core/database"
	"timelink/core/logger"
	"timelink/modules/schedule/entity"
)

// ScheduleRepository is the read-side adapter over the schedules table
// consumed by the free-slot engine.
type ScheduleRepository struct {
	DB database.Database
}

func NewScheduleRepository(db database.Database) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

// ScheduleRepositoryInterface defines the repository contract.
type ScheduleRepositoryInterface interface {
	GetSchedulesInRange(ctx context.Context, userID string, from, to time.Time) ([]entity.Schedule, error)
}

// GetSchedulesInRange returns every schedule of the user overlapping
// [from, to). Overlap, not containment: an entry spanning the window edge
// still blocks time inside it.
func (r *ScheduleRepository) GetSchedulesInRange(ctx context.Context, userID string, from, to time.Time) ([]entity.Schedule, error) {
	query := `
		SELECT id, user_id, title, description, location, start_time, end_time,
		       is_completed, calendar_id, created_at, updated_at
		FROM schedules
		WHERE user_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time ASC
	`

	var schedules []entity.Schedule
	err := r.DB.SelectContext(ctx, &schedules, query, userID, from, to)
	if err != nil {
		logger.Error("ScheduleRepository:GetSchedulesInRange", err, "user_id", userID)
		return nil, err
	}

	return schedules, nil
}
