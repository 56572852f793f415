package repository

import (
	"context"

	"timelink/core/database"
	"timelink/core/logger"
	"timelink/modules/calendar/entity"
)

// CalendarRepository reads external calendar feed subscriptions.
type CalendarRepository struct {
	DB database.Database
}

func NewCalendarRepository(db database.Database) *CalendarRepository {
	return &CalendarRepository{DB: db}
}

// CalendarRepositoryInterface defines the repository contract.
type CalendarRepositoryInterface interface {
	GetActiveConnectionsByUserID(ctx context.Context, userID string) ([]entity.CalendarConnection, error)
}

func (r *CalendarRepository) GetActiveConnectionsByUserID(ctx context.Context, userID string) ([]entity.CalendarConnection, error) {
	query := `
		SELECT id, user_id, provider, feed_url, is_active, created_at, updated_at
		FROM calendar_connections
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY created_at ASC
	`

	var connections []entity.CalendarConnection
	err := r.DB.SelectContext(ctx, &connections, query, userID)
	if err != nil {
		logger.Error("CalendarRepository:GetActiveConnectionsByUserID", err, "user_id", userID)
		return nil, err
	}

	return connections, nil
}
