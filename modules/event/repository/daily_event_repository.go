package repository

import (
	"context"
	"database/sql"

	"venue-api/core/database"
	"venue-api/core/logger"
	"venue-api/modules/event/entity"

	"github.com/google/uuid"
)

type DailyEventRepository interface {
	Create(ctx context.Context, template *entity.DailyEvent) (*entity.DailyEvent, error)
	Update(ctx context.Context, template *entity.DailyEvent) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DailyEvent, error)
	List(ctx context.Context) ([]entity.DailyEvent, error)
	ListActive(ctx context.Context) ([]entity.DailyEvent, error)
}

type dailyEventRepository struct {
	db database.IDatabase
}

func NewDailyEventRepository(db database.IDatabase) DailyEventRepository {
	return &dailyEventRepository{db: db}
}

func (r *dailyEventRepository) Create(ctx context.Context, template *entity.DailyEvent) (*entity.DailyEvent, error) {
	query := `
		INSERT INTO daily_events (
			title, description, start_clock, end_clock, weekdays, category,
			display_style, overrides_others, active, show_in_grid, space_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		template.Title, template.Description, template.StartClock, template.EndClock,
		template.Weekdays, template.Category, template.DisplayStyle,
		template.OverridesOthers, template.Active, template.ShowInGrid, template.SpaceID,
	).Scan(&template.ID, &template.CreatedAt, &template.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return template, nil
}

func (r *dailyEventRepository) Update(ctx context.Context, template *entity.DailyEvent) error {
	query := `
		UPDATE daily_events
		SET title = $1, description = $2, start_clock = $3, end_clock = $4,
			weekdays = $5, category = $6, display_style = $7, overrides_others = $8,
			active = $9, show_in_grid = $10, space_id = $11, updated_at = NOW()
		WHERE id = $12
	`
	return r.db.ExecContext(ctx, query,
		template.Title, template.Description, template.StartClock, template.EndClock,
		template.Weekdays, template.Category, template.DisplayStyle,
		template.OverridesOthers, template.Active, template.ShowInGrid,
		template.SpaceID, template.ID,
	)
}

func (r *dailyEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.ExecContext(ctx, `DELETE FROM daily_events WHERE id = $1`, id)
}

func (r *dailyEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DailyEvent, error) {
	var template entity.DailyEvent
	err := r.db.GetContext(ctx, &template, `SELECT * FROM daily_events WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("DailyEventRepository:GetByID:Error", "error", err, "id", id)
		return nil, err
	}
	return &template, nil
}

func (r *dailyEventRepository) List(ctx context.Context) ([]entity.DailyEvent, error) {
	var templates []entity.DailyEvent
	err := r.db.SelectContext(ctx, &templates, `SELECT * FROM daily_events ORDER BY start_clock ASC`)
	if err != nil {
		logger.Error("DailyEventRepository:List:Error", "error", err)
		return nil, err
	}
	return templates, nil
}

func (r *dailyEventRepository) ListActive(ctx context.Context) ([]entity.DailyEvent, error) {
	var templates []entity.DailyEvent
	query := `SELECT * FROM daily_events WHERE active = true ORDER BY start_clock ASC`
	err := r.db.SelectContext(ctx, &templates, query)
	if err != nil {
		logger.Error("DailyEventRepository:ListActive:Error", "error", err)
		return nil, err
	}
	return templates, nil
}
