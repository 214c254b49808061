package repository

import (
	"context"
	"database/sql"
	"time"

	"venue-api/core/database"
	"venue-api/core/logger"
	"venue-api/modules/event/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Event, error)

	// FindByExternalKey looks up the row owned by a synced occurrence.
	// Returns (nil, nil) when no row matches.
	FindByExternalKey(ctx context.Context, calendarID, externalID string) (*entity.Event, error)

	// ListInRange returns one-time events whose start falls in [start, end).
	ListInRange(ctx context.Context, start, end time.Time) ([]entity.Event, error)
}

type eventRepository struct {
	db database.IDatabase
}

func NewEventRepository(db database.IDatabase) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (
			title, description, slug, start_time, end_time, category, published,
			space_id, external_event_id, external_calendar_id, manual_edit_lock,
			display_style, overrides_others
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		event.Title, event.Description, event.Slug, event.StartTime, event.EndTime,
		event.Category, event.Published, event.SpaceID, event.ExternalEventID,
		event.ExternalCalendarID, event.ManualEditLock, event.DisplayStyle,
		event.OverridesOthers,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, start_time = $3, end_time = $4,
			category = $5, published = $6, space_id = $7, manual_edit_lock = $8,
			display_style = $9, overrides_others = $10, updated_at = NOW()
		WHERE id = $11
	`
	return r.db.ExecContext(ctx, query,
		event.Title, event.Description, event.StartTime, event.EndTime,
		event.Category, event.Published, event.SpaceID, event.ManualEditLock,
		event.DisplayStyle, event.OverridesOthers, event.ID,
	)
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
}

func (r *eventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	var event entity.Event
	err := r.db.GetContext(ctx, &event, `SELECT * FROM events WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetByID:Error", "error", err, "id", id)
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*entity.Event, error) {
	var event entity.Event
	err := r.db.GetContext(ctx, &event, `SELECT * FROM events WHERE slug = $1`, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetBySlug:Error", "error", err, "slug", slug)
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindByExternalKey(ctx context.Context, calendarID, externalID string) (*entity.Event, error) {
	var event entity.Event
	query := `
		SELECT * FROM events
		WHERE external_calendar_id = $1 AND external_event_id = $2
	`
	err := r.db.GetContext(ctx, &event, query, calendarID, externalID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:FindByExternalKey:Error", "error", err,
			"calendar_id", calendarID, "external_id", externalID)
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) ListInRange(ctx context.Context, start, end time.Time) ([]entity.Event, error) {
	var events []entity.Event
	query := `
		SELECT * FROM events
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time ASC
	`
	err := r.db.SelectContext(ctx, &events, query, start, end)
	if err != nil {
		logger.Error("EventRepository:ListInRange:Error", "error", err, "start", start, "end", end)
		return nil, err
	}
	return events, nil
}

// IsUniqueViolation reports whether err is a unique-constraint violation,
// optionally on a specific constraint name.
func IsUniqueViolation(err error, constraint string) bool {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return false
	}
	if pqErr.Code != "23505" {
		return false
	}
	if constraint == "" {
		return true
	}
	return pqErr.Constraint == constraint
}
