package repository

import (
	"context"
	"database/sql"

	"venue-api/core/database"
	"venue-api/core/logger"
	"venue-api/modules/event/entity"

	"github.com/google/uuid"
)

type SpaceRepository interface {
	Create(ctx context.Context, space *entity.Space) (*entity.Space, error)
	Update(ctx context.Context, space *entity.Space) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Space, error)
	List(ctx context.Context) ([]entity.Space, error)

	// CountReferences counts events and templates pointing at the space.
	// Deletion is restricted while references exist.
	CountReferences(ctx context.Context, id uuid.UUID) (int, error)
}

type spaceRepository struct {
	db database.IDatabase
}

func NewSpaceRepository(db database.IDatabase) SpaceRepository {
	return &spaceRepository{db: db}
}

func (r *spaceRepository) Create(ctx context.Context, space *entity.Space) (*entity.Space, error) {
	query := `
		INSERT INTO spaces (name, slug, color)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, space.Name, space.Slug, space.Color).
		Scan(&space.ID, &space.CreatedAt, &space.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return space, nil
}

func (r *spaceRepository) Update(ctx context.Context, space *entity.Space) error {
	query := `
		UPDATE spaces
		SET name = $1, slug = $2, color = $3, updated_at = NOW()
		WHERE id = $4
	`
	return r.db.ExecContext(ctx, query, space.Name, space.Slug, space.Color, space.ID)
}

func (r *spaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.ExecContext(ctx, `DELETE FROM spaces WHERE id = $1`, id)
}

func (r *spaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Space, error) {
	var space entity.Space
	err := r.db.GetContext(ctx, &space, `SELECT * FROM spaces WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SpaceRepository:GetByID:Error", "error", err, "id", id)
		return nil, err
	}
	return &space, nil
}

func (r *spaceRepository) List(ctx context.Context) ([]entity.Space, error) {
	var spaces []entity.Space
	err := r.db.SelectContext(ctx, &spaces, `SELECT * FROM spaces ORDER BY name ASC`)
	if err != nil {
		logger.Error("SpaceRepository:List:Error", "error", err)
		return nil, err
	}
	return spaces, nil
}

func (r *spaceRepository) CountReferences(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT (SELECT COUNT(*) FROM events WHERE space_id = $1)
			 + (SELECT COUNT(*) FROM daily_events WHERE space_id = $1)
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&count)
	if err != nil {
		logger.Error("SpaceRepository:CountReferences:Error", "error", err, "id", id)
		return 0, err
	}
	return count, nil
}
