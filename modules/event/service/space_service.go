package service

import (
	"context"

	"venue-api/core/errors"
	"venue-api/core/logger"
	"venue-api/modules/event/dto"
	"venue-api/modules/event/entity"
	"venue-api/modules/event/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type SpaceService interface {
	Create(ctx context.Context, req *dto.SpaceRequest) (*entity.Space, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.SpaceRequest) (*entity.Space, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Space, error)
}

type spaceService struct {
	repo repository.SpaceRepository
}

func NewSpaceService(repo repository.SpaceRepository) SpaceService {
	return &spaceService{repo: repo}
}

func (s *spaceService) Create(ctx context.Context, req *dto.SpaceRequest) (*entity.Space, error) {
	space := &entity.Space{
		Name:  req.Name,
		Slug:  slug.Make(req.Name),
		Color: req.Color,
	}
	created, err := s.repo.Create(ctx, space)
	if err != nil {
		logger.Error("SpaceService:Create:Error", "error", err, "name", req.Name)
		return nil, err
	}
	return created, nil
}

func (s *spaceService) Update(ctx context.Context, id uuid.UUID, req *dto.SpaceRequest) (*entity.Space, error) {
	space, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if space == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "space not found", nil)
	}

	space.Name = req.Name
	space.Slug = slug.Make(req.Name)
	space.Color = req.Color

	if err := s.repo.Update(ctx, space); err != nil {
		logger.Error("SpaceService:Update:Error", "error", err, "id", id)
		return nil, err
	}
	return space, nil
}

// Delete refuses while events or templates still reference the space so no
// reference is orphaned silently.
func (s *spaceService) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.repo.CountReferences(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "space is still referenced by events", nil)
	}
	return s.repo.Delete(ctx, id)
}

func (s *spaceService) List(ctx context.Context) ([]entity.Space, error) {
	return s.repo.List(ctx)
}
