package service

import (
	"context"
	"time"

	"venue-api/core/errors"
	"venue-api/core/logger"
	"venue-api/modules/event/dto"
	"venue-api/modules/event/entity"
	"venue-api/modules/event/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type DailyEventService interface {
	Create(ctx context.Context, req *dto.DailyEventRequest) (*entity.DailyEvent, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.DailyEventRequest) (*entity.DailyEvent, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.DailyEvent, error)
}

type dailyEventService struct {
	repo repository.DailyEventRepository
}

func NewDailyEventService(repo repository.DailyEventRepository) DailyEventService {
	return &dailyEventService{repo: repo}
}

func (s *dailyEventService) Create(ctx context.Context, req *dto.DailyEventRequest) (*entity.DailyEvent, error) {
	template, err := templateFromRequest(req)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, template)
	if err != nil {
		logger.Error("DailyEventService:Create:Error", "error", err, "title", req.Title)
		return nil, err
	}
	return created, nil
}

func (s *dailyEventService) Update(ctx context.Context, id uuid.UUID, req *dto.DailyEventRequest) (*entity.DailyEvent, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "daily event not found", nil)
	}

	template, err := templateFromRequest(req)
	if err != nil {
		return nil, err
	}
	template.BaseEntity = existing.BaseEntity

	if err := s.repo.Update(ctx, template); err != nil {
		logger.Error("DailyEventService:Update:Error", "error", err, "id", id)
		return nil, err
	}
	return template, nil
}

func (s *dailyEventService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.NewAppError(errors.ErrNotFound, "daily event not found", nil)
	}
	return s.repo.Delete(ctx, id)
}

func (s *dailyEventService) List(ctx context.Context) ([]entity.DailyEvent, error) {
	return s.repo.List(ctx)
}

func templateFromRequest(req *dto.DailyEventRequest) (*entity.DailyEvent, error) {
	if req.Category != entity.DailyCategoryFacility && req.Category != entity.DailyCategoryClosed {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "category must be facility or closed", nil)
	}
	if _, err := time.Parse("15:04", req.StartClock); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "start_clock must be HH:MM", nil)
	}
	if _, err := time.Parse("15:04", req.EndClock); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "end_clock must be HH:MM", nil)
	}

	weekdays := make(pq.Int64Array, 0, len(req.Weekdays))
	for _, w := range req.Weekdays {
		if w < 0 || w > 6 {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "weekdays must be 0-6", nil)
		}
		weekdays = append(weekdays, int64(w))
	}
	// An active template with no weekdays would never fire; reject it.
	if req.Active && len(weekdays) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "active template needs at least one weekday", nil)
	}

	displayStyle := req.DisplayStyle
	if displayStyle == "" {
		displayStyle = entity.DisplayNormal
	}

	return &entity.DailyEvent{
		Title:           req.Title,
		Description:     req.Description,
		StartClock:      req.StartClock,
		EndClock:        req.EndClock,
		Weekdays:        weekdays,
		Category:        req.Category,
		DisplayStyle:    displayStyle,
		OverridesOthers: req.OverridesOthers,
		Active:          req.Active,
		ShowInGrid:      req.ShowInGrid,
		SpaceID:         req.SpaceID,
	}, nil
}
