package service

import (
	"context"
	"fmt"

	"venue-api/core/errors"
	"venue-api/core/logger"
	"venue-api/modules/event/dto"
	"venue-api/modules/event/entity"
	"venue-api/modules/event/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var validCategories = map[string]bool{
	entity.CategoryMusic:     true,
	entity.CategoryPrivate:   true,
	entity.CategoryCommunity: true,
	entity.CategoryMembers:   true,
	entity.CategoryClosed:    true,
	entity.CategoryOther:     true,
}

type EventService interface {
	Create(ctx context.Context, req *dto.CreateEventRequest) (*entity.Event, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest) (*entity.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)

	// GetBySlug serves the public event detail page. Unpublished events are
	// admin-only; members-only events need the members capability.
	GetBySlug(ctx context.Context, slug string, admin, members bool) (*entity.Event, error)
}

type eventService struct {
	repo repository.EventRepository
}

func NewEventService(repo repository.EventRepository) EventService {
	return &eventService{repo: repo}
}

func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest) (*entity.Event, error) {
	if !validCategories[req.Category] {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "unknown category", nil)
	}
	if req.EndTime != nil && !req.EndTime.After(req.StartTime) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "end_time must be after start_time", nil)
	}

	displayStyle := req.DisplayStyle
	if displayStyle == "" {
		displayStyle = entity.DisplayNormal
	}

	event := &entity.Event{
		Title:           req.Title,
		Description:     req.Description,
		Slug:            slug.Make(req.Title),
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Category:        req.Category,
		Published:       req.Published,
		SpaceID:         req.SpaceID,
		DisplayStyle:    displayStyle,
		OverridesOthers: req.OverridesOthers,
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		if repository.IsUniqueViolation(err, "events_slug_key") {
			event.Slug = fmt.Sprintf("%s-%d", event.Slug, req.StartTime.Unix())
			if created, err = s.repo.Create(ctx, event); err == nil {
				return created, nil
			}
		}
		logger.Error("EventService:Create:Error", "error", err, "title", req.Title)
		return nil, err
	}
	return created, nil
}

// Update applies an admin edit. Direct edits set the manual edit lock so
// sync stops overwriting the row.
func (s *eventService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest) (*entity.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	if req.Category != nil {
		if !validCategories[*req.Category] {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "unknown category", nil)
		}
		event.Category = *req.Category
	}
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = req.EndTime
	}
	if req.Published != nil {
		event.Published = *req.Published
	}
	if req.SpaceID != nil {
		event.SpaceID = req.SpaceID
	}
	if req.DisplayStyle != nil {
		event.DisplayStyle = *req.DisplayStyle
	}
	if req.OverridesOthers != nil {
		event.OverridesOthers = *req.OverridesOthers
	}

	if event.IsExternal() {
		event.ManualEditLock = true
	}

	if err := s.repo.Update(ctx, event); err != nil {
		logger.Error("EventService:Update:Error", "error", err, "id", id)
		return nil, err
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id uuid.UUID) error {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event == nil {
		return errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	return s.repo.Delete(ctx, id)
}

func (s *eventService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	return event, nil
}

func (s *eventService) GetBySlug(ctx context.Context, slug string, admin, members bool) (*entity.Event, error) {
	event, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	// Restricted events are indistinguishable from missing ones.
	if !event.Published && !admin {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	if event.Category == entity.CategoryMembers && !members {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	return event, nil
}
