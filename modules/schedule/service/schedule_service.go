package service

import (
	"context"
	"time"

	"venue-api/core/cache"
	"venue-api/core/constants"
	"venue-api/core/logger"
	"venue-api/modules/event/entity"
	"venue-api/modules/event/repository"

	"github.com/google/uuid"
)

// DaySchedule is one day's aggregated events plus the per-container layout.
type DaySchedule struct {
	Events []entity.Event          `json:"events"`
	Layout map[uuid.UUID]Placement `json:"layout"`
}

type ScheduleService interface {
	// ScheduleForDate aggregates and lays out one calendar day.
	ScheduleForDate(ctx context.Context, date time.Time, caps ViewerCapabilities) (*DaySchedule, error)

	// ScheduleForRange aggregates [start, end) without layout.
	ScheduleForRange(ctx context.Context, start, end time.Time, caps ViewerCapabilities) ([]entity.Event, error)
}

type scheduleService struct {
	eventRepo repository.EventRepository
	dailyRepo repository.DailyEventRepository
	cache     cache.Cache
}

func NewScheduleService(
	eventRepo repository.EventRepository,
	dailyRepo repository.DailyEventRepository,
	c cache.Cache,
) ScheduleService {
	return &scheduleService{
		eventRepo: eventRepo,
		dailyRepo: dailyRepo,
		cache:     c,
	}
}

func (s *scheduleService) ScheduleForDate(ctx context.Context, date time.Time, caps ViewerCapabilities) (*DaySchedule, error) {
	cacheKey := dayCacheKey(date, caps)
	if s.cache != nil {
		var cached DaySchedule
		if found, err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil && found {
			return &cached, nil
		}
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1)

	events, err := s.ScheduleForRange(ctx, start, end, caps)
	if err != nil {
		return nil, err
	}

	schedule := &DaySchedule{
		Events: events,
		Layout: layoutByContainer(events),
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, schedule, constants.ScheduleCacheTTL); err != nil {
			logger.Warn("ScheduleService:ScheduleForDate:Cache:Error", "error", err)
		}
	}
	return schedule, nil
}

func (s *scheduleService) ScheduleForRange(ctx context.Context, start, end time.Time, caps ViewerCapabilities) ([]entity.Event, error) {
	oneTime, err := s.eventRepo.ListInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	templates, err := s.dailyRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	return Aggregate(oneTime, templates, start, end, caps), nil
}

// layoutByContainer runs the overlap layout once per container: each space
// is its own column, and events without a space share the day cell.
func layoutByContainer(events []entity.Event) map[uuid.UUID]Placement {
	byContainer := make(map[uuid.UUID][]entity.Event)
	for _, ev := range events {
		key := uuid.Nil
		if ev.SpaceID != nil {
			key = *ev.SpaceID
		}
		byContainer[key] = append(byContainer[key], ev)
	}

	merged := make(map[uuid.UUID]Placement, len(events))
	for _, group := range byContainer {
		for id, placement := range Layout(group) {
			merged[id] = placement
		}
	}
	return merged
}

func dayCacheKey(date time.Time, caps ViewerCapabilities) string {
	key := constants.RedisKeyScheduleCache + date.Format("2006-01-02")
	if caps.Members {
		key += ":members"
	}
	if caps.Admin {
		key += ":admin"
	}
	return key
}
