package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"venue-api/core/cache"
	"venue-api/core/constants"
	"venue-api/core/errors"
	"venue-api/core/logger"
	"venue-api/modules/calendar/client"
	credEntity "venue-api/modules/credential/entity"
	credService "venue-api/modules/credential/service"
	"venue-api/modules/event/entity"
	"venue-api/modules/event/repository"
	"venue-api/modules/sync/dto"

	"github.com/gosimple/slug"
)

// Category assigned to externally sourced events. Admins re-categorize
// manually, which sets the edit lock and stops sync from resetting it.
const defaultSyncCategory = entity.CategoryMusic

type SyncService interface {
	// SyncAll runs one pass per known credential (today: at most one),
	// isolating failures per credential.
	SyncAll(ctx context.Context) (map[string]dto.SyncResult, error)

	// SyncCalendar runs one pass for a single selected calendar.
	SyncCalendar(ctx context.Context, calendarID string) (dto.SyncResult, error)
}

type syncService struct {
	eventRepo repository.EventRepository
	creds     credService.CredentialService
	client    client.Client
	cache     cache.Cache
	now       func() time.Time
}

func NewSyncService(
	eventRepo repository.EventRepository,
	creds credService.CredentialService,
	calClient client.Client,
	c cache.Cache,
) SyncService {
	return &syncService{
		eventRepo: eventRepo,
		creds:     creds,
		client:    calClient,
		cache:     c,
		now:       time.Now,
	}
}

func (s *syncService) SyncAll(ctx context.Context) (map[string]dto.SyncResult, error) {
	cred, err := s.creds.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, errors.NewAppError(errors.ErrCredentialMissing, "no calendar account connected", nil)
	}

	results := make(map[string]dto.SyncResult)
	results[cred.ID.String()] = s.syncCredential(ctx, cred, cred.SelectedCalendarIDs)
	return results, nil
}

func (s *syncService) SyncCalendar(ctx context.Context, calendarID string) (dto.SyncResult, error) {
	cred, err := s.creds.Get(ctx)
	if err != nil {
		return dto.SyncResult{}, err
	}
	if cred == nil {
		return dto.SyncResult{}, errors.NewAppError(errors.ErrCredentialMissing, "no calendar account connected", nil)
	}

	selected := false
	for _, id := range cred.SelectedCalendarIDs {
		if id == calendarID {
			selected = true
			break
		}
	}
	if !selected {
		return dto.SyncResult{}, errors.NewAppError(errors.ErrNotFound, "calendar is not selected for sync", nil)
	}

	return s.syncCredential(ctx, cred, []string{calendarID}), nil
}

// syncCredential serializes passes per credential via a single-flight lock;
// a concurrent invocation is reported as a no-op rather than racing the
// cursor read-modify-write.
func (s *syncService) syncCredential(ctx context.Context, cred *credEntity.CalendarCredential, calendarIDs []string) dto.SyncResult {
	var result dto.SyncResult

	lockKey := constants.RedisKeySyncLock + cred.ID.String()
	acquired, err := s.cache.AcquireLock(ctx, lockKey, constants.SyncLockTTL)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to acquire sync lock: %v", err))
		return result
	}
	if !acquired {
		logger.Info("SyncService:SyncCredential:AlreadyRunning", "credential_id", cred.ID)
		result.Errors = append(result.Errors, "sync already running for this credential")
		return result
	}
	defer func() {
		if err := s.cache.ReleaseLock(context.WithoutCancel(ctx), lockKey); err != nil {
			logger.Error("SyncService:SyncCredential:ReleaseLock:Error", "error", err)
		}
	}()

	refreshToken, err := s.creds.DecryptRefreshToken(cred)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to decrypt refresh token: %v", err))
		return result
	}

	accessToken, err := s.client.RefreshAccessToken(ctx, refreshToken)
	if err != nil {
		// Fatal for this credential's pass; other credentials are unaffected.
		result.Errors = append(result.Errors, fmt.Sprintf("failed to refresh access token: %v", err))
		return result
	}

	for _, calendarID := range calendarIDs {
		one := s.syncOneCalendar(ctx, cred, accessToken, calendarID)
		result.Merge(one)
	}

	logger.Info("SyncService:SyncCredential:Done",
		"credential_id", cred.ID,
		"created", result.Created,
		"updated", result.Updated,
		"deleted", result.Deleted,
		"errors", len(result.Errors),
	)
	return result
}

func (s *syncService) syncOneCalendar(ctx context.Context, cred *credEntity.CalendarCredential, accessToken, calendarID string) dto.SyncResult {
	var result dto.SyncResult

	opts := client.ListOptions{}
	if cred.SyncCursor != nil && *cred.SyncCursor != "" {
		opts.SyncToken = *cred.SyncCursor
	} else {
		today := s.today()
		opts.TimeMin = today
		opts.TimeMax = today.AddDate(0, 0, constants.SyncWindowDays)
	}

	page, err := s.client.ListEvents(ctx, accessToken, calendarID, opts)
	if err != nil {
		if stderrors.Is(err, client.ErrSyncTokenExpired) {
			// Clear the cursor so the next pass falls back to a window fetch.
			if clearErr := s.clearCursor(ctx, cred); clearErr != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("calendar %s: failed to clear expired cursor: %v", calendarID, clearErr))
			}
			result.Errors = append(result.Errors, fmt.Sprintf("calendar %s: sync token expired, full resync on next pass", calendarID))
			return result
		}
		result.Errors = append(result.Errors, fmt.Sprintf("calendar %s: %v", calendarID, err))
		return result
	}

	for _, item := range page.Items {
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("calendar %s: pass abandoned: %v", calendarID, err))
			return result
		}
		if err := s.applyItem(ctx, calendarID, item, &result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("calendar %s item %s: %v", calendarID, item.ID, err))
		}
	}

	if page.NextSyncToken != "" {
		cursor := page.NextSyncToken
		if err := s.advanceCursor(ctx, cred, cursor); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("calendar %s: failed to persist cursor: %v", calendarID, err))
		}
	}

	return result
}

// applyItem upserts or deletes one upstream occurrence. Every path is
// idempotent; re-running the same item is a no-op.
func (s *syncService) applyItem(ctx context.Context, calendarID string, item client.Item, result *dto.SyncResult) error {
	existing, err := s.eventRepo.FindByExternalKey(ctx, calendarID, item.ID)
	if err != nil {
		return err
	}

	if item.Status == client.ItemStatusCancelled {
		// The only deletion path driven by sync.
		if existing == nil {
			return nil
		}
		if err := s.eventRepo.Delete(ctx, existing.ID); err != nil {
			return err
		}
		result.Deleted++
		return nil
	}

	start, end, err := client.ResolveTimes(item)
	if err != nil {
		return err
	}

	if existing != nil {
		if existing.ManualEditLock {
			return nil
		}
		updated := applyItemFields(existing, item, start, end)
		if !updated {
			return nil
		}
		if err := s.eventRepo.Update(ctx, existing); err != nil {
			return err
		}
		result.Updated++
		return nil
	}

	event := &entity.Event{
		Title:              item.Summary,
		Slug:               DeriveSlug(calendarID, item.ID),
		StartTime:          start,
		EndTime:            end,
		Category:           defaultSyncCategory,
		Published:          true,
		ExternalEventID:    &item.ID,
		ExternalCalendarID: &calendarID,
		DisplayStyle:       entity.DisplayNormal,
	}
	if item.Description != "" {
		event.Description = &item.Description
	}

	if _, err := s.eventRepo.Create(ctx, event); err != nil {
		if !repository.IsUniqueViolation(err, "events_slug_key") {
			return err
		}
		// Degenerate slug collision; retry once with a timestamp suffix.
		event.Slug = fmt.Sprintf("%s-%d", event.Slug, s.now().UnixMilli())
		if _, err := s.eventRepo.Create(ctx, event); err != nil {
			return errors.NewAppError(errors.ErrSlugCollision, "slug collision retry failed", err)
		}
	}
	result.Created++
	return nil
}

// applyItemFields copies upstream fields onto the stored event, reporting
// whether anything actually changed.
func applyItemFields(event *entity.Event, item client.Item, start time.Time, end *time.Time) bool {
	changed := false

	if event.Title != item.Summary {
		event.Title = item.Summary
		changed = true
	}

	var desc *string
	if item.Description != "" {
		desc = &item.Description
	}
	if !equalStringPtr(event.Description, desc) {
		event.Description = desc
		changed = true
	}

	if !event.StartTime.Equal(start) {
		event.StartTime = start
		changed = true
	}
	if !equalTimePtr(event.EndTime, end) {
		event.EndTime = end
		changed = true
	}
	if event.Category != defaultSyncCategory {
		event.Category = defaultSyncCategory
		changed = true
	}
	if !event.Published {
		event.Published = true
		changed = true
	}
	return changed
}

// DeriveSlug builds the deterministic slug for a synced occurrence:
// calendar id + external id, lowercased, non-alphanumeric runs collapsed to
// single hyphens, leading/trailing hyphens trimmed.
func DeriveSlug(calendarID, externalID string) string {
	return slug.Make(calendarID + " " + externalID)
}

func (s *syncService) advanceCursor(ctx context.Context, cred *credEntity.CalendarCredential, cursor string) error {
	now := s.now()
	if err := s.creds.UpdateCursor(ctx, &cursor, now); err != nil {
		return err
	}
	cred.SyncCursor = &cursor
	cred.LastSyncAt = &now
	return nil
}

func (s *syncService) clearCursor(ctx context.Context, cred *credEntity.CalendarCredential) error {
	if err := s.creds.UpdateCursor(ctx, nil, s.now()); err != nil {
		return err
	}
	cred.SyncCursor = nil
	return nil
}

func (s *syncService) today() time.Time {
	n := s.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
