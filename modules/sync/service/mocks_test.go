package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"venue-api/modules/calendar/client"
	credEntity "venue-api/modules/credential/entity"
	"venue-api/modules/event/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/oauth2"
)

// ── Mock EventRepository ──

type mockEventRepo struct {
	events    map[uuid.UUID]*entity.Event
	createErr error
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[uuid.UUID]*entity.Event)}
}

func (m *mockEventRepo) Create(_ context.Context, event *entity.Event) (*entity.Event, error) {
	if m.createErr != nil {
		err := m.createErr
		m.createErr = nil
		return nil, err
	}
	for _, e := range m.events {
		if e.Slug == event.Slug {
			return nil, &pq.Error{Code: "23505", Constraint: "events_slug_key"}
		}
	}
	event.ID = uuid.New()
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	m.events[event.ID] = event
	return event, nil
}

func (m *mockEventRepo) Update(_ context.Context, event *entity.Event) error {
	if _, ok := m.events[event.ID]; !ok {
		return fmt.Errorf("event %s not found", event.ID)
	}
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.events, id)
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Event, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, nil
}

func (m *mockEventRepo) GetBySlug(_ context.Context, slug string) (*entity.Event, error) {
	for _, e := range m.events {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, nil
}

func (m *mockEventRepo) FindByExternalKey(_ context.Context, calendarID, externalID string) (*entity.Event, error) {
	for _, e := range m.events {
		if e.ExternalCalendarID != nil && *e.ExternalCalendarID == calendarID &&
			e.ExternalEventID != nil && *e.ExternalEventID == externalID {
			return e, nil
		}
	}
	return nil, nil
}

func (m *mockEventRepo) ListInRange(_ context.Context, start, end time.Time) ([]entity.Event, error) {
	var result []entity.Event
	for _, e := range m.events {
		if !e.StartTime.Before(start) && e.StartTime.Before(end) {
			result = append(result, *e)
		}
	}
	return result, nil
}

// ── Mock CredentialService ──

type mockCredentialService struct {
	cred          *credEntity.CalendarCredential
	refreshToken  string
	cursorUpdates []*string
	saved         *credEntity.CalendarCredential
}

func newMockCredentialService() *mockCredentialService {
	return &mockCredentialService{refreshToken: "refresh-token"}
}

func (m *mockCredentialService) Get(_ context.Context) (*credEntity.CalendarCredential, error) {
	return m.cred, nil
}

func (m *mockCredentialService) SaveFromOAuth(_ context.Context, refreshToken, accountEmail string, calendarIDs []string) (*credEntity.CalendarCredential, error) {
	m.saved = &credEntity.CalendarCredential{
		RefreshTokenEnc:     []byte(refreshToken),
		SelectedCalendarIDs: pq.StringArray(calendarIDs),
		AccountEmail:        accountEmail,
	}
	m.saved.ID = uuid.New()
	return m.saved, nil
}

func (m *mockCredentialService) SelectCalendars(_ context.Context, calendarIDs []string) error {
	if m.cred != nil {
		m.cred.SelectedCalendarIDs = pq.StringArray(calendarIDs)
	}
	return nil
}

func (m *mockCredentialService) UpdateCursor(_ context.Context, cursor *string, _ time.Time) error {
	m.cursorUpdates = append(m.cursorUpdates, cursor)
	return nil
}

func (m *mockCredentialService) DecryptRefreshToken(_ *credEntity.CalendarCredential) (string, error) {
	return m.refreshToken, nil
}

// ── Mock calendar client ──

type mockCalendarClient struct {
	pages       map[string]*client.EventPage
	listErr     error
	listOpts    []client.ListOptions
	calendars   []client.Calendar
	calsErr     error
	token       *oauth2.Token
	exchangeErr error
}

func newMockCalendarClient() *mockCalendarClient {
	return &mockCalendarClient{pages: make(map[string]*client.EventPage)}
}

func (m *mockCalendarClient) ExchangeCode(_ context.Context, _ string) (*oauth2.Token, error) {
	if m.exchangeErr != nil {
		return nil, m.exchangeErr
	}
	return m.token, nil
}

func (m *mockCalendarClient) RefreshAccessToken(_ context.Context, _ string) (string, error) {
	return "access-token", nil
}

func (m *mockCalendarClient) ListCalendars(_ context.Context, _ string) ([]client.Calendar, error) {
	if m.calsErr != nil {
		return nil, m.calsErr
	}
	return m.calendars, nil
}

func (m *mockCalendarClient) ListEvents(_ context.Context, _, calendarID string, opts client.ListOptions) (*client.EventPage, error) {
	m.listOpts = append(m.listOpts, opts)
	if m.listErr != nil {
		return nil, m.listErr
	}
	if page, ok := m.pages[calendarID]; ok {
		return page, nil
	}
	return &client.EventPage{}, nil
}

func (m *mockCalendarClient) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

// ── Mock cache ──

type mockCache struct {
	values      map[string][]byte
	locks       map[string]bool
	denyLock    bool
	lockCalls   int
	unlockCalls int
}

func newMockCache() *mockCache {
	return &mockCache{
		values: make(map[string][]byte),
		locks:  make(map[string]bool),
	}
}

func (m *mockCache) AcquireLock(_ context.Context, key string, _ time.Duration) (bool, error) {
	m.lockCalls++
	if m.denyLock || m.locks[key] {
		return false, nil
	}
	m.locks[key] = true
	return true, nil
}

func (m *mockCache) ReleaseLock(_ context.Context, key string) error {
	m.unlockCalls++
	delete(m.locks, key)
	return nil
}

func (m *mockCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := m.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *mockCache) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func (m *mockCache) Close() error { return nil }
