package service

import (
	"context"
	"testing"

	"venue-api/core/errors"
	"venue-api/modules/event/dto"
	"venue-api/modules/event/entity"

	"github.com/google/uuid"
)

type mockDailyRepo struct {
	templates map[uuid.UUID]*entity.DailyEvent
}

func newMockDailyRepo() *mockDailyRepo {
	return &mockDailyRepo{templates: make(map[uuid.UUID]*entity.DailyEvent)}
}

func (m *mockDailyRepo) Create(_ context.Context, tpl *entity.DailyEvent) (*entity.DailyEvent, error) {
	tpl.ID = uuid.New()
	m.templates[tpl.ID] = tpl
	return tpl, nil
}

func (m *mockDailyRepo) Update(_ context.Context, tpl *entity.DailyEvent) error {
	m.templates[tpl.ID] = tpl
	return nil
}

func (m *mockDailyRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.templates, id)
	return nil
}

func (m *mockDailyRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.DailyEvent, error) {
	if tpl, ok := m.templates[id]; ok {
		return tpl, nil
	}
	return nil, nil
}

func (m *mockDailyRepo) List(_ context.Context) ([]entity.DailyEvent, error) {
	var result []entity.DailyEvent
	for _, tpl := range m.templates {
		result = append(result, *tpl)
	}
	return result, nil
}

func (m *mockDailyRepo) ListActive(_ context.Context) ([]entity.DailyEvent, error) {
	var result []entity.DailyEvent
	for _, tpl := range m.templates {
		if tpl.Active {
			result = append(result, *tpl)
		}
	}
	return result, nil
}

func validDailyRequest() *dto.DailyEventRequest {
	return &dto.DailyEventRequest{
		Title:      "Studio Hours",
		StartClock: "09:00",
		EndClock:   "17:00",
		Weekdays:   []int{1, 3, 5},
		Category:   entity.DailyCategoryFacility,
		Active:     true,
		ShowInGrid: true,
	}
}

func TestCreateDailyEvent(t *testing.T) {
	svc := NewDailyEventService(newMockDailyRepo())

	tpl, err := svc.Create(context.Background(), validDailyRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tpl.Weekdays) != 3 {
		t.Errorf("weekdays: %v", tpl.Weekdays)
	}
	if tpl.DisplayStyle != entity.DisplayNormal {
		t.Errorf("display style default: %q", tpl.DisplayStyle)
	}
}

func TestCreateDailyEventValidation(t *testing.T) {
	svc := NewDailyEventService(newMockDailyRepo())

	tests := []struct {
		name   string
		mutate func(*dto.DailyEventRequest)
	}{
		{"bad category", func(r *dto.DailyEventRequest) { r.Category = "music" }},
		{"bad start clock", func(r *dto.DailyEventRequest) { r.StartClock = "9am" }},
		{"bad end clock", func(r *dto.DailyEventRequest) { r.EndClock = "25:00" }},
		{"weekday out of range", func(r *dto.DailyEventRequest) { r.Weekdays = []int{7} }},
		{"active without weekdays", func(r *dto.DailyEventRequest) { r.Weekdays = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validDailyRequest()
			tt.mutate(req)
			_, err := svc.Create(context.Background(), req)
			ae, ok := err.(*errors.AppError)
			if !ok || ae.Code != errors.ErrInvalidInput {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCreateInactiveDailyEventAllowsEmptyWeekdays(t *testing.T) {
	svc := NewDailyEventService(newMockDailyRepo())

	req := validDailyRequest()
	req.Active = false
	req.Weekdays = nil
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateDailyEventKeepsIdentity(t *testing.T) {
	repo := newMockDailyRepo()
	svc := NewDailyEventService(repo)

	created, err := svc.Create(context.Background(), validDailyRequest())
	if err != nil {
		t.Fatal(err)
	}

	req := validDailyRequest()
	req.Title = "Extended Hours"
	updated, err := svc.Update(context.Background(), created.ID, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID != created.ID {
		t.Error("update must preserve the template id")
	}
	if updated.Title != "Extended Hours" {
		t.Errorf("title: %q", updated.Title)
	}
}

func TestUpdateMissingDailyEvent(t *testing.T) {
	svc := NewDailyEventService(newMockDailyRepo())

	_, err := svc.Update(context.Background(), uuid.New(), validDailyRequest())
	ae, ok := err.(*errors.AppError)
	if !ok || ae.Code != errors.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
