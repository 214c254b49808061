package service

import (
	"testing"
	"time"

	"venue-api/modules/event/entity"

	"github.com/google/uuid"
)

func facilityTemplate(title string, weekdays ...int64) entity.DailyEvent {
	tpl := entity.DailyEvent{
		Title:      title,
		StartClock: "09:00",
		EndClock:   "17:00",
		Weekdays:   weekdays,
		Category:   entity.DailyCategoryFacility,
		Active:     true,
		ShowInGrid: true,
	}
	tpl.ID = uuid.New()
	return tpl
}

func TestExpandForDateMatchesWeekday(t *testing.T) {
	// Mon/Wed/Fri template.
	tpl := facilityTemplate("Studio Hours", 1, 3, 5)

	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	instances := ExpandForDate([]entity.DailyEvent{tpl}, monday)
	if len(instances) != 1 {
		t.Fatalf("expected 1 instance on Monday, got %d", len(instances))
	}

	inst := instances[0]
	if inst.Kind != entity.KindDailyInstance {
		t.Errorf("kind: %q", inst.Kind)
	}
	if inst.TemplateID == nil || *inst.TemplateID != tpl.ID {
		t.Error("template id not carried onto instance")
	}
	wantStart := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	if !inst.StartTime.Equal(wantStart) {
		t.Errorf("start: got %v, want %v", inst.StartTime, wantStart)
	}
	wantEnd := time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC)
	if inst.EndTime == nil || !inst.EndTime.Equal(wantEnd) {
		t.Errorf("end: got %v, want %v", inst.EndTime, wantEnd)
	}

	if got := ExpandForDate([]entity.DailyEvent{tpl}, tuesday); len(got) != 0 {
		t.Errorf("expected no instances on Tuesday, got %d", len(got))
	}
}

func TestExpandForDateSkipsInactive(t *testing.T) {
	tpl := facilityTemplate("Studio Hours", 1)
	tpl.Active = false

	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	if got := ExpandForDate([]entity.DailyEvent{tpl}, monday); len(got) != 0 {
		t.Fatalf("inactive template must not expand, got %d", len(got))
	}
}

func TestExpandClosureSpansWholeDay(t *testing.T) {
	tpl := facilityTemplate("Closed for Maintenance", 1)
	tpl.Category = entity.DailyCategoryClosed
	tpl.StartClock = "10:00"
	tpl.EndClock = "14:00"

	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	instances := ExpandForDate([]entity.DailyEvent{tpl}, monday)
	if len(instances) != 1 {
		t.Fatalf("expected 1 instance, got %d", len(instances))
	}

	inst := instances[0]
	if !inst.StartTime.Equal(monday) {
		t.Errorf("closure must start at midnight, got %v", inst.StartTime)
	}
	wantEnd := monday.Add(23*time.Hour + 59*time.Minute)
	if inst.EndTime == nil || !inst.EndTime.Equal(wantEnd) {
		t.Errorf("closure must span the day, got %v", inst.EndTime)
	}
}

func TestExpandForDateIsDeterministic(t *testing.T) {
	tpl := facilityTemplate("Studio Hours", 1)
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	a := ExpandForDate([]entity.DailyEvent{tpl}, monday)
	b := ExpandForDate([]entity.DailyEvent{tpl}, monday)
	if a[0].ID != b[0].ID {
		t.Error("repeated expansion must produce the same instance id")
	}
	if a[0].Slug != b[0].Slug {
		t.Error("repeated expansion must produce the same slug")
	}

	nextMonday := monday.AddDate(0, 0, 7)
	c := ExpandForDate([]entity.DailyEvent{tpl}, nextMonday)
	if a[0].ID == c[0].ID {
		t.Error("different days must produce different instance ids")
	}
}

func TestExpandMalformedClockDegradesToMidnight(t *testing.T) {
	tpl := facilityTemplate("Studio Hours", 1)
	tpl.StartClock = "not-a-clock"

	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	instances := ExpandForDate([]entity.DailyEvent{tpl}, monday)
	if len(instances) != 1 {
		t.Fatalf("expected 1 instance, got %d", len(instances))
	}
	if !instances[0].StartTime.Equal(monday) {
		t.Errorf("malformed clock must fall back to midnight, got %v", instances[0].StartTime)
	}
}
