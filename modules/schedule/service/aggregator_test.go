package service

import (
	"testing"
	"time"

	"venue-api/modules/event/entity"

	"github.com/google/uuid"
)

func oneTimeEvent(title, category string, start time.Time) entity.Event {
	ev := entity.Event{
		Title:     title,
		Slug:      title,
		StartTime: start,
		Category:  category,
		Published: true,
	}
	ev.ID = uuid.New()
	return ev
}

var (
	aggDay   = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) // a Monday
	aggStart = aggDay
	aggEnd   = aggDay.AddDate(0, 0, 1)
)

func TestAggregateFiltersRange(t *testing.T) {
	events := []entity.Event{
		oneTimeEvent("before", entity.CategoryMusic, aggStart.Add(-time.Hour)),
		oneTimeEvent("inside", entity.CategoryMusic, aggStart.Add(19*time.Hour)),
		oneTimeEvent("at-end", entity.CategoryMusic, aggEnd),
	}

	got := Aggregate(events, nil, aggStart, aggEnd, ViewerCapabilities{})
	if len(got) != 1 || got[0].Title != "inside" {
		t.Fatalf("half-open range filter failed: %+v", got)
	}
	if got[0].Kind != entity.KindOneTime {
		t.Errorf("kind: %q", got[0].Kind)
	}
}

func TestAggregateVisibility(t *testing.T) {
	unpublished := oneTimeEvent("draft", entity.CategoryMusic, aggStart.Add(10*time.Hour))
	unpublished.Published = false
	membersOnly := oneTimeEvent("members-night", entity.CategoryMembers, aggStart.Add(11*time.Hour))
	public := oneTimeEvent("public", entity.CategoryMusic, aggStart.Add(12*time.Hour))
	events := []entity.Event{unpublished, membersOnly, public}

	tests := []struct {
		name string
		caps ViewerCapabilities
		want []string
	}{
		{"anonymous", ViewerCapabilities{}, []string{"public"}},
		{"member", ViewerCapabilities{Members: true}, []string{"members-night", "public"}},
		{"admin", ViewerCapabilities{Admin: true}, []string{"draft", "public"}},
		{"admin member", ViewerCapabilities{Members: true, Admin: true}, []string{"draft", "members-night", "public"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(events, nil, aggStart, aggEnd, tt.caps)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d events, want %d", len(got), len(tt.want))
			}
			for i, title := range tt.want {
				if got[i].Title != title {
					t.Errorf("position %d: got %q, want %q", i, got[i].Title, title)
				}
			}
		})
	}
}

func TestAggregateOrdersSameStartByCategory(t *testing.T) {
	start := aggStart.Add(18 * time.Hour)
	events := []entity.Event{
		oneTimeEvent("misc", entity.CategoryOther, start),
		oneTimeEvent("gig", entity.CategoryMusic, start),
		oneTimeEvent("shutdown", entity.CategoryClosed, start),
	}

	got := Aggregate(events, nil, aggStart, aggEnd, ViewerCapabilities{})
	want := []string{"shutdown", "gig", "misc"}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("position %d: got %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestAggregateMergesDailyInstances(t *testing.T) {
	shown := facilityTemplate("Studio Hours", 1)
	hidden := facilityTemplate("Back Office", 1)
	hidden.ShowInGrid = false
	closure := facilityTemplate("Holiday", 1)
	closure.Category = entity.DailyCategoryClosed
	closure.ShowInGrid = false

	got := Aggregate(nil, []entity.DailyEvent{shown, hidden, closure}, aggStart, aggEnd, ViewerCapabilities{})
	titles := make(map[string]bool)
	for _, ev := range got {
		titles[ev.Title] = true
	}
	if !titles["Studio Hours"] {
		t.Error("grid template missing")
	}
	if titles["Back Office"] {
		t.Error("non-grid template leaked into the schedule")
	}
	// Closures always show regardless of the grid flag.
	if !titles["Holiday"] {
		t.Error("closure missing")
	}
}

func TestAggregateOverrideSuppression(t *testing.T) {
	override := oneTimeEvent("private-hire", entity.CategoryClosed, aggStart.Add(9*time.Hour))
	override.OverridesOthers = true
	laterOverride := oneTimeEvent("second-closure", entity.CategoryClosed, aggStart.Add(12*time.Hour))
	laterOverride.OverridesOthers = true
	gig := oneTimeEvent("gig", entity.CategoryMusic, aggStart.Add(19*time.Hour))
	plainClosed := oneTimeEvent("plain-closed", entity.CategoryClosed, aggStart.Add(8*time.Hour))

	got := Aggregate([]entity.Event{override, laterOverride, gig, plainClosed}, nil, aggStart, aggEnd, ViewerCapabilities{})
	if len(got) != 4 {
		t.Fatalf("suppression must annotate, not remove: got %d events", len(got))
	}

	suppressed := make(map[string]bool)
	for _, ev := range got {
		suppressed[ev.Title] = ev.Suppressed
	}
	if suppressed["private-hire"] {
		t.Error("earliest override must win, not be suppressed")
	}
	for _, title := range []string{"second-closure", "gig", "plain-closed"} {
		if !suppressed[title] {
			t.Errorf("%q should be suppressed by the override", title)
		}
	}
}

func TestAggregateOverrideScopedToDay(t *testing.T) {
	override := oneTimeEvent("closure", entity.CategoryClosed, aggStart.Add(9*time.Hour))
	override.OverridesOthers = true
	nextDayGig := oneTimeEvent("gig", entity.CategoryMusic, aggStart.AddDate(0, 0, 1).Add(19*time.Hour))

	end := aggStart.AddDate(0, 0, 2)
	got := Aggregate([]entity.Event{override, nextDayGig}, nil, aggStart, end, ViewerCapabilities{})
	for _, ev := range got {
		if ev.Title == "gig" && ev.Suppressed {
			t.Error("override must not suppress events on other days")
		}
	}
}

func TestAggregateMembersInstanceHiddenFromAnonymous(t *testing.T) {
	tpl := facilityTemplate("Members Lounge", 1)
	tpl.Category = entity.CategoryMembers

	anon := Aggregate(nil, []entity.DailyEvent{tpl}, aggStart, aggEnd, ViewerCapabilities{})
	if len(anon) != 0 {
		t.Fatalf("members-only instance visible to anonymous viewer")
	}

	member := Aggregate(nil, []entity.DailyEvent{tpl}, aggStart, aggEnd, ViewerCapabilities{Members: true})
	if len(member) != 1 {
		t.Fatalf("members-only instance hidden from member")
	}
}
