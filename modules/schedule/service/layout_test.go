package service

import (
	"testing"
	"time"

	"venue-api/modules/event/entity"
)

func timedEvent(title string, start, end time.Time) entity.Event {
	ev := oneTimeEvent(title, entity.CategoryMusic, start)
	ev.EndTime = &end
	return ev
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
}

func TestLayoutSingleEventFullWidth(t *testing.T) {
	ev := timedEvent("solo", at(19, 0), at(22, 0))

	placements := Layout([]entity.Event{ev})
	if got := placements[ev.ID]; got != (Placement{Column: 0, ColumnCount: 1}) {
		t.Fatalf("solo event: %+v", got)
	}
}

func TestLayoutPairInsetOverlay(t *testing.T) {
	first := timedEvent("first", at(19, 0), at(22, 0))
	second := timedEvent("second", at(20, 0), at(23, 0))

	placements := Layout([]entity.Event{second, first})
	if got := placements[first.ID]; got != (Placement{Column: 0, ColumnCount: 1}) {
		t.Errorf("first of pair: %+v", got)
	}
	if got := placements[second.ID]; got != (Placement{Column: 1, ColumnCount: 2}) {
		t.Errorf("second of pair: %+v", got)
	}
}

func TestLayoutThreeAlternateColumns(t *testing.T) {
	a := timedEvent("a", at(18, 0), at(23, 0))
	b := timedEvent("b", at(19, 0), at(21, 0))
	c := timedEvent("c", at(20, 0), at(22, 0))

	placements := Layout([]entity.Event{a, b, c})
	wants := map[string]Placement{
		"a": {Column: 0, ColumnCount: 2},
		"b": {Column: 1, ColumnCount: 2},
		"c": {Column: 0, ColumnCount: 2},
	}
	for _, ev := range []entity.Event{a, b, c} {
		if got := placements[ev.ID]; got != wants[ev.Title] {
			t.Errorf("%s: got %+v, want %+v", ev.Title, got, wants[ev.Title])
		}
	}
}

func TestLayoutDisjointEventsFullWidth(t *testing.T) {
	morning := timedEvent("morning", at(9, 0), at(11, 0))
	evening := timedEvent("evening", at(19, 0), at(22, 0))

	placements := Layout([]entity.Event{morning, evening})
	for _, ev := range []entity.Event{morning, evening} {
		if got := placements[ev.ID]; got != (Placement{Column: 0, ColumnCount: 1}) {
			t.Errorf("%s: %+v", ev.Title, got)
		}
	}
}

func TestLayoutTouchingEventsDoNotOverlap(t *testing.T) {
	// Half-open intervals: one ending exactly when the next starts is no overlap.
	first := timedEvent("first", at(18, 0), at(20, 0))
	second := timedEvent("second", at(20, 0), at(22, 0))

	placements := Layout([]entity.Event{first, second})
	if got := placements[second.ID]; got != (Placement{Column: 0, ColumnCount: 1}) {
		t.Fatalf("touching events must not share a group: %+v", got)
	}
}

func TestLayoutMissingEndDefaultsToOneHour(t *testing.T) {
	open := oneTimeEvent("open-ended", entity.CategoryMusic, at(19, 0))
	within := timedEvent("within", at(19, 30), at(20, 30))
	after := timedEvent("after", at(20, 30), at(21, 0))

	placements := Layout([]entity.Event{open, within, after})
	if got := placements[within.ID]; got.ColumnCount != 2 {
		t.Errorf("event inside the one-hour default must overlap: %+v", got)
	}
	if got := placements[after.ID]; got != (Placement{Column: 0, ColumnCount: 1}) {
		t.Errorf("event after the one-hour default must not overlap: %+v", got)
	}
}

func TestLayoutEmpty(t *testing.T) {
	if got := Layout(nil); len(got) != 0 {
		t.Fatalf("expected empty placement map, got %d", len(got))
	}
}
