package service

import (
	"sort"
	"time"

	"venue-api/modules/event/entity"
)

// ViewerCapabilities gates restricted-visibility events during aggregation.
type ViewerCapabilities struct {
	Members bool
	Admin   bool
}

// Aggregate merges one-time events with expanded daily instances for the
// half-open range [start, end), applies visibility and override rules, and
// returns a single ordered schedule. It is a total function: malformed
// inputs degrade, they never panic.
func Aggregate(oneTime []entity.Event, templates []entity.DailyEvent, start, end time.Time, caps ViewerCapabilities) []entity.Event {
	merged := make([]entity.Event, 0, len(oneTime))

	for _, ev := range oneTime {
		if ev.StartTime.Before(start) || !ev.StartTime.Before(end) {
			continue
		}
		if !visible(&ev, caps) {
			continue
		}
		ev.Kind = entity.KindOneTime
		merged = append(merged, ev)
	}

	// Closures always show in the aggregated grid; other templates honor
	// their own flag.
	gridTemplates := make([]entity.DailyEvent, 0, len(templates))
	for _, tpl := range templates {
		if tpl.ShowInGrid || tpl.Category == entity.DailyCategoryClosed {
			gridTemplates = append(gridTemplates, tpl)
		}
	}

	for day := dateOf(start); day.Before(end); day = day.AddDate(0, 0, 1) {
		instances := ExpandForDate(gridTemplates, day)
		for _, inst := range instances {
			if inst.Category == entity.CategoryMembers && !caps.Members {
				continue
			}
			merged = append(merged, inst)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].StartTime.Equal(merged[j].StartTime) {
			return merged[i].StartTime.Before(merged[j].StartTime)
		}
		return categoryRank(merged[i].Category) < categoryRank(merged[j].Category)
	})

	applyOverrides(merged)
	return merged
}

func visible(ev *entity.Event, caps ViewerCapabilities) bool {
	if !ev.Published && !caps.Admin {
		return false
	}
	if ev.Category == entity.CategoryMembers && !caps.Members {
		return false
	}
	return true
}

// categoryRank orders same-start events: CLOSED first, OTHER last.
func categoryRank(category string) int {
	switch category {
	case entity.CategoryClosed:
		return 0
	case entity.CategoryOther:
		return 2
	default:
		return 1
	}
}

// applyOverrides tags events suppressed by a CLOSED override on their day.
// Only one override wins per day; when several exist the earliest-starting
// one does. Data is annotated, never removed.
func applyOverrides(events []entity.Event) {
	winners := make(map[time.Time]int)

	for i := range events {
		ev := &events[i]
		if ev.Category != entity.CategoryClosed || !ev.OverridesOthers {
			continue
		}
		day := dateOf(ev.StartTime)
		if w, ok := winners[day]; !ok || ev.StartTime.Before(events[w].StartTime) {
			winners[day] = i
		}
	}
	if len(winners) == 0 {
		return
	}

	for i := range events {
		day := dateOf(events[i].StartTime)
		if w, ok := winners[day]; ok && w != i {
			events[i].Suppressed = true
		}
	}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
