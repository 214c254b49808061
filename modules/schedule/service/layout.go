package service

import (
	"sort"

	"venue-api/modules/event/entity"

	"github.com/google/uuid"
)

// Placement positions one event within its container. ColumnCount 1 means
// the event spans the full container width; 2 means it takes half.
type Placement struct {
	Column      int `json:"column"`
	ColumnCount int `json:"column_count"`
}

// Layout assigns columns to concurrent events sharing one container (a
// space, or the day cell). Overlap groups are built by first-fit: an event
// joins the first group it overlaps any member of, otherwise it starts a
// new one. Packing within a group is deliberately simple: a lone event is
// full width; in a pair the later event is drawn as a half-width inset over
// the first; groups of three or more alternate between two half-width
// columns by index parity. This is not a minimum-column interval coloring
// and is kept that way on purpose: the inset-overlay look is the visual
// contract.
func Layout(events []entity.Event) map[uuid.UUID]Placement {
	placements := make(map[uuid.UUID]Placement, len(events))
	if len(events) == 0 {
		return placements
	}

	sorted := make([]*entity.Event, len(events))
	for i := range events {
		sorted[i] = &events[i]
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	var groups [][]*entity.Event
	for _, ev := range sorted {
		placed := false
		for gi := range groups {
			if overlapsAny(ev, groups[gi]) {
				groups[gi] = append(groups[gi], ev)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []*entity.Event{ev})
		}
	}

	for _, group := range groups {
		switch len(group) {
		case 1:
			placements[group[0].ID] = Placement{Column: 0, ColumnCount: 1}
		case 2:
			placements[group[0].ID] = Placement{Column: 0, ColumnCount: 1}
			placements[group[1].ID] = Placement{Column: 1, ColumnCount: 2}
		default:
			for i, ev := range group {
				placements[ev.ID] = Placement{Column: i % 2, ColumnCount: 2}
			}
		}
	}
	return placements
}

// overlapsAny uses the half-open interval test start1 < end2 && start2 < end1.
// An event without an end time is treated as one hour long here only.
func overlapsAny(ev *entity.Event, group []*entity.Event) bool {
	for _, member := range group {
		if ev.StartTime.Before(member.EffectiveEnd()) && member.StartTime.Before(ev.EffectiveEnd()) {
			return true
		}
	}
	return false
}
