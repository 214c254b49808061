package service

import (
	"fmt"
	"time"

	"venue-api/modules/event/entity"

	"github.com/google/uuid"
)

// ExpandForDate synthesizes one ephemeral event instance per active template
// whose weekday set contains the date's weekday. Instances are never
// persisted; identity is deterministic so repeated expansion of the same
// date yields the same instances.
func ExpandForDate(templates []entity.DailyEvent, date time.Time) []entity.Event {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	weekday := int(day.Weekday())

	var instances []entity.Event
	for i := range templates {
		tpl := &templates[i]
		if !tpl.Active || !tpl.OccursOn(weekday) {
			continue
		}
		instances = append(instances, expandTemplate(tpl, day))
	}
	return instances
}

func expandTemplate(tpl *entity.DailyEvent, day time.Time) entity.Event {
	var start, end time.Time
	if tpl.Category == entity.DailyCategoryClosed {
		// Closures span the whole day regardless of stored clocks.
		start = day
		end = day.Add(23*time.Hour + 59*time.Minute)
	} else {
		start = combineClock(day, tpl.StartClock)
		end = combineClock(day, tpl.EndClock)
	}

	slug := fmt.Sprintf("daily-%s-%d", tpl.ID, day.UnixMilli())
	templateID := tpl.ID

	instance := entity.Event{
		Title:           tpl.Title,
		Description:     tpl.Description,
		Slug:            slug,
		StartTime:       start,
		EndTime:         &end,
		Category:        tpl.Category,
		Published:       true,
		SpaceID:         tpl.SpaceID,
		DisplayStyle:    tpl.DisplayStyle,
		OverridesOthers: tpl.OverridesOthers,
		Kind:            entity.KindDailyInstance,
		TemplateID:      &templateID,
	}
	instance.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(slug))
	return instance
}

// combineClock merges a calendar date with a "15:04" wall-clock string.
// A malformed clock degrades to midnight rather than failing the expansion.
func combineClock(day time.Time, clock string) time.Time {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return day
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, day.Location())
}
