package entity

import (
	"venue-api/core/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Daily event categories
const (
	DailyCategoryFacility = "facility"
	DailyCategoryClosed   = "closed"
)

// DailyEvent is a recurring weekly template (facility hours or closures),
// expanded on read into concrete per-day instances. Never touched by sync.
type DailyEvent struct {
	entity.BaseEntity
	Title       string  `db:"title" json:"title"`
	Description *string `db:"description" json:"description,omitempty"`

	// Wall-clock time of day in "15:04" form.
	StartClock string `db:"start_clock" json:"start_clock"`
	EndClock   string `db:"end_clock" json:"end_clock"`

	// Weekdays holds day-of-week numbers 0 (Sunday) through 6 (Saturday).
	// Must be non-empty while Active.
	Weekdays pq.Int64Array `db:"weekdays" json:"weekdays"`

	Category        string     `db:"category" json:"category"`
	DisplayStyle    string     `db:"display_style" json:"display_style"`
	OverridesOthers bool       `db:"overrides_others" json:"overrides_others"`
	Active          bool       `db:"active" json:"active"`
	ShowInGrid      bool       `db:"show_in_grid" json:"show_in_grid"`
	SpaceID         *uuid.UUID `db:"space_id" json:"space_id,omitempty"`
}

func (DailyEvent) TableName() string {
	return "daily_events"
}

// OccursOn reports whether the template fires on the given weekday.
func (d *DailyEvent) OccursOn(weekday int) bool {
	for _, w := range d.Weekdays {
		if int(w) == weekday {
			return true
		}
	}
	return false
}
