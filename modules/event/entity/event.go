package entity

import (
	"time"

	"venue-api/core/entity"

	"github.com/google/uuid"
)

// Event categories
const (
	CategoryMusic     = "music"
	CategoryPrivate   = "private"
	CategoryCommunity = "community"
	CategoryMembers   = "members"
	CategoryClosed    = "closed"
	CategoryOther     = "other"
)

// Display styles
const (
	DisplayNormal   = "normal"
	DisplayVertical = "vertical"
)

// Event kinds. A stored row is always a one-time event; daily instances are
// synthesized at read time from DailyEvent templates and never persisted.
const (
	KindOneTime       = "one_time"
	KindDailyInstance = "daily_instance"
)

// Event is a single occurrence on the venue schedule.
type Event struct {
	entity.BaseEntity
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description,omitempty"`
	Slug        string     `db:"slug" json:"slug"`
	StartTime   time.Time  `db:"start_time" json:"start_time"`
	EndTime     *time.Time `db:"end_time" json:"end_time,omitempty"`
	Category    string     `db:"category" json:"category"`
	Published   bool       `db:"published" json:"published"`
	SpaceID     *uuid.UUID `db:"space_id" json:"space_id,omitempty"`

	// External origin; the pair is the sync idempotency key and is unique
	// among non-null values.
	ExternalEventID    *string `db:"external_event_id" json:"external_event_id,omitempty"`
	ExternalCalendarID *string `db:"external_calendar_id" json:"external_calendar_id,omitempty"`

	// ManualEditLock stops sync from overwriting an admin-edited row.
	ManualEditLock  bool   `db:"manual_edit_lock" json:"manual_edit_lock"`
	DisplayStyle    string `db:"display_style" json:"display_style"`
	OverridesOthers bool   `db:"overrides_others" json:"overrides_others"`

	// Aggregation-only fields, never persisted.
	Kind       string     `db:"-" json:"kind"`
	TemplateID *uuid.UUID `db:"-" json:"template_id,omitempty"`
	Suppressed bool       `db:"-" json:"suppressed"`
}

func (Event) TableName() string {
	return "events"
}

// IsExternal reports whether the row is owned by the sync coordinator.
func (e *Event) IsExternal() bool {
	return e.ExternalEventID != nil && e.ExternalCalendarID != nil
}

// EffectiveEnd returns the end timestamp, substituting a one-hour span when
// the end is missing. Used by the layout engine only.
func (e *Event) EffectiveEnd() time.Time {
	if e.EndTime != nil && e.EndTime.After(e.StartTime) {
		return *e.EndTime
	}
	return e.StartTime.Add(time.Hour)
}
