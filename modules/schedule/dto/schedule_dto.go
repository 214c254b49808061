package dto

import (
	"venue-api/modules/event/entity"
	"venue-api/modules/schedule/service"

	"github.com/google/uuid"
)

// DayScheduleResponse is one day's conflict-resolved schedule with its
// column layout.
type DayScheduleResponse struct {
	Date   string                          `json:"date"`
	Events []entity.Event                  `json:"events"`
	Layout map[uuid.UUID]service.Placement `json:"layout"`
}

// RangeScheduleResponse is the ordered unified list for a date range.
type RangeScheduleResponse struct {
	Start  string         `json:"start"`
	End    string         `json:"end"`
	Events []entity.Event `json:"events"`
}
