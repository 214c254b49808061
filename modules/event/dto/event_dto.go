package dto

import (
	"time"

	"github.com/google/uuid"
)

// ========== Event DTOs ==========

type CreateEventRequest struct {
	Title           string     `json:"title" validate:"required"`
	Description     *string    `json:"description"`
	StartTime       time.Time  `json:"start_time" validate:"required"`
	EndTime         *time.Time `json:"end_time"`
	Category        string     `json:"category" validate:"required"`
	Published       bool       `json:"published"`
	SpaceID         *uuid.UUID `json:"space_id"`
	DisplayStyle    string     `json:"display_style"`
	OverridesOthers bool       `json:"overrides_others"`
}

type UpdateEventRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	StartTime       *time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	Category        *string    `json:"category"`
	Published       *bool      `json:"published"`
	SpaceID         *uuid.UUID `json:"space_id"`
	DisplayStyle    *string    `json:"display_style"`
	OverridesOthers *bool      `json:"overrides_others"`
}

// ========== Daily template DTOs ==========

type DailyEventRequest struct {
	Title           string     `json:"title" validate:"required"`
	Description     *string    `json:"description"`
	StartClock      string     `json:"start_clock" validate:"required"` // "15:04"
	EndClock        string     `json:"end_clock" validate:"required"`
	Weekdays        []int      `json:"weekdays" validate:"required"` // 0-6, Sunday first
	Category        string     `json:"category" validate:"required"`
	DisplayStyle    string     `json:"display_style"`
	OverridesOthers bool       `json:"overrides_others"`
	Active          bool       `json:"active"`
	ShowInGrid      bool       `json:"show_in_grid"`
	SpaceID         *uuid.UUID `json:"space_id"`
}

// ========== Space DTOs ==========

type SpaceRequest struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color"`
}
