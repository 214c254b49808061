package entity

import (
	"venue-api/core/entity"
)

// Space is a bookable room or area of the venue.
type Space struct {
	entity.BaseEntity
	Name  string `db:"name" json:"name"`
	Slug  string `db:"slug" json:"slug"`
	Color string `db:"color" json:"color"`
}

func (Space) TableName() string {
	return "spaces"
}
