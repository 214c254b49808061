package entity

import (
	"time"

	"venue-api/core/entity"

	"github.com/lib/pq"
)

// CalendarCredential is the single external-calendar account connected to the
// deployment. At most one row exists; it is looked up as "first/only".
// Cursor and last-sync fields are mutated by the sync coordinator exclusively.
type CalendarCredential struct {
	entity.BaseEntity
	RefreshTokenEnc     []byte         `db:"refresh_token_enc" json:"-"`
	SelectedCalendarIDs pq.StringArray `db:"selected_calendar_ids" json:"selected_calendar_ids"`
	SyncCursor          *string        `db:"sync_cursor" json:"-"`
	LastSyncAt          *time.Time     `db:"last_sync_at" json:"last_sync_at,omitempty"`
	AccountEmail        string         `db:"account_email" json:"account_email"`
}

func (CalendarCredential) TableName() string {
	return "calendar_credentials"
}
