package repository

import (
	"context"
	"database/sql"
	"time"

	"venue-api/core/database"
	"venue-api/core/logger"
	"venue-api/modules/credential/entity"

	"github.com/lib/pq"
)

type CredentialRepository interface {
	// Get returns the singleton credential row, or (nil, nil) when none exists.
	Get(ctx context.Context) (*entity.CalendarCredential, error)

	// Upsert creates the singleton row or replaces its token and calendar
	// selection, preserving the sync cursor.
	Upsert(ctx context.Context, cred *entity.CalendarCredential) (*entity.CalendarCredential, error)

	// UpdateCursor advances (or clears, with nil) the sync cursor.
	UpdateCursor(ctx context.Context, cursor *string, syncedAt time.Time) error

	UpdateRefreshToken(ctx context.Context, tokenEnc []byte) error
	UpdateSelectedCalendars(ctx context.Context, calendarIDs pq.StringArray) error
}

type credentialRepository struct {
	db database.IDatabase
}

func NewCredentialRepository(db database.IDatabase) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) Get(ctx context.Context) (*entity.CalendarCredential, error) {
	var cred entity.CalendarCredential
	query := `SELECT * FROM calendar_credentials ORDER BY created_at ASC LIMIT 1`
	err := r.db.GetContext(ctx, &cred, query)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CredentialRepository:Get:Error", "error", err)
		return nil, err
	}
	return &cred, nil
}

func (r *credentialRepository) Upsert(ctx context.Context, cred *entity.CalendarCredential) (*entity.CalendarCredential, error) {
	existing, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		query := `
			UPDATE calendar_credentials
			SET refresh_token_enc = $1, selected_calendar_ids = $2,
				account_email = $3, updated_at = NOW()
			WHERE id = $4
			RETURNING updated_at
		`
		err := r.db.QueryRowContext(ctx, query,
			cred.RefreshTokenEnc, cred.SelectedCalendarIDs, cred.AccountEmail, existing.ID,
		).Scan(&existing.UpdatedAt)
		if err != nil {
			return nil, err
		}
		existing.RefreshTokenEnc = cred.RefreshTokenEnc
		existing.SelectedCalendarIDs = cred.SelectedCalendarIDs
		existing.AccountEmail = cred.AccountEmail
		return existing, nil
	}

	query := `
		INSERT INTO calendar_credentials (refresh_token_enc, selected_calendar_ids, account_email)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		cred.RefreshTokenEnc, cred.SelectedCalendarIDs, cred.AccountEmail,
	).Scan(&cred.ID, &cred.CreatedAt, &cred.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return cred, nil
}

func (r *credentialRepository) UpdateCursor(ctx context.Context, cursor *string, syncedAt time.Time) error {
	query := `
		UPDATE calendar_credentials
		SET sync_cursor = $1, last_sync_at = $2, updated_at = NOW()
	`
	return r.db.ExecContext(ctx, query, cursor, syncedAt)
}

func (r *credentialRepository) UpdateRefreshToken(ctx context.Context, tokenEnc []byte) error {
	query := `
		UPDATE calendar_credentials
		SET refresh_token_enc = $1, updated_at = NOW()
	`
	return r.db.ExecContext(ctx, query, tokenEnc)
}

func (r *credentialRepository) UpdateSelectedCalendars(ctx context.Context, calendarIDs pq.StringArray) error {
	query := `
		UPDATE calendar_credentials
		SET selected_calendar_ids = $1, updated_at = NOW()
	`
	return r.db.ExecContext(ctx, query, calendarIDs)
}
