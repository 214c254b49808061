package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"venue-api/core/errors"
	"venue-api/core/logger"
	"venue-api/modules/credential/entity"
	"venue-api/modules/credential/repository"

	"github.com/lib/pq"
	"golang.org/x/crypto/nacl/secretbox"
)

type CredentialService interface {
	// Get returns the singleton credential, or (nil, nil) when the account
	// has never been connected.
	Get(ctx context.Context) (*entity.CalendarCredential, error)

	// SaveFromOAuth stores the credential after a successful code exchange.
	SaveFromOAuth(ctx context.Context, refreshToken, accountEmail string, calendarIDs []string) (*entity.CalendarCredential, error)

	SelectCalendars(ctx context.Context, calendarIDs []string) error

	// UpdateCursor advances or clears the sync cursor. Called by the sync
	// coordinator only; no other component mutates credential state.
	UpdateCursor(ctx context.Context, cursor *string, syncedAt time.Time) error

	// DecryptRefreshToken opens the sealed token stored on the credential.
	DecryptRefreshToken(cred *entity.CalendarCredential) (string, error)
}

type credentialService struct {
	repo repository.CredentialRepository
	key  [32]byte
}

func NewCredentialService(repo repository.CredentialRepository, tokenKeyHex string) (CredentialService, error) {
	raw, err := hex.DecodeString(tokenKeyHex)
	if err != nil || len(raw) != 32 {
		return nil, fmt.Errorf("token key must be 32 hex-encoded bytes")
	}
	s := &credentialService{repo: repo}
	copy(s.key[:], raw)
	return s, nil
}

func (s *credentialService) Get(ctx context.Context) (*entity.CalendarCredential, error) {
	return s.repo.Get(ctx)
}

func (s *credentialService) SaveFromOAuth(ctx context.Context, refreshToken, accountEmail string, calendarIDs []string) (*entity.CalendarCredential, error) {
	if refreshToken == "" {
		return nil, errors.NewAppError(errors.ErrCredentialMissing, "provider returned no refresh token", nil)
	}

	sealed, err := s.encrypt(refreshToken)
	if err != nil {
		logger.Error("CredentialService:SaveFromOAuth:Encrypt:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to encrypt refresh token", err)
	}

	cred := &entity.CalendarCredential{
		RefreshTokenEnc:     sealed,
		SelectedCalendarIDs: pq.StringArray(calendarIDs),
		AccountEmail:        accountEmail,
	}
	saved, err := s.repo.Upsert(ctx, cred)
	if err != nil {
		logger.Error("CredentialService:SaveFromOAuth:Upsert:Error", "error", err)
		return nil, err
	}

	logger.Info("CredentialService:SaveFromOAuth:Success",
		"account", accountEmail, "calendars", len(calendarIDs))
	return saved, nil
}

func (s *credentialService) SelectCalendars(ctx context.Context, calendarIDs []string) error {
	if len(calendarIDs) == 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "at least one calendar must be selected", nil)
	}
	return s.repo.UpdateSelectedCalendars(ctx, pq.StringArray(calendarIDs))
}

func (s *credentialService) UpdateCursor(ctx context.Context, cursor *string, syncedAt time.Time) error {
	return s.repo.UpdateCursor(ctx, cursor, syncedAt)
}

func (s *credentialService) DecryptRefreshToken(cred *entity.CalendarCredential) (string, error) {
	if cred == nil || len(cred.RefreshTokenEnc) == 0 {
		return "", errors.NewAppError(errors.ErrCredentialMissing, "no refresh token stored", nil)
	}
	return s.decrypt(cred.RefreshTokenEnc)
}

// encrypt seals the token with a random nonce prepended to the box.
func (s *credentialService) encrypt(plaintext string) ([]byte, error) {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, err
	}
	return secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &s.key), nil
}

func (s *credentialService) decrypt(sealed []byte) (string, error) {
	if len(sealed) < 24 {
		return "", fmt.Errorf("sealed token too short")
	}
	var nonce [24]byte
	copy(nonce[:], sealed[:24])
	opened, ok := secretbox.Open(nil, sealed[24:], &nonce, &s.key)
	if !ok {
		return "", fmt.Errorf("failed to open sealed token")
	}
	return string(opened), nil
}
