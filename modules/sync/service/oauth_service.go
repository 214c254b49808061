package service

import (
	"context"

	"venue-api/core/cache"
	"venue-api/core/constants"
	"venue-api/core/errors"
	"venue-api/core/logger"
	"venue-api/core/utils"
	"venue-api/modules/calendar/client"
	credService "venue-api/modules/credential/service"
	"venue-api/modules/sync/dto"
)

// OAuthService drives the one-time account connection flow: consent URL,
// code exchange, token validation, credential persistence.
type OAuthService interface {
	ConnectURL(ctx context.Context) (*dto.ConnectURLResponse, error)
	HandleCallback(ctx context.Context, code, state string) error
}

type oauthService struct {
	client client.Client
	creds  credService.CredentialService
	cache  cache.Cache
}

func NewOAuthService(calClient client.Client, creds credService.CredentialService, c cache.Cache) OAuthService {
	return &oauthService{
		client: calClient,
		creds:  creds,
		cache:  c,
	}
}

func (s *oauthService) ConnectURL(ctx context.Context) (*dto.ConnectURLResponse, error) {
	state := utils.GenerateStateToken()
	if state == "" {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate state token", nil)
	}

	key := constants.RedisKeyOAuthState + state
	if err := s.cache.SetJSON(ctx, key, true, constants.OAuthStateTTL); err != nil {
		logger.Error("OAuthService:ConnectURL:SetState:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to store state token", err)
	}

	return &dto.ConnectURLResponse{
		URL:   s.client.AuthCodeURL(state),
		State: state,
	}, nil
}

func (s *oauthService) HandleCallback(ctx context.Context, code, state string) error {
	key := constants.RedisKeyOAuthState + state
	var seen bool
	found, err := s.cache.GetJSON(ctx, key, &seen)
	if err != nil {
		logger.Error("OAuthService:HandleCallback:GetState:Error", "error", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to verify state token", err)
	}
	if !found {
		return errors.NewAppError(errors.ErrUnauthorized, "unknown or expired state token", nil)
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Warn("OAuthService:HandleCallback:DeleteState:Error", "error", err)
	}

	token, err := s.client.ExchangeCode(ctx, code)
	if err != nil {
		return errors.NewAppError(errors.ErrUpstream, "authorization code exchange failed", err)
	}
	if token.RefreshToken == "" {
		return errors.NewAppError(errors.ErrCredentialMissing, "provider returned no refresh token", nil)
	}

	// Validate the fresh access token and discover the account's calendars.
	calendars, err := s.client.ListCalendars(ctx, token.AccessToken)
	if err != nil {
		return errors.NewAppError(errors.ErrUpstream, "access token validation failed", err)
	}

	accountEmail := ""
	calendarIDs := make([]string, 0, len(calendars))
	for _, cal := range calendars {
		if cal.Primary {
			accountEmail = cal.ID
		}
		calendarIDs = append(calendarIDs, cal.ID)
	}
	if len(calendarIDs) == 0 {
		return errors.NewAppError(errors.ErrUpstream, "account has no calendars", nil)
	}

	// Default the selection to the primary calendar; the administrator can
	// widen it afterwards.
	selection := calendarIDs
	if accountEmail != "" {
		selection = []string{accountEmail}
	}

	if _, err := s.creds.SaveFromOAuth(ctx, token.RefreshToken, accountEmail, selection); err != nil {
		return err
	}

	logger.Info("OAuthService:HandleCallback:Connected", "account", accountEmail)
	return nil
}
