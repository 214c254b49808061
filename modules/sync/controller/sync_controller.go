package controller

import (
	"net/http"

	"venue-api/core/errors"
	credService "venue-api/modules/credential/service"
	"venue-api/modules/sync/dto"
	"venue-api/modules/sync/service"

	"github.com/labstack/echo/v4"
)

type SyncController struct {
	syncService  service.SyncService
	oauthService service.OAuthService
	credService  credService.CredentialService
}

func NewSyncController(
	syncService service.SyncService,
	oauthService service.OAuthService,
	creds credService.CredentialService,
) *SyncController {
	return &SyncController{
		syncService:  syncService,
		oauthService: oauthService,
		credService:  creds,
	}
}

// TriggerSync runs a sync pass inline and returns its result.
// POST /api/v1/private/sync?calendar_id=...
func (c *SyncController) TriggerSync(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	if calendarID := ctx.QueryParam("calendar_id"); calendarID != "" {
		result, err := c.syncService.SyncCalendar(reqCtx, calendarID)
		if err != nil {
			return c.errorJSON(ctx, err)
		}
		return ctx.JSON(http.StatusOK, result)
	}

	results, err := c.syncService.SyncAll(reqCtx)
	if err != nil {
		return c.errorJSON(ctx, err)
	}
	return ctx.JSON(http.StatusOK, dto.SyncAllResponse{Results: results})
}

// Connect returns the provider consent URL.
// GET /api/v1/private/sync/connect
func (c *SyncController) Connect(ctx echo.Context) error {
	resp, err := c.oauthService.ConnectURL(ctx.Request().Context())
	if err != nil {
		return c.errorJSON(ctx, err)
	}
	return ctx.JSON(http.StatusOK, resp)
}

// OAuthCallback completes the consent round-trip.
// GET /api/v1/sync/oauth/callback?code=...&state=...
func (c *SyncController) OAuthCallback(ctx echo.Context) error {
	code := ctx.QueryParam("code")
	state := ctx.QueryParam("state")
	if code == "" || state == "" {
		return ctx.JSON(http.StatusBadRequest,
			errors.NewAppError(errors.ErrInvalidInput, "code and state are required", nil))
	}

	if err := c.oauthService.HandleCallback(ctx.Request().Context(), code, state); err != nil {
		return c.errorJSON(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]string{"message": "Calendar account connected"})
}

// SelectCalendars updates which provider calendars are synced.
// PUT /api/v1/private/sync/calendars
func (c *SyncController) SelectCalendars(ctx echo.Context) error {
	var req dto.SelectCalendarsRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest,
			errors.NewAppError(errors.ErrInvalidInput, "invalid request body", nil))
	}

	if err := c.credService.SelectCalendars(ctx.Request().Context(), req.CalendarIDs); err != nil {
		return c.errorJSON(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]string{"message": "Calendar selection updated"})
}

// Status reports the connected account and its last sync.
// GET /api/v1/private/sync/status
func (c *SyncController) Status(ctx echo.Context) error {
	cred, err := c.credService.Get(ctx.Request().Context())
	if err != nil {
		return c.errorJSON(ctx, err)
	}
	if cred == nil {
		return ctx.JSON(http.StatusNotFound,
			errors.NewAppError(errors.ErrCredentialMissing, "no calendar account connected", nil))
	}
	return ctx.JSON(http.StatusOK, cred)
}

func (c *SyncController) errorJSON(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	if ae, ok := err.(*errors.AppError); ok {
		switch ae.Code {
		case errors.ErrCredentialMissing, errors.ErrNotFound:
			status = http.StatusNotFound
		case errors.ErrInvalidInput:
			status = http.StatusBadRequest
		case errors.ErrUnauthorized:
			status = http.StatusUnauthorized
		case errors.ErrUpstream:
			status = http.StatusBadGateway
		}
		return ctx.JSON(status, ae)
	}
	return ctx.JSON(status, errors.NewAppError(errors.ErrInternalServer, err.Error(), err))
}
