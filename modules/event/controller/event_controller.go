package controller

import (
	"venue-api/core/controller"
	"venue-api/core/errors"
	"venue-api/core/middleware"
	"venue-api/modules/event/dto"
	"venue-api/modules/event/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type EventController struct {
	controller.BaseController
	eventService service.EventService
	dailyService service.DailyEventService
	spaceService service.SpaceService
}

func NewEventController(
	events service.EventService,
	dailies service.DailyEventService,
	spaces service.SpaceService,
) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		eventService:   events,
		dailyService:   dailies,
		spaceService:   spaces,
	}
}

// ========== Events ==========

// CreateEvent handles POST /api/v1/private/events
func (c *EventController) CreateEvent(ctx echo.Context) error {
	var req dto.CreateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}
	if req.Title == "" || req.Category == "" || req.StartTime.IsZero() {
		return c.BadRequest(errors.ErrInvalidInput, "title, category and start_time are required")
	}

	event, err := c.eventService.Create(ctx.Request().Context(), &req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, event, "Event created")
}

// UpdateEvent handles PUT /api/v1/private/events/:id
func (c *EventController) UpdateEvent(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid event id")
	}

	var req dto.UpdateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	event, err := c.eventService.Update(ctx.Request().Context(), id, &req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, event, "Event updated")
}

// DeleteEvent handles DELETE /api/v1/private/events/:id
func (c *EventController) DeleteEvent(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid event id")
	}
	if err := c.eventService.Delete(ctx.Request().Context(), id); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, nil, "Event deleted")
}

// GetEvent handles GET /api/v1/private/events/:id
func (c *EventController) GetEvent(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid event id")
	}
	event, err := c.eventService.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, event, "")
}

// GetEventBySlug handles GET /api/v1/events/:slug (public).
func (c *EventController) GetEventBySlug(ctx echo.Context) error {
	token := middleware.TokenFromContext(ctx)
	event, err := c.eventService.GetBySlug(
		ctx.Request().Context(),
		ctx.Param("slug"),
		token.HasCapability(middleware.CapabilityAdmin),
		token.HasCapability(middleware.CapabilityMembers),
	)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, event, "")
}

// ========== Daily templates ==========

// CreateDailyEvent handles POST /api/v1/private/daily-events
func (c *EventController) CreateDailyEvent(ctx echo.Context) error {
	var req dto.DailyEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	template, err := c.dailyService.Create(ctx.Request().Context(), &req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, template, "Daily event created")
}

// UpdateDailyEvent handles PUT /api/v1/private/daily-events/:id
func (c *EventController) UpdateDailyEvent(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid daily event id")
	}

	var req dto.DailyEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	template, err := c.dailyService.Update(ctx.Request().Context(), id, &req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, template, "Daily event updated")
}

// DeleteDailyEvent handles DELETE /api/v1/private/daily-events/:id
func (c *EventController) DeleteDailyEvent(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid daily event id")
	}
	if err := c.dailyService.Delete(ctx.Request().Context(), id); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, nil, "Daily event deleted")
}

// ListDailyEvents handles GET /api/v1/private/daily-events
func (c *EventController) ListDailyEvents(ctx echo.Context) error {
	templates, err := c.dailyService.List(ctx.Request().Context())
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, templates, "")
}

// ========== Spaces ==========

// CreateSpace handles POST /api/v1/private/spaces
func (c *EventController) CreateSpace(ctx echo.Context) error {
	var req dto.SpaceRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}
	if req.Name == "" {
		return c.BadRequest(errors.ErrInvalidInput, "name is required")
	}

	space, err := c.spaceService.Create(ctx.Request().Context(), &req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, space, "Space created")
}

// UpdateSpace handles PUT /api/v1/private/spaces/:id
func (c *EventController) UpdateSpace(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid space id")
	}

	var req dto.SpaceRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	space, err := c.spaceService.Update(ctx.Request().Context(), id, &req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, space, "Space updated")
}

// DeleteSpace handles DELETE /api/v1/private/spaces/:id
func (c *EventController) DeleteSpace(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "invalid space id")
	}
	if err := c.spaceService.Delete(ctx.Request().Context(), id); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, nil, "Space deleted")
}

// ListSpaces handles GET /api/v1/private/spaces
func (c *EventController) ListSpaces(ctx echo.Context) error {
	spaces, err := c.spaceService.List(ctx.Request().Context())
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, spaces, "")
}
