package controller

import (
	"net/http"
	"time"

	"venue-api/core/errors"
	"venue-api/core/middleware"
	"venue-api/modules/schedule/dto"
	"venue-api/modules/schedule/service"

	"github.com/labstack/echo/v4"
)

// maxRangeDays caps how much schedule one request can ask for.
const maxRangeDays = 62

type ScheduleController struct {
	service service.ScheduleService
}

func NewScheduleController(service service.ScheduleService) *ScheduleController {
	return &ScheduleController{service: service}
}

// GetForDate returns one day's schedule with layout.
// GET /api/v1/schedule/date/:date  (date as YYYY-MM-DD)
func (c *ScheduleController) GetForDate(ctx echo.Context) error {
	date, err := time.Parse("2006-01-02", ctx.Param("date"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest,
			errors.NewAppError(errors.ErrInvalidInput, "invalid date, expected YYYY-MM-DD", nil))
	}

	schedule, err := c.service.ScheduleForDate(ctx.Request().Context(), date, viewerCaps(ctx))
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError,
			errors.NewAppError(errors.ErrInternalServer, "failed to build schedule", err))
	}

	return ctx.JSON(http.StatusOK, dto.DayScheduleResponse{
		Date:   date.Format("2006-01-02"),
		Events: schedule.Events,
		Layout: schedule.Layout,
	})
}

// GetForRange returns the ordered schedule for [start, end].
// GET /api/v1/schedule/range?start=YYYY-MM-DD&end=YYYY-MM-DD
func (c *ScheduleController) GetForRange(ctx echo.Context) error {
	start, err := time.Parse("2006-01-02", ctx.QueryParam("start"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest,
			errors.NewAppError(errors.ErrInvalidInput, "invalid start, expected YYYY-MM-DD", nil))
	}
	end, err := time.Parse("2006-01-02", ctx.QueryParam("end"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest,
			errors.NewAppError(errors.ErrInvalidInput, "invalid end, expected YYYY-MM-DD", nil))
	}

	// The end date is inclusive on the wire; the range is half-open inside.
	end = end.AddDate(0, 0, 1)
	if !end.After(start) || end.Sub(start) > maxRangeDays*24*time.Hour {
		return ctx.JSON(http.StatusBadRequest,
			errors.NewAppError(errors.ErrInvalidInput, "invalid range", nil))
	}

	events, err := c.service.ScheduleForRange(ctx.Request().Context(), start, end, viewerCaps(ctx))
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError,
			errors.NewAppError(errors.ErrInternalServer, "failed to build schedule", err))
	}

	return ctx.JSON(http.StatusOK, dto.RangeScheduleResponse{
		Start:  start.Format("2006-01-02"),
		End:    end.AddDate(0, 0, -1).Format("2006-01-02"),
		Events: events,
	})
}

func viewerCaps(ctx echo.Context) service.ViewerCapabilities {
	token := middleware.TokenFromContext(ctx)
	return service.ViewerCapabilities{
		Members: token.HasCapability(middleware.CapabilityMembers),
		Admin:   token.HasCapability(middleware.CapabilityAdmin),
	}
}
