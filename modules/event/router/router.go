package router

import (
	"venue-api/core/middleware"
	"venue-api/modules/event/controller"

	"github.com/labstack/echo/v4"
)

type EventRouter struct {
	controller *controller.EventController
}

func NewEventRouter(controller *controller.EventController) *EventRouter {
	return &EventRouter{controller: controller}
}

func (r *EventRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	public := e.Group("/api/v1/events", mw.OptionalAuth())
	public.GET("/:slug", r.controller.GetEventBySlug)

	private := e.Group("/api/v1/private")
	private.Use(mw.AuthMiddleware(), mw.RequireCapability(middleware.CapabilityAdmin))

	events := private.Group("/events")
	events.POST("", r.controller.CreateEvent)
	events.GET("/:id", r.controller.GetEvent)
	events.PUT("/:id", r.controller.UpdateEvent)
	events.DELETE("/:id", r.controller.DeleteEvent)

	dailies := private.Group("/daily-events")
	dailies.GET("", r.controller.ListDailyEvents)
	dailies.POST("", r.controller.CreateDailyEvent)
	dailies.PUT("/:id", r.controller.UpdateDailyEvent)
	dailies.DELETE("/:id", r.controller.DeleteDailyEvent)

	spaces := private.Group("/spaces")
	spaces.GET("", r.controller.ListSpaces)
	spaces.POST("", r.controller.CreateSpace)
	spaces.PUT("/:id", r.controller.UpdateSpace)
	spaces.DELETE("/:id", r.controller.DeleteSpace)
}
