package router

import (
	"venue-api/core/middleware"
	"venue-api/modules/schedule/controller"

	"github.com/labstack/echo/v4"
)

type ScheduleRouter struct {
	controller *controller.ScheduleController
}

func NewScheduleRouter(controller *controller.ScheduleController) *ScheduleRouter {
	return &ScheduleRouter{controller: controller}
}

func (r *ScheduleRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// Public; a bearer token upgrades viewer capabilities when present.
	scheduleRoutes := v1.Group("/schedule")
	scheduleRoutes.Use(mw.OptionalAuth())

	scheduleRoutes.GET("/date/:date", r.controller.GetForDate)
	scheduleRoutes.GET("/range", r.controller.GetForRange)
}
