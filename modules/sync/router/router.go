package router

import (
	"venue-api/core/middleware"
	"venue-api/modules/sync/controller"

	"github.com/labstack/echo/v4"
)

type SyncRouter struct {
	controller *controller.SyncController
}

func NewSyncRouter(controller *controller.SyncController) *SyncRouter {
	return &SyncRouter{controller: controller}
}

func (r *SyncRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// The OAuth callback is hit by the provider redirect and stays public;
	// the state token guards it.
	v1.GET("/sync/oauth/callback", r.controller.OAuthCallback)

	syncRoutes := v1.Group("/private/sync")
	syncRoutes.Use(mw.AuthMiddleware(), mw.RequireCapability(middleware.CapabilityAdmin))

	syncRoutes.POST("", r.controller.TriggerSync)
	syncRoutes.GET("/connect", r.controller.Connect)
	syncRoutes.PUT("/calendars", r.controller.SelectCalendars)
	syncRoutes.GET("/status", r.controller.Status)
}
