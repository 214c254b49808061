package sync

import (
	"venue-api/core/cache"
	"venue-api/core/config"
	"venue-api/core/database"
	"venue-api/core/middleware"
	"venue-api/modules/calendar/client"
	credRepository "venue-api/modules/credential/repository"
	credService "venue-api/modules/credential/service"
	eventRepository "venue-api/modules/event/repository"
	"venue-api/modules/sync/controller"
	"venue-api/modules/sync/router"
	"venue-api/modules/sync/service"

	"github.com/labstack/echo/v4"
)

// Init wires the sync module and returns the sync service for the worker.
func Init(e *echo.Echo, db database.IDatabase, c cache.Cache, cfg *config.Config) (service.SyncService, error) {
	credRepo := credRepository.NewCredentialRepository(db)
	credSvc, err := credService.NewCredentialService(credRepo, cfg.Sync.TokenKey)
	if err != nil {
		return nil, err
	}

	calClient := client.NewGoogleClient(cfg.GoogleAPI)
	eventRepo := eventRepository.NewEventRepository(db)

	syncSvc := service.NewSyncService(eventRepo, credSvc, calClient, c)
	oauthSvc := service.NewOAuthService(calClient, credSvc, c)

	syncController := controller.NewSyncController(syncSvc, oauthSvc, credSvc)
	mw := middleware.NewMiddleware()
	router.NewSyncRouter(syncController).Setup(e, mw)

	return syncSvc, nil
}
