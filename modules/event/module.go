package event

import (
	"venue-api/core/database"
	"venue-api/core/middleware"
	"venue-api/modules/event/controller"
	"venue-api/modules/event/repository"
	"venue-api/modules/event/router"
	"venue-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.IDatabase) {
	eventRepo := repository.NewEventRepository(db)
	dailyRepo := repository.NewDailyEventRepository(db)
	spaceRepo := repository.NewSpaceRepository(db)

	eventService := service.NewEventService(eventRepo)
	dailyService := service.NewDailyEventService(dailyRepo)
	spaceService := service.NewSpaceService(spaceRepo)

	eventController := controller.NewEventController(eventService, dailyService, spaceService)

	mw := middleware.NewMiddleware()
	router.NewEventRouter(eventController).Setup(e, mw)
}
