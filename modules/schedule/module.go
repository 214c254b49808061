package schedule

import (
	"venue-api/core/cache"
	"venue-api/core/database"
	"venue-api/core/middleware"
	eventRepository "venue-api/modules/event/repository"
	"venue-api/modules/schedule/controller"
	"venue-api/modules/schedule/router"
	"venue-api/modules/schedule/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.IDatabase, c cache.Cache) {
	eventRepo := eventRepository.NewEventRepository(db)
	dailyRepo := eventRepository.NewDailyEventRepository(db)

	scheduleService := service.NewScheduleService(eventRepo, dailyRepo, c)
	scheduleController := controller.NewScheduleController(scheduleService)

	mw := middleware.NewMiddleware()
	router.NewScheduleRouter(scheduleController).Setup(e, mw)
}
