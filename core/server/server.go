package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"venue-api/core/cache"
	"venue-api/core/config"
	"venue-api/core/constants"
	"venue-api/core/database"
	"venue-api/core/logger"
	"venue-api/modules/event"
	"venue-api/modules/schedule"
	syncModule "venue-api/modules/sync"
	"venue-api/modules/sync/worker"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// Run boots the HTTP server, the sync worker and the scheduler, and blocks
// until an interrupt arrives.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	c, err := cache.NewCache(cfg.Redis)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	defer c.Close()

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	syncService, err := syncModule.Init(e, db, c, cfg)
	if err != nil {
		return fmt.Errorf("init sync module: %w", err)
	}
	schedule.Init(e, db, c)
	event.Init(e, db)

	go func() {
		if err := worker.RunServer(cfg, syncService); err != nil {
			logger.Error("Server:Worker:Error", "error", err)
		}
	}()
	go func() {
		if err := worker.RunScheduler(cfg); err != nil {
			logger.Error("Server:Scheduler:Error", "error", err)
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info("Server:Start", "addr", addr, "env", cfg.Server.Env)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start:Error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server:Shutdown:Begin")
	ctx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownWindow)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Server:Shutdown:Done")
	return nil
}
