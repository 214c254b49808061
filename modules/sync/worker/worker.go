package worker

import (
	"context"

	"venue-api/core/config"
	"venue-api/core/errors"
	"venue-api/core/logger"
	"venue-api/modules/sync/service"

	"github.com/hibiken/asynq"
)

// TaskTypeCalendarSync is the queue task for a full sync pass.
const TaskTypeCalendarSync = "calendar:sync"

func redisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// NewSyncTask builds the task enqueued by the scheduler and manual triggers.
func NewSyncTask() *asynq.Task {
	return asynq.NewTask(TaskTypeCalendarSync, nil)
}

type Handler struct {
	syncService service.SyncService
}

func NewHandler(syncService service.SyncService) *Handler {
	return &Handler{syncService: syncService}
}

// HandleCalendarSync runs one sync pass. Partial failure is reported through
// the result's error list and never fails the task; only a missing
// credential (nothing to do) or an infrastructure fault surfaces.
func (h *Handler) HandleCalendarSync(ctx context.Context, t *asynq.Task) error {
	results, err := h.syncService.SyncAll(ctx)
	if err != nil {
		if ae, ok := err.(*errors.AppError); ok && ae.Code == errors.ErrCredentialMissing {
			logger.Info("SyncWorker:HandleCalendarSync:NoCredential")
			return nil
		}
		logger.Error("SyncWorker:HandleCalendarSync:Error", "error", err)
		return err
	}

	for key, result := range results {
		logger.Info("SyncWorker:HandleCalendarSync:Result",
			"credential", key,
			"created", result.Created,
			"updated", result.Updated,
			"deleted", result.Deleted,
			"errors", result.Errors,
		)
	}
	return nil
}

// RunServer starts the background worker processing sync tasks. Blocks until
// the server stops.
func RunServer(cfg *config.Config, syncService service.SyncService) error {
	srv := asynq.NewServer(redisOpt(cfg.Redis), asynq.Config{
		Concurrency: 1,
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeCalendarSync, NewHandler(syncService).HandleCalendarSync)

	logger.Info("SyncWorker:Server:Start")
	return srv.Run(mux)
}

// RunScheduler registers the periodic sync pass. Blocks until the scheduler
// stops.
func RunScheduler(cfg *config.Config) error {
	scheduler := asynq.NewScheduler(redisOpt(cfg.Redis), nil)

	if _, err := scheduler.Register(cfg.Sync.Schedule, NewSyncTask()); err != nil {
		logger.Error("SyncWorker:Scheduler:Register:Error", "error", err, "spec", cfg.Sync.Schedule)
		return err
	}

	logger.Info("SyncWorker:Scheduler:Start", "spec", cfg.Sync.Schedule)
	return scheduler.Run()
}
