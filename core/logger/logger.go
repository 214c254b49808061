package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	log  *slog.Logger
	once sync.Once
)

func initLogger() {
	once.Do(func() {
		level := slog.LevelInfo
		switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	})
}

func Debug(msg string, args ...any) {
	initLogger()
	log.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	initLogger()
	log.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	initLogger()
	log.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	initLogger()
	log.Error(msg, args...)
}
