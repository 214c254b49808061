package config

import (
	"fmt"
	"sync"

	"venue-api/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	GoogleAPI GoogleAPIConfig
	Sync      SyncConfig
	JWT       JWTConfig
}

type ServerConfig struct {
	Port int
	Env  string // development | production
	// TimeoutSeconds bounds request read and response write time.
	TimeoutSeconds int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type GoogleAPIConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

type SyncConfig struct {
	// Cron spec for the scheduled sync pass, e.g. "*/15 * * * *".
	Schedule string
	// TokenKey is the hex-encoded 32-byte key used to encrypt refresh tokens at rest.
	TokenKey string
}

type JWTConfig struct {
	Secret string
}

var (
	instance *Config
	mu       sync.RWMutex
)

// Load reads configuration from .env (if present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("Config:Load:NoDotEnv", "reason", "using environment only")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 7070)
	v.SetDefault("SERVER_ENV", "development")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "venue")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SYNC_SCHEDULE", "*/15 * * * *")

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetInt("SERVER_PORT"),
			Env:            v.GetString("SERVER_ENV"),
			TimeoutSeconds: v.GetInt("SERVER_TIMEOUT_SECONDS"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		GoogleAPI: GoogleAPIConfig{
			ClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
			RedirectURI:  v.GetString("GOOGLE_REDIRECT_URI"),
		},
		Sync: SyncConfig{
			Schedule: v.GetString("SYNC_SCHEDULE"),
			TokenKey: v.GetString("SYNC_TOKEN_KEY"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
		},
	}

	mu.Lock()
	instance = cfg
	mu.Unlock()

	return cfg, nil
}

// Get returns the loaded configuration. Panics when Load has not been called.
func Get() *Config {
	cfg, err := GetSafe()
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetSafe returns the loaded configuration or an error when missing.
func GetSafe() (*Config, error) {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		return nil, fmt.Errorf("config not loaded")
	}
	return instance, nil
}
