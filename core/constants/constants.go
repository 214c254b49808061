package constants

import "time"

// Database settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Timeouts
const (
	DefaultTimeout       = 10 * time.Second
	GoogleClientTimeout  = 30 * time.Second
	ServerShutdownWindow = 10 * time.Second
)

// Sync settings
const (
	// SyncWindowDays is the forward window used for a full (no cursor) fetch.
	SyncWindowDays = 90
	// SyncMaxResults is the page size requested from the provider.
	SyncMaxResults = 250
	// SyncLockTTL bounds how long a crashed sync pass can hold its lock.
	SyncLockTTL = 5 * time.Minute
)

// Redis keys
const (
	RedisKeySyncLock      = "sync:lock:"
	RedisKeyScheduleCache = "schedule:date:"
	RedisKeyOAuthState    = "oauth:state:"
)

// OAuthStateTTL bounds how long a consent round-trip may take.
const OAuthStateTTL = 10 * time.Minute

// Cache TTLs
const (
	ScheduleCacheTTL = 60 * time.Second
)
