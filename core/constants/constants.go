package constants

import "time"

// Database pool settings
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Context / header keys
const (
	ContextRequestID = "request_id"
	HeaderRequestID  = "X-Request-ID"
)

// Free-slot engine defaults. The 09:00-22:00 window matches the hour grid
// the scheduling UI renders.
const (
	DefaultWorkingHoursStart = "09:00"
	DefaultWorkingHoursEnd   = "22:00"
	DefaultTimezone          = "Asia/Seoul"
)

// Cache
const (
	FreeSlotCacheTTL      = 5 * time.Minute
	FreeSlotCacheKeySpace = "freeslot:group"
)

// Background tasks
const (
	TaskWarmGroup     = "freeslot:warm"
	TaskWarmAll       = "freeslot:warm-all"
	WarmSearchDays    = 7
	DefaultWarmCron   = "0 3 * * *"
	WarmMinDurationMn = 60
)
