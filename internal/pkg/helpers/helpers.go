package helpers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultLimit caps list queries when the caller does not ask for more
	DefaultLimit = 20
	// MaxLimit is the hard ceiling on any list query
	MaxLimit = 50
)

// ParseLimit extracts and clamps the limit query parameter
func ParseLimit(c *gin.Context) int {
	limitStr := c.DefaultQuery("limit", strconv.Itoa(DefaultLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return DefaultLimit
	}
	return ClampLimit(limit)
}

// ClampLimit applies the default/ceiling rules outside of a request context
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ParseDuration parses a duration string, returns default duration on error
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}
