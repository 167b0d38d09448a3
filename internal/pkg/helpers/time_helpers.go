package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string such as "24h" or "90m". When the
// string is empty or malformed it logs a warning and falls back to the
// given default instead of failing startup.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("value", durationStr).Dur("default", defaultDuration).Msg("Failed to parse duration, using default")
		return defaultDuration
	}
	return duration
}
