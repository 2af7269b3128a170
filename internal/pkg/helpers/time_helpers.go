package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// LocaleTimestampLayout renders times the way en-US toLocaleString does.
const LocaleTimestampLayout = "1/2/2006, 3:04:05 PM"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// FormatLocaleTimestamp formats t for audit entries.
func FormatLocaleTimestamp(t time.Time) string {
	return t.Format(LocaleTimestampLayout)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
