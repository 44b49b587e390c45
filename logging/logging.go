// Package logging configures the process-wide logger.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

// ParseLevel maps a LOG_LEVEL value onto a logger level.
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "", "info":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	default:
		return log.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Setup sets the level and output of the default logger. An unknown level
// falls back to info and is reported.
func Setup(level string, w io.Writer) error {
	lv, err := ParseLevel(level)
	log.SetLevel(lv)
	if w != nil {
		log.SetOutput(w)
	}
	return err
}
