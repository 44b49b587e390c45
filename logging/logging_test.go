package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.LevelDebug,
		"DEBUG":   log.LevelDebug,
		"info":    log.LevelInfo,
		"":        log.LevelInfo,
		"warning": log.LevelWarn,
		"error":   log.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestSetup(t *testing.T) {
	var buf bytes.Buffer
	t.Cleanup(func() {
		Setup("info", os.Stderr)
	})

	assert.NoError(t, Setup("warn", &buf))
	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
