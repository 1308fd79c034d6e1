package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"supportdesk/internal/shared/config"
)

func TestConditionalSourceHandler(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		sourceFor  []slog.Level
		wantSource bool
	}{
		{"info hidden by default", slog.LevelInfo, []slog.Level{slog.LevelWarn, slog.LevelError}, false},
		{"warn shows source", slog.LevelWarn, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"error shows source", slog.LevelError, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"info in debug mode", slog.LevelInfo, []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			log := slog.New(NewConditionalSourceHandler(base, tt.sourceFor...))

			log.Log(context.Background(), tt.level, "ticket reply stored", "ticket_id", 7)

			assert.Equal(t, tt.wantSource, bytes.Contains(buf.Bytes(), []byte("source=")), buf.String())
			assert.Contains(t, buf.String(), "ticket_id=7")
		})
	}
}

func TestConditionalSourceHandler_WithAttrsKeepsLevels(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, nil)
	log := slog.New(NewConditionalSourceHandler(base, slog.LevelWarn)).With("component", "poller")

	log.Warn("poll failed")

	assert.Contains(t, buf.String(), "component=poller")
	assert.Contains(t, buf.String(), "source=")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestInit_JSONToStderr(t *testing.T) {
	err := Init(&config.LoggerConfig{Level: "warn", Format: "json", OutputPath: "stderr"}, "release")
	assert.NoError(t, err)
	assert.NotNil(t, Get())
	assert.False(t, Get().Enabled(context.Background(), slog.LevelInfo))
}
