package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("verbose")
	assert.ErrorContains(t, err, `unknown log level "verbose"`)
}

func TestNewWritesPlainText(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("server start", "addr", "0.0.0.0:5000")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "server start")
	assert.Contains(t, out, "addr=0.0.0.0:5000")
	// no ANSI escapes for a non-terminal writer
	assert.NotContains(t, out, "\x1b[")
}
