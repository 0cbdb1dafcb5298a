package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		" info ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		require.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestNewStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, "nova-inventory", "0.1.0", slog.LevelWarn)

	logger.Info("dropped")
	require.Zero(t, buf.Len())

	logger.Warn("no address", "host", "web-1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "WARN", rec["level"])
	require.Equal(t, "no address", rec["msg"])
	require.Equal(t, "nova-inventory", rec["module"])
	require.Equal(t, "0.1.0", rec["version"])
	require.Equal(t, "web-1", rec["host"])
	require.NotContains(t, rec, "source")
}

func TestNewStructuredLogger_DebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	NewStructuredLogger(&buf, "m", "v", slog.LevelDebug).Debug("listed servers")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Contains(t, rec, "source")
}
