// Package logging configures the process-wide slog logger. Logs are JSON
// on stderr so stdout stays reserved for the inventory document.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel names the environment variable holding the default log level.
const EnvLevel = "LOG_LEVEL"

// ParseLevel maps debug, info, warn/warning and error (any case) to a slog
// level. Anything else yields slog.LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewStructuredLogger returns a JSON logger writing to w that tags every
// record with module and version. Debug level adds source locations.
func NewStructuredLogger(w io.Writer, module, version string, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	})
	return slog.New(h).With("module", module, "version", version)
}

// SetDefaultStructuredLogger installs a stderr logger as the slog default.
// debug forces debug level; otherwise LOG_LEVEL decides, defaulting to
// warn so an inventory run is quiet unless something is off.
func SetDefaultStructuredLogger(module, version string, debug bool) {
	level := slog.LevelWarn
	if v, ok := os.LookupEnv(EnvLevel); ok {
		level = ParseLevel(v)
	}
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(NewStructuredLogger(os.Stderr, module, version, level))
}
