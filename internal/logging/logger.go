// Package logging builds the application's slog loggers. Logs go to stderr so
// they never mix with the trace on stdout.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// New creates the application logger: a text handler on stderr, fanned out
// to a JSON handler on jsonOut when it is non-nil.
func New(level slog.Level, jsonOut io.Writer) *slog.Logger {
	return newLogger(os.Stderr, level, jsonOut)
}

func newLogger(text io.Writer, level slog.Level, jsonOut io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	}
	handlers := []slog.Handler{slog.NewTextHandler(text, opts)}
	if jsonOut != nil {
		// the file keeps everything down to debug regardless of the terminal level
		handlers = append(handlers, slog.NewJSONHandler(jsonOut, &slog.HandlerOptions{
			Level:       slog.LevelDebug,
			ReplaceAttr: replaceAttr,
		}))
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel accepts debug, info, warn and error, case-insensitively. The
// empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
