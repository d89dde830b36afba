// Package logger provides structured logging for the application.
// It wraps log/slog with a JSON handler and optionally ships records to
// Better Stack when a source token is configured.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	slogbetterstack "github.com/samber/slog-betterstack"
)

// Logger is the application logger.
type Logger struct {
	*slog.Logger
}

// Options configures logger construction.
type Options struct {
	Level  string    // debug, info, warn, error (default: info)
	Writer io.Writer // defaults to os.Stdout

	// BetterStackToken enables log shipping to Better Stack when non-empty.
	BetterStackToken string
	// BetterStackEndpoint is the ingesting host (optional, SDK default applies).
	BetterStackEndpoint string
}

// New creates a JSON logger writing to stdout at the given level.
func New(level string) *Logger {
	return NewWithOptions(Options{Level: level})
}

// NewWithOptions creates a logger from the full option set.
func NewWithOptions(opts Options) *Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	level := parseLevel(opts.Level)

	handlers := []slog.Handler{newJSONHandler(w, level)}

	if opts.BetterStackToken != "" {
		bs := slogbetterstack.Option{
			Level:    level,
			Token:    opts.BetterStackToken,
			Endpoint: opts.BetterStackEndpoint,
		}.NewBetterstackHandler()
		handlers = append(handlers, bs)
	}

	if len(handlers) == 1 {
		return &Logger{Logger: slog.New(handlers[0])}
	}
	return &Logger{Logger: slog.New(NewMultiHandler(handlers...))}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// newJSONHandler builds the primary JSON handler with renamed standard keys
// so log processors see timestamp/level/message instead of slog defaults.
func newJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				a.Key = "timestamp"
			case slog.LevelKey:
				a.Key = "level"
				v := a.Value.String()
				if v == "WARN" {
					v = "warning"
				} else {
					v = strings.ToLower(v)
				}
				a.Value = slog.StringValue(v)
			case slog.MessageKey:
				a.Key = "message"
			}
			return a
		},
	})
}

// WithModule returns a logger scoped with a module field.
func (l *Logger) WithModule(module string) *Logger {
	return &Logger{Logger: l.With("module", module)}
}

// WithRequestID returns a logger scoped with a request ID field.
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{Logger: l.With("request_id", requestID)}
}

// WithSession returns a logger scoped with a session ID field.
func (l *Logger) WithSession(sessionID string) *Logger {
	return &Logger{Logger: l.With("session_id", sessionID)}
}

// WithError returns a logger scoped with an error field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.With("error", err)}
}

// WithField returns a logger scoped with a single extra field.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{Logger: l.With(key, value)}
}

// WithFields returns a logger scoped with multiple extra fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Logger{Logger: l.With(args...)}
}

// Fatal logs at error level and exits the process. Reserved for startup
// failures where continuing is pointless.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Error(msg, args...)
	os.Exit(1)
}
