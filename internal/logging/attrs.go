package logging

import (
	"context"
	"log/slog"
	"time"
)

// Attr aliases slog.Attr so callers only import this package.
type Attr = slog.Attr

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }
func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }
func Int(key string, value int) Attr { return slog.Int(key, value) }
func Int64(key string, value int64) Attr { return slog.Int64(key, value) }
func String(key string, value string) Attr { return slog.String(key, value) }
func PostID(id string) Attr { return slog.String(FieldPostID, id) }
func EventType(eventType string) Attr { return slog.String(FieldEventType, eventType) }
func Impact(impact string) Attr { return slog.String(FieldImpact, impact) }
func Hint(hint string) Attr { return slog.String(FieldErrorHint, hint) }
func Component(name string) Attr { return slog.String(FieldComponent, name) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Args converts attrs to the variadic form slog.Logger methods expect.
func Args(attrs ...Attr) []any {
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}
	return args
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(nopHandler{})
}

// NewComponentLogger tags every line of logger with component. A nil logger
// yields a no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(Component(component))
}

const defaultHint = "check logs for details"

// WarnWithContext logs a warning that always states event_type, error_hint
// and impact, filling defaults for whichever the caller left out.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	logEvent(logger, slog.LevelWarn, msg, eventType, "recipewatch continues with reduced results", attrs)
}

// ErrorWithContext logs an error that always states event_type and error_hint.
func ErrorWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	logEvent(logger, slog.LevelError, msg, eventType, "", attrs)
}

func logEvent(logger *slog.Logger, level slog.Level, msg, eventType, impact string, attrs []Attr) {
	if logger == nil {
		return
	}
	present := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		present[a.Key] = true
	}
	if !present[FieldEventType] {
		attrs = append(attrs, EventType(eventType))
	}
	if !present[FieldErrorHint] {
		attrs = append(attrs, Hint(defaultHint))
	}
	if impact != "" && !present[FieldImpact] {
		attrs = append(attrs, Impact(impact))
	}
	logger.LogAttrs(context.Background(), level, msg, attrs...)
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h nopHandler) WithGroup(string) slog.Handler { return h }
