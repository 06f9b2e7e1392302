package logging

import (
	"context"
	"log/slog"

	"recipewatch/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType classifies a log line for filtering (poll_cycle_started, recipe_stored, ...).
	FieldEventType = "event_type"
	// FieldErrorHint carries the operator's next step for warnings and errors.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldCorrelationID identifies one poll cycle across all of its log lines.
	FieldCorrelationID = "correlation_id"
	// FieldSubmissionID is the feed submission currently being processed.
	FieldSubmissionID = "submission_id"
	// FieldPostID is the submission or comment id a recipe was extracted from.
	FieldPostID = "post_id"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := services.CycleIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, id))
	}
	if id, ok := services.SubmissionIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldSubmissionID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
