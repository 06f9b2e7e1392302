package services

import "context"

type contextKey string

const (
	cycleIDKey      contextKey = "cycle_id"
	submissionIDKey contextKey = "submission_id"
)

// WithCycleID annotates context with the poll cycle correlation identifier.
func WithCycleID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, cycleIDKey, id)
}

// CycleIDFromContext extracts the poll cycle identifier if present.
func CycleIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(cycleIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithSubmissionID annotates context with the submission being processed.
func WithSubmissionID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, submissionIDKey, id)
}

// SubmissionIDFromContext returns the submission id if present.
func SubmissionIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(submissionIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
