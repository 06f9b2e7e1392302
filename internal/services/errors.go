package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTransient marks feed failures worth retrying after a backoff
	// (HTTP 5xx, rate limiting, network errors).
	ErrTransient = errors.New("transient failure")
	// ErrFieldUnavailable marks a post whose author or body can no longer be
	// read. The single post is skipped.
	ErrFieldUnavailable = errors.New("field unavailable")
	ErrConfiguration    = errors.New("configuration error")
	ErrNotFound         = errors.New("not found")
	// ErrForbidden marks a resource the feed refuses to serve, such as a
	// private subreddit or a quarantined thread.
	ErrForbidden = errors.New("forbidden")
	ErrPublish          = errors.New("publish failed")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsTransient reports whether err should trigger the poll loop backoff.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// Classify returns the event type and operator hint for an error that reached
// the top-level supervisor.
func Classify(err error) (eventType, hint string) {
	switch {
	case err == nil:
		return "", ""
	case errors.Is(err, ErrConfiguration):
		return "configuration_invalid", "fix the config file and restart"
	case errors.Is(err, ErrTransient):
		return "feed_unavailable", "check network access to the feed"
	case errors.Is(err, ErrNotFound):
		return "not_found", "verify the identifier exists"
	case errors.Is(err, ErrForbidden):
		return "forbidden", "check that the subreddit is public"
	case errors.Is(err, ErrPublish):
		return "publish_failed", "check publisher credentials"
	default:
		return "unexpected_failure", "check logs for details"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
