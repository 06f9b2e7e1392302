package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"recipewatch/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrTransient, "reddit", "list hot", "request failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"reddit", "list hot", "request failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !services.IsTransient(err) {
		t.Fatalf("expected nil marker to default to transient, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestIsTransientThroughFmtWrap(t *testing.T) {
	inner := services.Wrap(services.ErrTransient, "reddit", "comments", "503", nil)
	outer := fmt.Errorf("poll cycle: %w", inner)
	if !services.IsTransient(outer) {
		t.Fatal("expected transient marker to survive wrapping")
	}
	field := services.Wrap(services.ErrFieldUnavailable, "feed", "author", "deleted", nil)
	if services.IsTransient(field) {
		t.Fatal("field errors must not be transient")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err   error
		event string
	}{
		{services.Wrap(services.ErrConfiguration, "config", "load", "bad", nil), "configuration_invalid"},
		{services.Wrap(services.ErrTransient, "reddit", "hot", "429", nil), "feed_unavailable"},
		{services.Wrap(services.ErrNotFound, "reddit", "by id", "missing", nil), "not_found"},
		{services.Wrap(services.ErrForbidden, "reddit", "load comments", "403", nil), "forbidden"},
		{services.Wrap(services.ErrPublish, "drive", "upload", "denied", nil), "publish_failed"},
		{errors.New("disk full"), "unexpected_failure"},
	}
	for _, tt := range tests {
		event, hint := services.Classify(tt.err)
		if event != tt.event {
			t.Fatalf("Classify(%v) event = %q, want %q", tt.err, event, tt.event)
		}
		if hint == "" {
			t.Fatalf("Classify(%v) returned empty hint", tt.err)
		}
	}
	if event, hint := services.Classify(nil); event != "" || hint != "" {
		t.Fatalf("expected empty classification for nil, got %q %q", event, hint)
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	if _, ok := services.CycleIDFromContext(ctx); ok {
		t.Fatal("expected no cycle id on empty context")
	}
	ctx = services.WithCycleID(ctx, "abc")
	ctx = services.WithSubmissionID(ctx, "t3x")
	if id, ok := services.CycleIDFromContext(ctx); !ok || id != "abc" {
		t.Fatalf("unexpected cycle id %q %v", id, ok)
	}
	if id, ok := services.SubmissionIDFromContext(ctx); !ok || id != "t3x" {
		t.Fatalf("unexpected submission id %q %v", id, ok)
	}
	if services.WithSubmissionID(ctx, "") != ctx {
		t.Fatal("empty id should return the same context")
	}
}
