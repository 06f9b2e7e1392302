package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestMalformedRowsAreSkipped(t *testing.T) {
	st, err := OpenPath(filepath.Join(t.TempDir(), "recipes.db"), nil)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	defer st.Close()
	ctx := context.Background()

	rows := []struct {
		id    string
		karma any
		typ   string
	}{
		{"good", 10, "Dinner"},
		{"bad-karma", "lots", "Dinner"},
		{"bad-type", 3, "Brunch"},
	}
	for _, r := range rows {
		if _, err := st.db.ExecContext(ctx,
			"INSERT INTO recipes ("+recipeColumns+") VALUES (?, 'a', ?, 'u', 't', '- x', '- y', ?, 100)",
			r.id, r.karma, r.typ,
		); err != nil {
			t.Fatalf("seed row %s: %v", r.id, err)
		}
	}

	got, err := st.TimeWindow(ctx, time.Unix(0, 0), time.Unix(1000, 0))
	if err != nil {
		t.Fatalf("TimeWindow failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "good" {
		t.Fatalf("expected only the good row, got %#v", got)
	}

	byAuthor, err := st.ByAuthor(ctx, "a")
	if err != nil {
		t.Fatalf("ByAuthor failed: %v", err)
	}
	if len(byAuthor) != 1 {
		t.Fatalf("expected malformed rows skipped by author query, got %d", len(byAuthor))
	}
}

func TestJoinSplitList(t *testing.T) {
	encoded := joinList([]string{"- a;b", "- c"})
	if encoded != "- a,b;- c" {
		t.Fatalf("unexpected encoding %q", encoded)
	}
	if got := splitList(encoded); len(got) != 2 {
		t.Fatalf("expected 2 entries, got %q", got)
	}
	if got := splitList(""); len(got) != 0 {
		t.Fatalf("expected empty list, got %q", got)
	}
}

func TestIsSQLiteBusy(t *testing.T) {
	if isSQLiteBusy(nil) {
		t.Fatal("nil is not busy")
	}
	if !isSQLiteBusy(errString("database is locked (5) (SQLITE_BUSY)")) {
		t.Fatal("expected busy detection from message")
	}
	if isSQLiteBusy(errString("no such table")) {
		t.Fatal("unexpected busy detection")
	}
}

type errString string

func (e errString) Error() string { return string(e) }

func TestSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.db")
	st, err := OpenPath(path, nil)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	if _, err := st.db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = st.Close()

	if _, err := OpenPath(path, nil); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}
