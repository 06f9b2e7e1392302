package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// MarkSeen records a processed submission id. Recording an id twice is a no-op.
func (s *Store) MarkSeen(ctx context.Context, submissionID string) error {
	if submissionID == "" {
		return errors.New("mark seen: empty submission id")
	}
	if _, err := s.execWithRetry(ctx,
		"INSERT INTO seen_submissions (submission_id, seen_at) VALUES (?, ?) ON CONFLICT(submission_id) DO NOTHING",
		submissionID, time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("mark seen %s: %w", submissionID, err)
	}
	return nil
}

// Seen reports whether submissionID has been recorded.
func (s *Store) Seen(ctx context.Context, submissionID string) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT COUNT(1) FROM seen_submissions WHERE submission_id = ?", submissionID,
	).Scan(&n); err != nil {
		return false, fmt.Errorf("lookup seen %s: %w", submissionID, err)
	}
	return n > 0, nil
}

// SeenCount returns the number of recorded submissions.
func (s *Store) SeenCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ensureContext(ctx), "SELECT COUNT(1) FROM seen_submissions").Scan(&n); err != nil {
		return 0, fmt.Errorf("count seen: %w", err)
	}
	return n, nil
}
