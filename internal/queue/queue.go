package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"recipewatch/internal/logging"
	"recipewatch/internal/recipe"
)

// Sink persists recipes. *store.Store satisfies it.
type Sink interface {
	Insert(ctx context.Context, r recipe.Recipe) (bool, error)
}

// Stats summarizes queue activity since construction.
type Stats struct {
	Pending    int
	Stored     int
	Duplicates int
}

// RecipeQueue is a last-in first-out buffer drained into a Sink.
type RecipeQueue struct {
	sink   Sink
	logger *slog.Logger

	mu    sync.Mutex
	stack []recipe.Recipe
	stats Stats
}

// New returns an empty queue that drains into sink.
func New(sink Sink, logger *slog.Logger) *RecipeQueue {
	return &RecipeQueue{
		sink:   sink,
		logger: logging.NewComponentLogger(logger, "queue"),
	}
}

// Add pushes r and drains the queue.
func (q *RecipeQueue) Add(ctx context.Context, r recipe.Recipe) error {
	q.mu.Lock()
	q.stack = append(q.stack, r)
	q.mu.Unlock()
	return q.Flush(ctx)
}

// Flush pops and persists records until the queue is empty. On a sink error
// the failing record is pushed back and the error returned.
func (q *RecipeQueue) Flush(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		last := len(q.stack) - 1
		r := q.stack[last]
		q.stack = q.stack[:last]

		stored, err := q.sink.Insert(ctx, r)
		if err != nil {
			q.stack = append(q.stack, r)
			return fmt.Errorf("drain recipe %s: %w", r.ID, err)
		}
		if stored {
			q.stats.Stored++
			q.logger.Info("recipe stored",
				logging.PostID(r.ID),
				logging.String("title", r.Title),
				logging.String("meal_type", string(r.Type)),
				logging.EventType("recipe_stored"),
			)
		} else {
			q.stats.Duplicates++
		}
	}
	return nil
}

// Len returns the number of records waiting to be persisted.
func (q *RecipeQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.stack)
}

// Stats returns a snapshot of queue counters.
func (q *RecipeQueue) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	s := q.stats
	s.Pending = len(q.stack)
	return s
}
