package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"recipewatch/internal/analyzer"
	"recipewatch/internal/config"
	"recipewatch/internal/digest"
	"recipewatch/internal/feed"
	"recipewatch/internal/ledger"
	"recipewatch/internal/logging"
	"recipewatch/internal/queue"
	"recipewatch/internal/services"
)

// DigestRunner builds and publishes the weekly digest. *digest.Builder
// satisfies it.
type DigestRunner interface {
	Run(ctx context.Context) (digest.Result, error)
}

// Settings holds the loop timings and digest schedule.
type Settings struct {
	PollInterval       time.Duration
	ErrorRetryInterval time.Duration
	MinPostAge         time.Duration
	DigestEnabled      bool
	DigestWeekday      time.Weekday
}

// SettingsFromConfig extracts Settings from cfg.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	weekday, err := cfg.DigestWeekday()
	if err != nil {
		return Settings{}, services.Wrap(services.ErrConfiguration, "poller", "settings", "digest weekday", err)
	}
	return Settings{
		PollInterval:       cfg.PollInterval(),
		ErrorRetryInterval: cfg.ErrorRetryInterval(),
		MinPostAge:         cfg.MinPostAge(),
		DigestEnabled:      cfg.Digest.Enabled,
		DigestWeekday:      weekday,
	}, nil
}

// Poller owns the poll loop state.
type Poller struct {
	feed     feed.Feed
	ledger   ledger.Ledger
	queue    *queue.RecipeQueue
	pipeline *analyzer.Pipeline
	digest   DigestRunner
	settings Settings
	logger   *slog.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	lastDigest string
}

// Option customizes a Poller.
type Option func(*Poller)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(p *Poller) {
		if now != nil {
			p.now = now
		}
	}
}

// WithSleep overrides the context-aware sleep used between cycles.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(p *Poller) {
		if sleep != nil {
			p.sleep = sleep
		}
	}
}

// New wires a poller. A nil digest runner disables the weekly digest.
func New(f feed.Feed, l ledger.Ledger, q *queue.RecipeQueue, pipeline *analyzer.Pipeline, d DigestRunner, settings Settings, logger *slog.Logger, opts ...Option) *Poller {
	p := &Poller{
		feed:     f,
		ledger:   l,
		queue:    q,
		pipeline: pipeline,
		digest:   d,
		settings: settings,
		logger:   logging.NewComponentLogger(logger, "poller"),
		now:      time.Now,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CycleStats summarizes one sweep.
type CycleStats struct {
	CycleID     string
	Listed      int
	Processed   int
	AlreadySeen int
	TooRecent   int
	Comments    int
	Recipes     int
	Skipped     int
	Unavailable int
	DigestRan   bool
}

// Run repeats cycles until ctx is cancelled. Cancellation returns nil.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("poll loop started",
		logging.Duration("poll_interval", p.settings.PollInterval),
		logging.Duration("error_retry_interval", p.settings.ErrorRetryInterval),
		logging.EventType("poll_loop_started"),
	)
	for {
		_, err := p.RunCycle(ctx)
		wait := p.settings.PollInterval
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if !services.IsTransient(err) {
				return err
			}
			eventType, hint := services.Classify(err)
			logging.WarnWithContext(p.logger, "poll cycle aborted", eventType,
				logging.Error(err),
				logging.Duration("retry_in", p.settings.ErrorRetryInterval),
				logging.Hint(hint),
				logging.Impact("cycle restarts after the error backoff"),
			)
			wait = p.settings.ErrorRetryInterval
		}
		if err := p.sleep(ctx, wait); err != nil {
			p.logger.Info("poll loop stopped", logging.EventType("poll_loop_stopped"))
			return nil
		}
	}
}

// RunCycle performs one sweep and, on the digest weekday, the digest.
func (p *Poller) RunCycle(ctx context.Context) (CycleStats, error) {
	stats := CycleStats{CycleID: uuid.NewString()}
	ctx = services.WithCycleID(ctx, stats.CycleID)
	logger := logging.WithContext(ctx, p.logger)
	started := p.now()

	logger.Info("poll cycle started", logging.EventType("poll_cycle_started"))

	submissions, err := p.feed.ListHot(ctx)
	if err != nil {
		return stats, fmt.Errorf("list hot submissions: %w", err)
	}
	stats.Listed = len(submissions)

	for _, sub := range submissions {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		seen, err := p.ledger.Contains(ctx, sub.ID)
		if err != nil {
			return stats, fmt.Errorf("ledger lookup %s: %w", sub.ID, err)
		}
		if seen {
			stats.AlreadySeen++
			continue
		}
		if !p.oldEnough(sub) {
			stats.TooRecent++
			continue
		}
		if err := p.processSubmission(ctx, sub, &stats); err != nil {
			return stats, err
		}
		stats.Processed++
	}

	if p.digestDue() {
		if _, err := p.digest.Run(ctx); err != nil {
			return stats, fmt.Errorf("weekly digest: %w", err)
		}
		p.lastDigest = p.now().UTC().Format(time.DateOnly)
		stats.DigestRan = true
	}

	logger.Info("poll cycle finished",
		logging.Int("listed", stats.Listed),
		logging.Int("processed", stats.Processed),
		logging.Int("already_seen", stats.AlreadySeen),
		logging.Int("too_recent", stats.TooRecent),
		logging.Int("comments", stats.Comments),
		logging.Int("recipes", stats.Recipes),
		logging.Int("skipped", stats.Skipped),
		logging.Int("unavailable", stats.Unavailable),
		logging.Bool("digest", stats.DigestRan),
		logging.Duration("elapsed", p.now().Sub(started)),
		logging.EventType("poll_cycle_finished"),
	)
	return stats, nil
}

func (p *Poller) oldEnough(sub feed.Post) bool {
	age := p.now().Unix() - sub.Created
	return age > int64(p.settings.MinPostAge/time.Second)
}

func (p *Poller) digestDue() bool {
	if p.digest == nil || !p.settings.DigestEnabled {
		return false
	}
	now := p.now().UTC()
	if now.Weekday() != p.settings.DigestWeekday {
		return false
	}
	return p.lastDigest != now.Format(time.DateOnly)
}

func (p *Poller) processSubmission(ctx context.Context, sub feed.Post, stats *CycleStats) error {
	ctx = services.WithSubmissionID(ctx, sub.ID)
	logger := logging.WithContext(ctx, p.logger)

	comments, err := p.feed.ExpandComments(ctx, sub)
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) && !errors.Is(err, services.ErrForbidden) {
			return fmt.Errorf("expand comments %s: %w", sub.ID, err)
		}
		// Gone or locked away: record it so later cycles do not ask again.
		logging.WarnWithContext(logger, "submission unavailable", "submission_unavailable",
			logging.Error(err),
			logging.Impact("submission and its comments skipped"),
			logging.Hint("the thread was removed or made private"),
		)
		stats.Unavailable++
		if err := p.ledger.Add(ctx, sub.ID); err != nil {
			return fmt.Errorf("record submission %s: %w", sub.ID, err)
		}
		return nil
	}
	stats.Comments += len(comments)
	thread := feed.ThreadText(sub, comments)

	if err := p.processPost(ctx, logger, sub, sub, thread, stats); err != nil {
		return err
	}
	for _, c := range comments {
		if err := p.processPost(ctx, logger, sub, c, thread, stats); err != nil {
			return err
		}
	}

	if err := p.ledger.Add(ctx, sub.ID); err != nil {
		return fmt.Errorf("record submission %s: %w", sub.ID, err)
	}
	logger.Debug("submission swept",
		logging.Int("comments", len(comments)),
		logging.EventType("submission_swept"),
	)
	return nil
}

func (p *Poller) processPost(ctx context.Context, logger *slog.Logger, sub, post feed.Post, thread string, stats *CycleStats) error {
	r, ok, err := Extract(p.pipeline, sub, post, thread)
	if errors.Is(err, services.ErrFieldUnavailable) {
		stats.Skipped++
		logger.Debug("post skipped",
			logging.PostID(post.ID),
			logging.String("kind", post.Kind.String()),
			logging.Error(err),
			logging.EventType("post_skipped"),
		)
		return nil
	}
	if err != nil || !ok {
		return err
	}
	if err := p.queue.Add(ctx, r); err != nil {
		return fmt.Errorf("queue recipe %s: %w", post.ID, err)
	}
	stats.Recipes++
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
