package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"

	"recipewatch/internal/config"
	"recipewatch/internal/ledger"
	"recipewatch/internal/logging"
	"recipewatch/internal/store"
)

// ErrAlreadyRunning is returned when another daemon holds the lock.
var ErrAlreadyRunning = errors.New("another recipewatch daemon instance is already running")

// Loop is the blocking work run by the daemon. *poller.Poller satisfies it.
type Loop interface {
	Run(ctx context.Context) error
}

// Daemon runs the poll loop under a single-instance lock.
type Daemon struct {
	logger *slog.Logger
	store  *store.Store
	ledger ledger.Ledger
	loop   Loop

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.Mutex
	err     error
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	Recipes      int
	SeenCount    int
	DatabasePath string
	LockFilePath string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, st *store.Store, l ledger.Ledger, logger *slog.Logger, loop Loop) (*Daemon, error) {
	if cfg == nil || st == nil || l == nil || loop == nil {
		return nil, errors.New("daemon requires config, store, ledger, and poll loop")
	}
	lockPath := cfg.LockPath()
	return &Daemon{
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    st,
		ledger:   l,
		loop:     loop,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock and launches the poll loop.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	d.running.Store(true)

	go func() {
		defer close(d.done)
		err := d.loop.Run(runCtx)
		d.mu.Lock()
		d.err = err
		d.mu.Unlock()
		d.running.Store(false)
	}()

	d.logger.Info("recipewatch daemon started",
		logging.String("lock", d.lockPath),
		logging.EventType("daemon_started"),
	)
	return nil
}

// Wait blocks until the poll loop returns and reports its error.
func (d *Daemon) Wait() error {
	if d.done == nil {
		return nil
	}
	<-d.done
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Stop cancels the poll loop, waits for it and releases the daemon lock.
func (d *Daemon) Stop() {
	if d.cancel == nil {
		return
	}
	d.cancel()
	_ = d.Wait()
	d.cancel = nil
	if err := d.lock.Unlock(); err != nil {
		logging.WarnWithContext(d.logger, "failed to release daemon lock", "daemon_lock_release_failed",
			logging.Error(err),
			logging.Hint("remove the lock file if no daemon is running"),
		)
	}
	d.logger.Info("recipewatch daemon stopped", logging.EventType("daemon_stopped"))
}

// Close stops the daemon and releases the store.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Status returns daemon runtime information.
func (d *Daemon) Status(ctx context.Context) Status {
	status := Status{
		Running:      d.running.Load(),
		DatabasePath: d.store.Path(),
		LockFilePath: d.lockPath,
	}
	if n, err := d.store.Count(ctx); err == nil {
		status.Recipes = n
	}
	if n, err := d.ledger.Len(ctx); err == nil {
		status.SeenCount = n
	}
	return status
}

// Running reports whether some process currently holds the daemon lock for
// cfg's data directory.
func Running(cfg *config.Config) (bool, error) {
	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return false, fmt.Errorf("check lock: %w", err)
	}
	if ok {
		_ = lock.Unlock()
		return false, nil
	}
	return true, nil
}
