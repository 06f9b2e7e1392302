package daemon_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"recipewatch/internal/daemon"
	"recipewatch/internal/ledger"
	"recipewatch/internal/testsupport"
)

type blockingLoop struct {
	started chan struct{}
	err     error
}

func (l *blockingLoop) Run(ctx context.Context) error {
	close(l.started)
	if l.err != nil {
		return l.err
	}
	<-ctx.Done()
	return nil
}

func TestDaemonStartStop(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	loop := &blockingLoop{started: make(chan struct{})}
	d, err := daemon.New(cfg, st, ledger.NewStoreLedger(st), nil, loop)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { d.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	<-loop.started

	status := d.Status(ctx)
	if !status.Running {
		t.Fatal("expected daemon to report running")
	}
	if status.LockFilePath != cfg.LockPath() || status.DatabasePath != cfg.DatabasePath() {
		t.Fatalf("unexpected status paths %+v", status)
	}

	running, err := daemon.Running(cfg)
	if err != nil || !running {
		t.Fatalf("expected lock check to report running, got %v err=%v", running, err)
	}

	if err := d.Start(ctx); err == nil {
		t.Fatal("expected second start to fail")
	}

	d.Stop()
	if d.Status(ctx).Running {
		t.Fatal("expected daemon to be stopped")
	}
	running, err = daemon.Running(cfg)
	if err != nil || running {
		t.Fatalf("expected lock released, got %v err=%v", running, err)
	}
}

func TestSecondDaemonIsRejected(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	l := ledger.NewStoreLedger(st)

	first, err := daemon.New(cfg, st, l, nil, &blockingLoop{started: make(chan struct{})})
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	t.Cleanup(first.Stop)

	second, err := daemon.New(cfg, st, l, nil, &blockingLoop{started: make(chan struct{})})
	if err != nil {
		t.Fatal(err)
	}
	if err := second.Start(context.Background()); !errors.Is(err, daemon.ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestWaitReturnsLoopError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	boom := errors.New("feed forbidden")
	d, err := daemon.New(cfg, st, ledger.NewStoreLedger(st), nil, &blockingLoop{started: make(chan struct{}), err: boom})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(d.Stop)

	done := make(chan error, 1)
	go func() { done <- d.Wait() }()
	select {
	case err := <-done:
		if !errors.Is(err, boom) {
			t.Fatalf("expected loop error, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return")
	}
}
