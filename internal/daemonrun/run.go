package daemonrun

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"recipewatch/internal/analyzer"
	"recipewatch/internal/config"
	"recipewatch/internal/daemon"
	"recipewatch/internal/digest"
	"recipewatch/internal/feed/reddit"
	"recipewatch/internal/ledger"
	"recipewatch/internal/logging"
	"recipewatch/internal/poller"
	"recipewatch/internal/preflight"
	"recipewatch/internal/publisher"
	"recipewatch/internal/queue"
	"recipewatch/internal/services"
	"recipewatch/internal/store"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel    string
	Development bool
}

// Run starts the recipewatch daemon and blocks until SIGINT/SIGTERM or a
// fatal poll loop error.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	level := opts.LogLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	logPath := filepath.Join(cfg.Paths.LogDir, logging.LogFileName)
	logger, err := logging.New(logging.Options{
		Level:       level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stdout", logPath},
		Development: opts.Development,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, cfg.Paths.LogDir, "recipewatch*.log*", logging.LogFileName)
	logConfigSnapshot(logger, cfg)
	runPreflight(signalCtx, logger, cfg)

	pidPath := filepath.Join(cfg.Paths.DataDir, "recipewatch.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	st, err := store.Open(cfg, logger)
	if err != nil {
		logger.Error("open recipe store", logging.Error(err))
		return err
	}

	d, err := build(signalCtx, cfg, st, logger)
	if err != nil {
		_ = st.Close()
		return report(logger, err)
	}
	defer d.Close()

	if err := d.Start(signalCtx); err != nil {
		return report(logger, err)
	}
	if err := d.Wait(); err != nil {
		return report(logger, err)
	}

	logger.Info("recipewatch daemon shutting down", logging.EventType("daemon_shutdown"))
	return nil
}

func build(ctx context.Context, cfg *config.Config, st *store.Store, logger *slog.Logger) (*daemon.Daemon, error) {
	l, err := ledger.Open(cfg, st, logger)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	pipeline, err := analyzer.PipelineFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	pub, err := publisher.FromConfig(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	settings, err := poller.SettingsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	p := poller.New(
		reddit.NewFromConfig(cfg, logger),
		l,
		queue.New(st, logger),
		pipeline,
		digest.NewBuilder(st, pub, cfg.Paths.StagingDir, logger, digest.WithSkipEmpty(!cfg.Digest.PublishEmpty)),
		settings,
		logger,
	)
	return daemon.New(cfg, st, l, logger, p)
}

func report(logger *slog.Logger, err error) error {
	eventType, hint := services.Classify(err)
	logging.ErrorWithContext(logger, "recipewatch daemon failed", eventType,
		logging.Error(err),
		logging.Hint(hint),
	)
	return err
}

func runPreflight(ctx context.Context, logger *slog.Logger, cfg *config.Config) {
	for _, r := range preflight.Failed(preflight.RunAll(ctx, cfg)) {
		logging.WarnWithContext(logger, "preflight check failed", "preflight_failed",
			logging.String("check", r.Name),
			logging.String("detail", r.Detail),
			logging.Hint("run `recipewatch preflight` for details"),
			logging.Impact("daemon continues; affected operations may fail"),
		)
	}
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}

func logConfigSnapshot(logger *slog.Logger, cfg *config.Config) {
	if logger == nil || cfg == nil {
		return
	}
	logger.Info("configuration snapshot",
		logging.EventType("config_snapshot"),
		logging.String("subreddit", cfg.Feed.Subreddit),
		logging.String("data_dir", cfg.Paths.DataDir),
		logging.String("ledger_backend", cfg.Ledger.Backend),
		logging.String("publisher", cfg.Publisher.Kind),
		logging.Bool("digest_enabled", cfg.Digest.Enabled),
		logging.String("digest_weekday", cfg.Digest.Weekday),
		logging.Duration("poll_interval", cfg.PollInterval()),
		logging.Duration("error_retry_interval", cfg.ErrorRetryInterval()),
		logging.Bool("custom_catalog", cfg.Analyzer.CatalogPath != ""),
	)
}
