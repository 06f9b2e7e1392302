package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"recipewatch/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("REDDIT_USER_AGENT", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "recipewatch")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.DatabasePath() != filepath.Join(wantData, "recipewatch.db") {
		t.Fatalf("unexpected database path %q", cfg.DatabasePath())
	}
	if cfg.Ledger.FilePath != filepath.Join(wantData, "submission_ids.txt") {
		t.Fatalf("unexpected ledger path %q", cfg.Ledger.FilePath)
	}
	if cfg.Publisher.Directory.Path != filepath.Join(wantData, "digests") {
		t.Fatalf("unexpected outbox path %q", cfg.Publisher.Directory.Path)
	}
	if cfg.Feed.Subreddit != "EatCheapAndHealthy" {
		t.Fatalf("unexpected subreddit %q", cfg.Feed.Subreddit)
	}
	if cfg.Ledger.Backend != config.LedgerSQLite {
		t.Fatalf("expected sqlite ledger by default, got %q", cfg.Ledger.Backend)
	}
	if cfg.Publisher.Kind != config.PublisherNone {
		t.Fatalf("expected none publisher by default, got %q", cfg.Publisher.Kind)
	}
	if cfg.PollInterval() != 24*time.Hour {
		t.Fatalf("unexpected poll interval %s", cfg.PollInterval())
	}
	if cfg.ErrorRetryInterval() != 30*time.Minute {
		t.Fatalf("unexpected retry interval %s", cfg.ErrorRetryInterval())
	}
	if cfg.MinPostAge() != 24*time.Hour {
		t.Fatalf("unexpected min post age %s", cfg.MinPostAge())
	}
	day, err := cfg.DigestWeekday()
	if err != nil || day != time.Monday {
		t.Fatalf("expected monday digest, got %v %v", day, err)
	}
	if !cfg.Digest.PublishEmpty {
		t.Fatal("expected empty digests published by default")
	}
}

func TestLoadCustomConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	dataDir := filepath.Join(tempHome, "rw")

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	payload := map[string]any{
		"paths": map[string]any{"data_dir": "~/rw"},
		"feed":  map[string]any{"subreddit": "r/MealPrepSunday", "base_url": "http://localhost:9999/"},
		"ledger": map[string]any{
			"backend": "FILE",
		},
		"digest":    map[string]any{"weekday": "Fri", "publish_empty": false},
		"publisher": map[string]any{"kind": "directory"},
		"analyzer": map[string]any{
			"instruction_stop_markers": []string{" edit ", ""},
		},
	}
	data, err := toml.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(cfgPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != cfgPath {
		t.Fatalf("expected config to be found at %q, got %q exists=%v", cfgPath, resolved, exists)
	}
	if cfg.Paths.DataDir != dataDir {
		t.Fatalf("unexpected data dir %q", cfg.Paths.DataDir)
	}
	if cfg.Feed.Subreddit != "MealPrepSunday" {
		t.Fatalf("expected subreddit prefix trimmed, got %q", cfg.Feed.Subreddit)
	}
	if cfg.Feed.BaseURL != "http://localhost:9999" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Feed.BaseURL)
	}
	if cfg.Ledger.Backend != config.LedgerFile {
		t.Fatalf("expected file ledger, got %q", cfg.Ledger.Backend)
	}
	if cfg.Ledger.FilePath != filepath.Join(dataDir, "submission_ids.txt") {
		t.Fatalf("ledger path should follow data dir, got %q", cfg.Ledger.FilePath)
	}
	if day, _ := cfg.DigestWeekday(); day != time.Friday {
		t.Fatalf("expected friday, got %v", day)
	}
	if cfg.Digest.PublishEmpty {
		t.Fatal("expected publish_empty override to be honored")
	}
	if len(cfg.Analyzer.InstructionStopMarkers) != 1 || cfg.Analyzer.InstructionStopMarkers[0] != "edit" {
		t.Fatalf("unexpected stop markers %q", cfg.Analyzer.InstructionStopMarkers)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("REDDIT_USER_AGENT", "test-agent/1.0")
	t.Setenv("RECIPEWATCH_NTFY_TOPIC", "recipes")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/tmp/sa.json")

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[publisher]\nkind = \"ntfy\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Feed.UserAgent != "test-agent/1.0" {
		t.Fatalf("expected user agent from env, got %q", cfg.Feed.UserAgent)
	}
	if cfg.Publisher.Ntfy.Topic != "recipes" {
		t.Fatalf("expected ntfy topic from env, got %q", cfg.Publisher.Ntfy.Topic)
	}
	if cfg.Publisher.Drive.CredentialsFile != "/tmp/sa.json" {
		t.Fatalf("expected credentials from env, got %q", cfg.Publisher.Drive.CredentialsFile)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		message string
	}{
		{"empty subreddit", func(c *config.Config) { c.Feed.Subreddit = "" }, "feed.subreddit"},
		{"bad base url", func(c *config.Config) { c.Feed.BaseURL = "ftp://reddit" }, "feed.base_url"},
		{"zero poll interval", func(c *config.Config) { c.Workflow.PollInterval = 0 }, "workflow.poll_interval"},
		{"unknown ledger", func(c *config.Config) { c.Ledger.Backend = "redis" }, "ledger.backend"},
		{"bad weekday", func(c *config.Config) { c.Digest.Weekday = "someday" }, "digest.weekday"},
		{"drive without credentials", func(c *config.Config) { c.Publisher.Kind = config.PublisherDrive }, "credentials_file"},
		{"ntfy without topic", func(c *config.Config) { c.Publisher.Kind = config.PublisherNtfy }, "publisher.ntfy.topic"},
		{"unknown publisher", func(c *config.Config) { c.Publisher.Kind = "email" }, "publisher.kind"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Fatalf("expected %q in %q", tt.message, err.Error())
			}
		})
	}
}

func TestDisabledDigestSkipsWeekdayValidation(t *testing.T) {
	cfg := config.Default()
	cfg.Digest.Enabled = false
	cfg.Digest.Weekday = "never"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected disabled digest to skip weekday check, got %v", err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[feed]\nsubredit = \"typo\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(cfgPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Feed.Subreddit != "EatCheapAndHealthy" {
		t.Fatalf("unexpected subreddit %q", cfg.Feed.Subreddit)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.StagingDir = filepath.Join(base, "staging")
	cfg.Publisher.Kind = config.PublisherDirectory
	cfg.Publisher.Directory.Path = filepath.Join(base, "outbox")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir, cfg.Paths.StagingDir, cfg.Publisher.Directory.Path} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
}
