package testsupport

import (
	"path/filepath"
	"testing"

	"recipewatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Feed throttling and retries are disabled so tests never sleep.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.StagingDir = filepath.Join(base, "staging")
	cfgVal.Ledger.FilePath = filepath.Join(base, "data", "submission_ids.txt")
	cfgVal.Publisher.Directory.Path = filepath.Join(base, "outbox")
	cfgVal.Feed.RequestInterval = 0
	cfgVal.Feed.MaxRetries = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithLedgerBackend selects the seen-submission ledger backend.
func WithLedgerBackend(backend string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ledger.Backend = backend
	}
}

// WithPublisher selects the digest publisher kind.
func WithPublisher(kind string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Publisher.Kind = kind
	}
}

// WithFeedBaseURL points the feed client at a test server.
func WithFeedBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Feed.BaseURL = url
	}
}

// WithCatalog writes titles to a catalog file and points the analyzer at it.
func WithCatalog(titles ...string) ConfigOption {
	return func(b *configBuilder) {
		path := filepath.Join(b.baseDir, "recipe_titles.txt")
		WriteLines(b.t, path, titles...)
		b.cfg.Analyzer.CatalogPath = path
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
