package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir    string `toml:"data_dir"`
	LogDir     string `toml:"log_dir"`
	StagingDir string `toml:"staging_dir"`
}

// Feed contains configuration for the Reddit JSON API client.
type Feed struct {
	BaseURL        string `toml:"base_url"`
	Subreddit      string `toml:"subreddit"`
	UserAgent      string `toml:"user_agent"`
	RequestTimeout int    `toml:"request_timeout"`
	PageSize       int    `toml:"page_size"`
	// RequestInterval is the minimum gap between API calls, in milliseconds.
	RequestInterval int `toml:"request_interval"`
	MaxRetries      int `toml:"max_retries"`
}

// Workflow contains the poll loop timing, all in seconds.
type Workflow struct {
	PollInterval       int `toml:"poll_interval"`
	ErrorRetryInterval int `toml:"error_retry_interval"`
	MinPostAge         int `toml:"min_post_age"`
}

// Analyzer contains recipe detection settings.
type Analyzer struct {
	// CatalogPath is a text file with one recipe title per line. Empty uses
	// the built-in catalog.
	CatalogPath string `toml:"catalog_path"`
	// InstructionStopMarkers end instruction capture when a line normalizes
	// to one of them. Empty captures to the end of the post.
	InstructionStopMarkers []string `toml:"instruction_stop_markers"`
}

// Ledger selects where processed submission ids are recorded.
type Ledger struct {
	Backend  string `toml:"backend"`
	FilePath string `toml:"file_path"`
}

// Digest contains weekly digest scheduling.
type Digest struct {
	Enabled      bool   `toml:"enabled"`
	Weekday      string `toml:"weekday"`
	PublishEmpty bool   `toml:"publish_empty"`
}

// Drive contains Google Drive publisher settings.
type Drive struct {
	CredentialsFile string `toml:"credentials_file"`
	FolderID        string `toml:"folder_id"`
}

// Ntfy contains ntfy publisher settings.
type Ntfy struct {
	URL            string `toml:"url"`
	Topic          string `toml:"topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Directory contains outbox publisher settings.
type Directory struct {
	Path string `toml:"path"`
}

// Publisher selects and configures the digest publisher.
type Publisher struct {
	Kind      string    `toml:"kind"`
	Drive     Drive     `toml:"drive"`
	Ntfy      Ntfy      `toml:"ntfy"`
	Directory Directory `toml:"directory"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for recipewatch.
//
// Configuration sections by subsystem:
//   - Paths: data, log and staging directories
//   - Feed: subreddit and Reddit API client settings
//   - Workflow: poll interval, error backoff, minimum post age
//   - Analyzer: title catalog and instruction stop markers
//   - Ledger: seen-submission ledger backend
//   - Digest: weekly digest schedule
//   - Publisher: where the digest is published
//   - Logging: log format, level, and retention
type Config struct {
	Paths     Paths     `toml:"paths"`
	Feed      Feed      `toml:"feed"`
	Workflow  Workflow  `toml:"workflow"`
	Analyzer  Analyzer  `toml:"analyzer"`
	Ledger    Ledger    `toml:"ledger"`
	Digest    Digest    `toml:"digest"`
	Publisher Publisher `toml:"publisher"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/recipewatch/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("recipewatch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.DataDir, c.Paths.LogDir, c.Paths.StagingDir}
	if c.Publisher.Kind == PublisherDirectory {
		dirs = append(dirs, c.Publisher.Directory.Path)
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the SQLite database location inside the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "recipewatch.db")
}

// LockPath returns the daemon single-instance lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "recipewatch.lock")
}

// FeedRequestInterval returns the minimum gap between feed API calls.
func (c *Config) FeedRequestInterval() time.Duration {
	return time.Duration(c.Feed.RequestInterval) * time.Millisecond
}

// PollInterval returns the sleep between successful poll cycles.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Workflow.PollInterval) * time.Second
}

// ErrorRetryInterval returns the backoff after a transient feed failure.
func (c *Config) ErrorRetryInterval() time.Duration {
	return time.Duration(c.Workflow.ErrorRetryInterval) * time.Second
}

// MinPostAge returns how old a submission must be before it is scanned.
func (c *Config) MinPostAge() time.Duration {
	return time.Duration(c.Workflow.MinPostAge) * time.Second
}

// DigestWeekday parses the configured digest day.
func (c *Config) DigestWeekday() (time.Weekday, error) {
	return parseWeekday(c.Digest.Weekday)
}

func parseWeekday(value string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	case "tuesday", "tue":
		return time.Tuesday, nil
	case "wednesday", "wed":
		return time.Wednesday, nil
	case "thursday", "thu":
		return time.Thursday, nil
	case "friday", "fri":
		return time.Friday, nil
	case "saturday", "sat":
		return time.Saturday, nil
	default:
		return time.Sunday, fmt.Errorf("unknown weekday %q", value)
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
