package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFeed()
	if err := c.normalizeAnalyzer(); err != nil {
		return err
	}
	if err := c.normalizeLedger(); err != nil {
		return err
	}
	if err := c.normalizePublisher(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.DataDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		c.Paths.StagingDir = filepath.Join(c.Paths.DataDir, "staging")
	}
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFeed() {
	if value, ok := os.LookupEnv("REDDIT_USER_AGENT"); ok && strings.TrimSpace(value) != "" {
		c.Feed.UserAgent = value
	}
	c.Feed.UserAgent = strings.TrimSpace(c.Feed.UserAgent)
	c.Feed.BaseURL = strings.TrimRight(strings.TrimSpace(c.Feed.BaseURL), "/")
	if c.Feed.BaseURL == "" {
		c.Feed.BaseURL = defaultFeedBaseURL
	}
	c.Feed.Subreddit = strings.TrimPrefix(strings.TrimSpace(c.Feed.Subreddit), "r/")
	if c.Feed.PageSize <= 0 || c.Feed.PageSize > defaultFeedPageSize {
		c.Feed.PageSize = defaultFeedPageSize
	}
	if c.Feed.RequestInterval < 0 {
		c.Feed.RequestInterval = 0
	}
	if c.Feed.MaxRetries < 0 {
		c.Feed.MaxRetries = 0
	}
}

func (c *Config) normalizeAnalyzer() error {
	var err error
	if c.Analyzer.CatalogPath, err = expandPath(strings.TrimSpace(c.Analyzer.CatalogPath)); err != nil {
		return fmt.Errorf("analyzer.catalog_path: %w", err)
	}
	markers := c.Analyzer.InstructionStopMarkers[:0]
	for _, marker := range c.Analyzer.InstructionStopMarkers {
		if trimmed := strings.TrimSpace(marker); trimmed != "" {
			markers = append(markers, trimmed)
		}
	}
	c.Analyzer.InstructionStopMarkers = markers
	return nil
}

func (c *Config) normalizeLedger() error {
	c.Ledger.Backend = strings.ToLower(strings.TrimSpace(c.Ledger.Backend))
	if c.Ledger.Backend == "" {
		c.Ledger.Backend = LedgerSQLite
	}
	if strings.TrimSpace(c.Ledger.FilePath) == "" {
		c.Ledger.FilePath = filepath.Join(c.Paths.DataDir, defaultLedgerFileName)
	}
	var err error
	if c.Ledger.FilePath, err = expandPath(c.Ledger.FilePath); err != nil {
		return fmt.Errorf("ledger.file_path: %w", err)
	}
	return nil
}

func (c *Config) normalizePublisher() error {
	c.Publisher.Kind = strings.ToLower(strings.TrimSpace(c.Publisher.Kind))
	if c.Publisher.Kind == "" {
		c.Publisher.Kind = PublisherNone
	}

	if c.Publisher.Drive.CredentialsFile == "" {
		if value, ok := os.LookupEnv("GOOGLE_APPLICATION_CREDENTIALS"); ok {
			c.Publisher.Drive.CredentialsFile = value
		}
	}
	var err error
	if c.Publisher.Drive.CredentialsFile, err = expandPath(strings.TrimSpace(c.Publisher.Drive.CredentialsFile)); err != nil {
		return fmt.Errorf("publisher.drive.credentials_file: %w", err)
	}
	c.Publisher.Drive.FolderID = strings.TrimSpace(c.Publisher.Drive.FolderID)

	if value, ok := os.LookupEnv("RECIPEWATCH_NTFY_TOPIC"); ok && strings.TrimSpace(value) != "" {
		c.Publisher.Ntfy.Topic = value
	}
	c.Publisher.Ntfy.Topic = strings.TrimSpace(c.Publisher.Ntfy.Topic)
	c.Publisher.Ntfy.URL = strings.TrimRight(strings.TrimSpace(c.Publisher.Ntfy.URL), "/")
	if c.Publisher.Ntfy.URL == "" {
		c.Publisher.Ntfy.URL = defaultNtfyURL
	}
	if c.Publisher.Ntfy.RequestTimeout <= 0 {
		c.Publisher.Ntfy.RequestTimeout = defaultNtfyTimeout
	}

	if strings.TrimSpace(c.Publisher.Directory.Path) == "" {
		c.Publisher.Directory.Path = filepath.Join(c.Paths.DataDir, defaultOutboxDirName)
	}
	if c.Publisher.Directory.Path, err = expandPath(c.Publisher.Directory.Path); err != nil {
		return fmt.Errorf("publisher.directory.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
