package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFeed(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validateLedger(); err != nil {
		return err
	}
	if err := c.validateDigest(); err != nil {
		return err
	}
	if err := c.validatePublisher(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateFeed() error {
	if c.Feed.Subreddit == "" {
		return errors.New("feed.subreddit must be set")
	}
	if strings.ContainsAny(c.Feed.Subreddit, "/ ") {
		return fmt.Errorf("feed.subreddit %q must be a bare subreddit name", c.Feed.Subreddit)
	}
	parsed, err := url.Parse(c.Feed.BaseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("feed.base_url %q must be an http(s) URL", c.Feed.BaseURL)
	}
	if c.Feed.UserAgent == "" {
		return errors.New("feed.user_agent is required. Set REDDIT_USER_AGENT or edit the config file")
	}
	if c.Feed.RequestTimeout <= 0 {
		return errors.New("feed.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.PollInterval <= 0 {
		return errors.New("workflow.poll_interval must be positive")
	}
	if c.Workflow.ErrorRetryInterval <= 0 {
		return errors.New("workflow.error_retry_interval must be positive")
	}
	if c.Workflow.MinPostAge < 0 {
		return errors.New("workflow.min_post_age must be zero or positive")
	}
	return nil
}

func (c *Config) validateLedger() error {
	switch c.Ledger.Backend {
	case LedgerSQLite, LedgerFile:
		return nil
	default:
		return fmt.Errorf("ledger.backend: unsupported value %q (want %q or %q)", c.Ledger.Backend, LedgerSQLite, LedgerFile)
	}
}

func (c *Config) validateDigest() error {
	if !c.Digest.Enabled {
		return nil
	}
	if _, err := parseWeekday(c.Digest.Weekday); err != nil {
		return fmt.Errorf("digest.weekday: %w", err)
	}
	return nil
}

func (c *Config) validatePublisher() error {
	switch c.Publisher.Kind {
	case PublisherNone, PublisherDirectory:
		return nil
	case PublisherDrive:
		if c.Publisher.Drive.CredentialsFile == "" {
			return errors.New("publisher.drive.credentials_file is required. Set GOOGLE_APPLICATION_CREDENTIALS or edit the config file")
		}
		return nil
	case PublisherNtfy:
		if c.Publisher.Ntfy.Topic == "" {
			return errors.New("publisher.ntfy.topic is required. Set RECIPEWATCH_NTFY_TOPIC or edit the config file")
		}
		return nil
	default:
		return fmt.Errorf("publisher.kind: unsupported value %q", c.Publisher.Kind)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
