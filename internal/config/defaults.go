package config

const (
	defaultDataDir            = "~/.local/share/recipewatch"
	defaultLogDir             = "~/.local/share/recipewatch/logs"
	defaultStagingDir         = "~/.local/share/recipewatch/staging"
	defaultFeedBaseURL        = "https://www.reddit.com"
	defaultSubreddit          = "EatCheapAndHealthy"
	defaultUserAgent          = "linux:recipewatch:v1 (weekly recipe digest)"
	defaultFeedTimeout        = 30
	defaultFeedPageSize       = 100
	defaultFeedInterval       = 1000
	defaultFeedMaxRetries     = 2
	defaultPollInterval       = 24 * 60 * 60
	defaultErrorRetryInterval = 30 * 60
	defaultMinPostAge         = 24 * 60 * 60
	defaultLedgerFileName     = "submission_ids.txt"
	defaultDigestWeekday      = "monday"
	defaultNtfyURL            = "https://ntfy.sh"
	defaultNtfyTimeout        = 10
	defaultOutboxDirName      = "digests"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultLogRetentionDays   = 60
)

// Ledger backends.
const (
	LedgerSQLite = "sqlite"
	LedgerFile   = "file"
)

// Publisher kinds.
const (
	PublisherNone      = "none"
	PublisherDrive     = "drive"
	PublisherNtfy      = "ntfy"
	PublisherDirectory = "directory"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			LogDir:     defaultLogDir,
			StagingDir: defaultStagingDir,
		},
		Feed: Feed{
			BaseURL:         defaultFeedBaseURL,
			Subreddit:       defaultSubreddit,
			UserAgent:       defaultUserAgent,
			RequestTimeout:  defaultFeedTimeout,
			PageSize:        defaultFeedPageSize,
			RequestInterval: defaultFeedInterval,
			MaxRetries:      defaultFeedMaxRetries,
		},
		Workflow: Workflow{
			PollInterval:       defaultPollInterval,
			ErrorRetryInterval: defaultErrorRetryInterval,
			MinPostAge:         defaultMinPostAge,
		},
		Ledger: Ledger{
			Backend: LedgerSQLite,
		},
		Digest: Digest{
			Enabled:      true,
			Weekday:      defaultDigestWeekday,
			PublishEmpty: true,
		},
		Publisher: Publisher{
			Kind: PublisherNone,
			Ntfy: Ntfy{
				URL:            defaultNtfyURL,
				RequestTimeout: defaultNtfyTimeout,
			},
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
