package preflight

import (
	"context"

	"recipewatch/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckDirectoryAccess("Staging directory", cfg.Paths.StagingDir),
		CheckCatalog(cfg.Analyzer.CatalogPath),
	}

	switch cfg.Publisher.Kind {
	case config.PublisherDrive:
		results = append(results, CheckReadableFile("Drive credentials", cfg.Publisher.Drive.CredentialsFile))
	case config.PublisherNtfy:
		results = append(results, CheckNtfy(cfg.Publisher.Ntfy))
	case config.PublisherDirectory:
		results = append(results, CheckDirectoryAccess("Digest outbox", cfg.Publisher.Directory.Path))
	}

	results = append(results, CheckFeed(ctx, cfg.Feed))
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
