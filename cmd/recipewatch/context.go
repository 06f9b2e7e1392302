package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"recipewatch/internal/config"
	"recipewatch/internal/ledger"
	"recipewatch/internal/logging"
	"recipewatch/internal/store"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func (c *commandContext) logLevel() string {
	if c.logLevelFlag != nil {
		if level := strings.TrimSpace(*c.logLevelFlag); level != "" {
			return level
		}
	}
	if c.config != nil {
		return c.config.Logging.Level
	}
	return "info"
}

// commandLogger logs one-shot commands to stderr so stdout stays parseable.
func (c *commandContext) commandLogger() (*slog.Logger, error) {
	format := "console"
	if c.config != nil {
		format = c.config.Logging.Format
	}
	return logging.New(logging.Options{
		Level:       c.logLevel(),
		Format:      format,
		OutputPaths: []string{"stderr"},
	})
}

// withStore opens the recipe store and ledger for the duration of fn.
func (c *commandContext) withStore(fn func(*config.Config, *store.Store, ledger.Ledger, *slog.Logger) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.commandLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	st, err := store.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("open recipe store: %w", err)
	}
	defer st.Close()
	l, err := ledger.Open(cfg, st, logger)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	return fn(cfg, st, l, logger)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
