package config

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

const (
	// Discord tokens are typically 50+ characters
	minTokenLength = 50

	minPruneInterval = time.Second

	minEventQueueSize = 1
	maxEventQueueSize = 10000
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if err := c.validateToken(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateStorage(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateCooldowns(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateEventQueueSize(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateLogging(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %w", errors.Join(errs...))
	}

	return nil
}

func (c *Config) validateToken() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required but not set")
	}

	if len(c.Token) < minTokenLength {
		return fmt.Errorf(
			"DISCORD_TOKEN appears invalid (too short: %d chars, expected %d+)",
			len(c.Token), minTokenLength,
		)
	}

	return nil
}

func (c *Config) validateStorage() error {
	switch c.StorageBackend {
	case BackendFile:
		if c.DataDir == "" {
			return fmt.Errorf("DATA_DIR cannot be empty for the file backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORAGE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendFile, BackendPostgres, c.StorageBackend)
	}
	return nil
}

func (c *Config) validateCooldowns() error {
	var errs []error

	if c.XPCooldown < 0 {
		errs = append(errs, fmt.Errorf("XP_COOLDOWN cannot be negative, got %v", c.XPCooldown))
	}
	if c.DivaCooldown < 0 {
		errs = append(errs, fmt.Errorf("DIVA_COOLDOWN cannot be negative, got %v", c.DivaCooldown))
	}
	if c.CooldownPruneInterval < minPruneInterval {
		errs = append(errs, fmt.Errorf(
			"COOLDOWN_PRUNE_INTERVAL must be at least %v, got %v",
			minPruneInterval, c.CooldownPruneInterval,
		))
	}

	return errors.Join(errs...)
}

func (c *Config) validateEventQueueSize() error {
	if c.EventQueueSize < minEventQueueSize || c.EventQueueSize > maxEventQueueSize {
		return fmt.Errorf(
			"EVENT_QUEUE_SIZE must be between %d and %d, got %d",
			minEventQueueSize, maxEventQueueSize, c.EventQueueSize,
		)
	}
	return nil
}

func (c *Config) validateLogging() error {
	var errs []error

	if !slices.Contains(logLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of %v, got %q", logLevels, c.LogLevel))
	}
	if !slices.Contains(logFormats, c.LogFormat) {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of %v, got %q", logFormats, c.LogFormat))
	}

	return errors.Join(errs...)
}
