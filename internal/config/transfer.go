package config

import (
	"errors"
	"net/url"
	"time"
)

const (
	defaultTransferTimeout       = 15 * time.Second
	defaultTransferMaxRetryTimes = 3
	defaultTransferRetryInterval = 500 * time.Millisecond
)

// TransferConfig points at the custody gateway that moves value in and out of the pool.
type TransferConfig struct {
	URL           string        `mapstructure:"url"`
	APIKey        string        `mapstructure:"api-key"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *TransferConfig) Validate() error {
	if cfg.URL == "" {
		return errors.New("url is required")
	}

	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return errors.New("url is invalid")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTransferTimeout
	}

	if cfg.MaxRetryTimes == 0 {
		cfg.MaxRetryTimes = defaultTransferMaxRetryTimes
	}

	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultTransferRetryInterval
	}

	return nil
}
