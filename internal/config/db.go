package config

import (
	"errors"
	"time"
)

const (
	defaultDbMaxRetryTimes = 5
	defaultDbRetryInterval = 2 * time.Second
)

type DbConfig struct {
	Username      string        `mapstructure:"username"`
	Password      string        `mapstructure:"password"`
	DbName        string        `mapstructure:"db-name"`
	Address       string        `mapstructure:"address"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *DbConfig) Validate() error {
	if cfg.Username == "" {
		return errors.New("username is required")
	}

	if cfg.Password == "" {
		return errors.New("password is required")
	}

	if cfg.DbName == "" {
		return errors.New("db-name is required")
	}

	if cfg.Address == "" {
		return errors.New("address is required")
	}

	if cfg.MaxRetryTimes == 0 {
		cfg.MaxRetryTimes = defaultDbMaxRetryTimes
	}

	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultDbRetryInterval
	}

	return nil
}
