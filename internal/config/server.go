package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	defaultRateLimitRPS   = 10
	defaultRateLimitBurst = 20
	defaultMaxEventsLimit = 100
)

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
	ReadTimeout  time.Duration `mapstructure:"read-timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle-timeout"`
	// JWTSecret signs HS256 bearer tokens whose subject is the caller identity.
	JWTSecret      string  `mapstructure:"jwt-secret"`
	JWTIssuer      string  `mapstructure:"jwt-issuer"`
	RateLimitRPS   float64 `mapstructure:"rate-limit-rps"`
	RateLimitBurst int     `mapstructure:"rate-limit-burst"`
	MaxEventsLimit int64   `mapstructure:"max-events-limit"`
}

func (cfg *ServerConfig) Validate() error {
	if cfg.Host == "" {
		return errors.New("host is required")
	}

	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("port number must be between 0 and 65535, got %d", cfg.Port)
	}

	if cfg.WriteTimeout <= 0 {
		return errors.New("write-timeout must be positive")
	}

	if cfg.ReadTimeout <= 0 {
		return errors.New("read-timeout must be positive")
	}

	if cfg.IdleTimeout <= 0 {
		return errors.New("idle-timeout must be positive")
	}

	if len(cfg.JWTSecret) < 32 {
		return errors.New("jwt-secret must be at least 32 characters")
	}

	if cfg.JWTIssuer == "" {
		return errors.New("jwt-issuer is required")
	}

	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = defaultRateLimitRPS
	}

	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = defaultRateLimitBurst
	}

	if cfg.MaxEventsLimit <= 0 {
		cfg.MaxEventsLimit = defaultMaxEventsLimit
	}

	return nil
}
