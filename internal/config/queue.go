package config

import (
	"errors"
	"time"
)

const (
	defaultQueueExchange       = "payment.events"
	defaultQueuePublishTimeout = 5 * time.Second
)

type QueueConfig struct {
	QueueUser      string        `mapstructure:"queue_user"`
	QueuePassword  string        `mapstructure:"queue_password"`
	Url            string        `mapstructure:"url"`
	Exchange       string        `mapstructure:"exchange"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
	MaxRetryTimes  uint          `mapstructure:"max_retry_times"`
	RetryInterval  time.Duration `mapstructure:"retry_interval"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.QueueUser == "" {
		return errors.New("missing queue user")
	}

	if cfg.QueuePassword == "" {
		return errors.New("missing queue password")
	}

	if cfg.Url == "" {
		return errors.New("missing queue url")
	}

	if cfg.Exchange == "" {
		cfg.Exchange = defaultQueueExchange
	}

	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = defaultQueuePublishTimeout
	}

	if cfg.MaxRetryTimes == 0 {
		cfg.MaxRetryTimes = 3
	}

	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = time.Second
	}

	return nil
}
