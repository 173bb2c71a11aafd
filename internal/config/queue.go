package config

import (
	"errors"
	"time"
)

type QueueConfig struct {
	Url            string        `mapstructure:"url"`
	Exchange       string        `mapstructure:"exchange"`
	PublishTimeout time.Duration `mapstructure:"publish-timeout"`
	// Enabled lets operators run the engine without a broker; events are
	// then logged and dropped.
	Enabled bool `mapstructure:"enabled"`
}

func (cfg *QueueConfig) Validate() error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Url == "" {
		return errors.New("queue url is required when the queue is enabled")
	}
	if cfg.Exchange == "" {
		return errors.New("queue exchange is required when the queue is enabled")
	}
	if cfg.PublishTimeout <= 0 {
		return errors.New("queue publish-timeout must be positive")
	}
	return nil
}
