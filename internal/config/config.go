package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Protocol ProtocolConfig `mapstructure:"protocol"`
	Swap     SwapConfig     `mapstructure:"swap"`
	Db       DbConfig       `mapstructure:"db"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Api      ApiConfig      `mapstructure:"api"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Protocol.Validate(); err != nil {
		return err
	}
	if err := cfg.Swap.Validate(); err != nil {
		return err
	}
	if err := cfg.Db.Validate(); err != nil {
		return err
	}
	if err := cfg.Queue.Validate(); err != nil {
		return err
	}
	if err := cfg.Api.Validate(); err != nil {
		return err
	}
	return cfg.Metrics.Validate()
}

// New returns a validated config from the given file.
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
