package config

import "errors"

type ApiConfig struct {
	Port int `mapstructure:"port"`
}

func (cfg *ApiConfig) Validate() error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return errors.New("api port out of range")
	}
	return nil
}

type MetricsConfig struct {
	Port int `mapstructure:"port"`
}

func (cfg *MetricsConfig) Validate() error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return errors.New("metrics port out of range")
	}
	return nil
}

func (cfg *MetricsConfig) GetMetricsPort() int {
	return cfg.Port
}
