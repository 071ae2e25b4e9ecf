package config

import (
	"errors"
)

type QueueConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Url          string `mapstructure:"url"`
	ExchangeName string `mapstructure:"exchange-name"`
}

func (cfg *QueueConfig) Validate() error {
	if !cfg.Enabled {
		return nil
	}

	if cfg.User == "" {
		return errors.New("missing queue user")
	}

	if cfg.Password == "" {
		return errors.New("missing queue password")
	}

	if cfg.Url == "" {
		return errors.New("missing queue url")
	}

	if cfg.ExchangeName == "" {
		cfg.ExchangeName = "liquid_staking_ledger_events"
	}

	return nil
}
