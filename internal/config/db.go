package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
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
		return errors.New("missing db username")
	}

	if cfg.Password == "" {
		return errors.New("missing db password")
	}

	if cfg.Address == "" {
		return errors.New("missing db address")
	}

	if cfg.DbName == "" {
		return errors.New("missing db name")
	}

	u, err := url.Parse(cfg.Address)
	if err != nil {
		return fmt.Errorf("invalid db address: %w", err)
	}

	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return fmt.Errorf("unsupported db address scheme: %s", u.Scheme)
	}

	if cfg.MaxRetryTimes == 0 {
		cfg.MaxRetryTimes = 3
	}

	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = time.Second
	}

	return nil
}
