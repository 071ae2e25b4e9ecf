package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/fluidstake/liquid-staking-pool/pkg"
)

const defaultEpochLength = 24 * time.Hour

type PoolConfig struct {
	PoolID         string `mapstructure:"pool-id"`
	Authority      string `mapstructure:"authority"`
	CustodyAccount string `mapstructure:"custody-account"`
	StakingAccount string `mapstructure:"staking-account"`
	// AddressPrefix enables bech32 validation of every account the service
	// touches. Leave empty to accept opaque account names.
	AddressPrefix string        `mapstructure:"address-prefix"`
	EpochLength   time.Duration `mapstructure:"epoch-length"`
	// GenesisTime is the RFC3339 start of epoch zero.
	GenesisTime string `mapstructure:"genesis-time"`
}

func (cfg *PoolConfig) Validate() error {
	if cfg.PoolID == "" {
		return errors.New("missing pool id")
	}

	if cfg.CustodyAccount == "" {
		return errors.New("missing custody account")
	}

	if cfg.StakingAccount == "" {
		return errors.New("missing staking account")
	}

	if cfg.CustodyAccount == cfg.StakingAccount {
		return errors.New("custody and staking accounts must differ")
	}

	if cfg.AddressPrefix != "" {
		accounts := map[string]string{
			"custody-account": cfg.CustodyAccount,
			"staking-account": cfg.StakingAccount,
		}
		if cfg.Authority != "" {
			accounts["authority"] = cfg.Authority
		}
		for name, address := range accounts {
			if err := pkg.ValidateAddress(address, cfg.AddressPrefix); err != nil {
				return fmt.Errorf("invalid %s: %w", name, err)
			}
		}
	}

	if cfg.EpochLength <= 0 {
		cfg.EpochLength = defaultEpochLength
	}

	if _, err := cfg.Genesis(); err != nil {
		return fmt.Errorf("invalid genesis-time: %w", err)
	}

	return nil
}

// Genesis parses GenesisTime. An empty value means the Unix epoch.
func (cfg *PoolConfig) Genesis() (time.Time, error) {
	if cfg.GenesisTime == "" {
		return time.Unix(0, 0).UTC(), nil
	}
	return time.Parse(time.RFC3339, cfg.GenesisTime)
}
