package cli

import (
	"context"
	"fmt"

	"github.com/fluidstake/liquid-staking-pool/internal/clients/custody"
	"github.com/fluidstake/liquid-staking-pool/internal/clients/receipt"
	"github.com/fluidstake/liquid-staking-pool/internal/clients/stakeclient"
	"github.com/fluidstake/liquid-staking-pool/internal/config"
	"github.com/fluidstake/liquid-staking-pool/internal/db"
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
	"github.com/fluidstake/liquid-staking-pool/internal/queue"
	"github.com/fluidstake/liquid-staking-pool/internal/services"
)

// collaborators are the in-memory reference implementations backing the
// ledger in this binary.
type collaborators struct {
	custody *custody.Ledger
	issuer  *receipt.Issuer
	stake   *stakeclient.SubLedger
}

func newCollaborators() *collaborators {
	return &collaborators{
		custody: custody.NewLedger(),
		issuer:  receipt.NewIssuer(),
		stake:   stakeclient.NewSubLedger(),
	}
}

func loadConfig() (*config.Config, error) {
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("error while loading config file %s: %w", cfgPath, err)
	}
	return cfg, nil
}

func newLedger(cfg *config.Config, c *collaborators) (*pool.Ledger, error) {
	genesis, err := cfg.Pool.Genesis()
	if err != nil {
		return nil, err
	}

	settings := pool.Settings{
		PoolID:         cfg.Pool.PoolID,
		CustodyAccount: cfg.Pool.CustodyAccount,
		StakingAccount: cfg.Pool.StakingAccount,
	}
	return pool.NewLedger(
		settings,
		custody.NewCustodyWithMetrics(c.custody),
		receipt.NewIssuerWithMetrics(c.issuer),
		stakeclient.NewSubLedgerWithMetrics(c.stake),
		pool.WallClock{Genesis: genesis, Length: cfg.Pool.EpochLength},
	), nil
}

// newService wires a service around a fresh ledger and restores it from the
// database.
func newService(
	ctx context.Context, cfg *config.Config, dbClient db.DbInterface, publisher queue.Publisher,
) (*services.Service, *collaborators, error) {
	c := newCollaborators()
	ledger, err := newLedger(cfg, c)
	if err != nil {
		return nil, nil, err
	}

	service := services.NewService(cfg, dbClient, ledger, publisher)
	if err := service.Bootstrap(ctx); err != nil {
		return nil, nil, err
	}
	return service, c, nil
}
