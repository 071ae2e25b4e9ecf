package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/fluidstake/liquid-staking-pool/internal/config"
	"github.com/fluidstake/liquid-staking-pool/internal/db"
	"github.com/fluidstake/liquid-staking-pool/internal/fixedpoint"
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
	"github.com/fluidstake/liquid-staking-pool/internal/types"
)

const reseedPageSize = 500

// reseedCollaborators rebuilds the in-memory collaborators after a restart.
// Custody gets the pool's reserve and fees back, every open delegation is
// recreated at its bookkept balance and receipt balances are replayed from
// the journal. Holder custody balances live outside the pool and are lost.
func reseedCollaborators(
	ctx context.Context, dbClient db.DbInterface, cfg *config.PoolConfig, state pool.State, c *collaborators,
) error {
	if !state.Initialized {
		return nil
	}
	p := state.Pool

	held, err := fixedpoint.Add(p.LiquidReserve, p.ProtocolFeesEarned)
	if err != nil {
		return err
	}
	if err := c.custody.Credit(cfg.CustodyAccount, held); err != nil {
		return fmt.Errorf("failed to credit custody account: %w", err)
	}

	var staked uint64
	for _, v := range state.Validators {
		var delegated uint64
		for _, ref := range v.Delegations {
			if _, err := c.stake.Delegate(ctx, ref.Amount, ref.Target, ref.Slot); err != nil {
				return fmt.Errorf("failed to recreate delegation %s: %w", ref.ID, err)
			}
			if delegated, err = fixedpoint.Add(delegated, ref.Amount); err != nil {
				return err
			}
		}
		// harvested rewards are carried by the record, not by the refs
		if len(v.Delegations) > 0 && v.TotalDelegated > delegated {
			if err := c.stake.Accrue(v.Delegations[0].ID, v.TotalDelegated-delegated); err != nil {
				return err
			}
		}
		if staked, err = fixedpoint.Add(staked, delegated); err != nil {
			return err
		}
	}
	if err := c.custody.Credit(cfg.StakingAccount, staked); err != nil {
		return fmt.Errorf("failed to credit staking account: %w", err)
	}

	if err := replayReceipts(ctx, dbClient, p.ID, c); err != nil {
		return err
	}
	if supply := c.issuer.Supply(); supply != p.TotalReceiptMinted {
		log.Ctx(ctx).Warn().
			Uint64("replayed_supply", supply).
			Uint64("total_receipt_minted", p.TotalReceiptMinted).
			Msg("replayed receipt supply differs from pool state")
	}

	log.Ctx(ctx).Info().
		Uint64("custody", held).
		Uint64("staked", staked).
		Uint64("receipt_supply", c.issuer.Supply()).
		Msg("reference collaborators reseeded")
	return nil
}

func replayReceipts(ctx context.Context, dbClient db.DbInterface, poolID string, c *collaborators) error {
	from := uint64(1)
	for {
		events, err := dbClient.GetLedgerEvents(ctx, poolID, from, reseedPageSize)
		if err != nil {
			return fmt.Errorf("failed to read ledger events from %d: %w", from, err)
		}

		for _, e := range events {
			switch e.Type {
			case types.EventDeposit:
				err = c.issuer.Mint(ctx, e.Caller, e.Amounts["receipt_minted"])
			case types.EventInstantWithdrawal:
				err = c.issuer.Burn(ctx, e.Caller, e.Amounts["receipt_burned"])
			}
			if err != nil {
				return fmt.Errorf("failed to replay event %s: %w", e.ID, err)
			}
			from = e.Sequence + 1
		}

		if len(events) < reseedPageSize {
			return nil
		}
	}
}
