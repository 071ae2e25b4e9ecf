package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fluidstake/liquid-staking-pool/internal/db/model"
	"github.com/fluidstake/liquid-staking-pool/internal/fixedpoint"
	"github.com/fluidstake/liquid-staking-pool/internal/observability/metrics"
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
	"github.com/fluidstake/liquid-staking-pool/internal/utils/poller"
)

// StartStatsPoller starts the stats polling service. It only reads the
// ledger and never triggers ledger operations.
func (s *Service) StartStatsPoller(ctx context.Context) {
	statsPoller := poller.NewPoller(
		"stats",
		s.cfg.Poller.StatsPollingInterval,
		metrics.RecordPollerDuration("stats", s.updateStats),
	)
	go statsPoller.Start(ctx)
}

func (s *Service) updateStats(ctx context.Context) error {
	state := s.ledger.Snapshot()
	if !state.Initialized {
		log.Ctx(ctx).Debug().Msg("pool not initialized - skipping stats update")
		return nil
	}

	stats, err := buildStats(state, time.Now().Unix())
	if err != nil {
		return err
	}
	if err := s.db.UpsertPoolStats(ctx, stats); err != nil {
		return fmt.Errorf("failed to upsert pool stats: %w", err)
	}
	recordGauges(state)

	log.Ctx(ctx).Debug().
		Str("exchange_rate", stats.ExchangeRate).
		Uint64("reserve_ratio", stats.ReserveRatio).
		Uint32("active_validators", stats.ActiveValidators).
		Msg("updated pool stats")
	return nil
}

func buildStats(state pool.State, now int64) (*model.PoolStatsDocument, error) {
	p := state.Pool
	stats := &model.PoolStatsDocument{
		ID:                 p.ID,
		ExchangeRate:       fixedpoint.FormatRate(p.ExchangeRate),
		TotalDeposited:     p.TotalDeposited,
		TotalReceiptMinted: p.TotalReceiptMinted,
		LiquidReserve:      p.LiquidReserve,
		StakedBalance:      p.StakedBalance,
		ProtocolFeesEarned: p.ProtocolFeesEarned,
		Sequence:           state.Sequence,
		LastUpdated:        now,
	}

	total, err := fixedpoint.Add(p.LiquidReserve, p.StakedBalance)
	if err != nil {
		return nil, err
	}
	if total > 0 {
		if stats.ReserveRatio, err = fixedpoint.MulDiv(p.LiquidReserve, 100, total); err != nil {
			return nil, err
		}
	}

	for _, v := range state.Validators {
		if v.IsActive {
			stats.ActiveValidators++
		} else {
			stats.InactiveValidators++
		}
		stats.OpenDelegations += uint32(len(v.Delegations))
	}
	return stats, nil
}
