package pool

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/fluidstake/liquid-staking-pool/internal/fixedpoint"
)

// Rebalance moves the reserve toward the target ratio. A reserve shortfall is
// settled immediately by moving staked balance into the reserve, standing in
// for an unstake whose cooldown has already elapsed. A surplus is only
// reported; delegating it is left to the caller.
func (l *Ledger) Rebalance(ctx context.Context, caller string) (RebalanceReport, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, err := l.beginPrivileged(caller)
	if err != nil {
		return RebalanceReport{}, err
	}

	p := &next.Pool
	report := RebalanceReport{TargetRatio: p.TargetReserveRatio}
	if report.Total, err = fixedpoint.Add(p.LiquidReserve, p.StakedBalance); err != nil {
		return RebalanceReport{}, err
	}
	if report.Total > 0 {
		if report.CurrentRatio, err = fixedpoint.MulDiv(p.LiquidReserve, 100, report.Total); err != nil {
			return RebalanceReport{}, err
		}
	}
	if report.TargetReserve, err = fixedpoint.Percent(report.Total, uint64(p.TargetReserveRatio)); err != nil {
		return RebalanceReport{}, err
	}

	switch {
	case p.LiquidReserve < report.TargetReserve:
		if report.Shortfall, err = fixedpoint.Sub(report.TargetReserve, p.LiquidReserve); err != nil {
			return RebalanceReport{}, err
		}
		// Only a target ratio above 100 can ask for more than the staked
		// balance. Initialize never sets one, a restored snapshot may.
		if report.Shortfall > p.StakedBalance {
			report.Unresolved = true
			break
		}
		if p.StakedBalance, err = fixedpoint.Sub(p.StakedBalance, report.Shortfall); err != nil {
			return RebalanceReport{}, err
		}
		if p.LiquidReserve, err = fixedpoint.Add(p.LiquidReserve, report.Shortfall); err != nil {
			return RebalanceReport{}, err
		}
		report.Unstaked = report.Shortfall
	case p.LiquidReserve > report.TargetReserve:
		if report.Surplus, err = fixedpoint.Sub(p.LiquidReserve, report.TargetReserve); err != nil {
			return RebalanceReport{}, err
		}
	}
	report.LiquidReserveAfter = p.LiquidReserve
	report.StakedBalanceAfter = p.StakedBalance
	l.commit(next)

	log.Ctx(ctx).Info().
		Uint64("current_ratio", report.CurrentRatio).
		Uint32("target_ratio", report.TargetRatio).
		Uint64("unstaked", report.Unstaked).
		Uint64("surplus", report.Surplus).
		Bool("unresolved", report.Unresolved).
		Uint64("sequence", l.state.Sequence).
		Msg("pool rebalanced")
	return report, nil
}
