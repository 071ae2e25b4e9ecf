package pool

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/iter"

	"github.com/fluidstake/liquid-staking-pool/internal/fixedpoint"
)

// HarvestRewards compares the observed external balance of a validator's
// delegations with the bookkept total and accrues any excess as rewards.
// Finding no excess is a successful no-op.
func (l *Ledger) HarvestRewards(ctx context.Context, caller string, index uint32) (HarvestResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, err := l.beginPrivileged(caller)
	if err != nil {
		return HarvestResult{}, err
	}
	record, err := l.validator(&next, index)
	if err != nil {
		return HarvestResult{}, err
	}
	if !record.IsActive {
		return HarvestResult{}, ErrValidatorInactive
	}

	observed, err := l.observe(ctx, record.Delegations)
	if err != nil {
		return HarvestResult{}, err
	}
	res := HarvestResult{ValidatorIndex: index, ObservedBalance: observed}
	if observed <= record.TotalDelegated {
		log.Ctx(ctx).Debug().
			Uint32("validator_index", index).
			Uint64("observed", observed).
			Uint64("total_delegated", record.TotalDelegated).
			Msg("no new rewards from validator")
		return res, nil
	}

	earned, err := fixedpoint.Sub(observed, record.TotalDelegated)
	if err != nil {
		return HarvestResult{}, err
	}
	split, err := accrueRewards(&next.Pool, earned)
	if err != nil {
		return HarvestResult{}, err
	}
	record.TotalDelegated = observed
	record.LastUpdateEpoch = l.clock.CurrentEpoch()
	l.commit(next)

	res.Harvested = true
	res.Split = split
	logAccrual(ctx, "harvest", split, l.state.Sequence)
	return res, nil
}

// UpdateRewards accrues an aggregate reward total supplied by the authority.
// Callers must not report the same reward through HarvestRewards as well.
func (l *Ledger) UpdateRewards(ctx context.Context, caller string, totalRewards uint64) (RewardSplit, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, err := l.beginPrivileged(caller)
	if err != nil {
		return RewardSplit{}, err
	}
	if totalRewards == 0 {
		return RewardSplit{}, ErrInvalidAmount
	}
	split, err := accrueRewards(&next.Pool, totalRewards)
	if err != nil {
		return RewardSplit{}, err
	}
	l.commit(next)

	logAccrual(ctx, "update", split, l.state.Sequence)
	return split, nil
}

func (l *Ledger) observe(ctx context.Context, refs []DelegationRef) (uint64, error) {
	balances, err := iter.MapErr(refs, func(ref *DelegationRef) (uint64, error) {
		return l.delegations.ObserveBalance(ctx, *ref)
	})
	if err != nil {
		return 0, collaboratorErr("observe balance", err)
	}
	var total uint64
	for _, b := range balances {
		if total, err = fixedpoint.Add(total, b); err != nil {
			return 0, err
		}
	}
	return total, nil
}

// accrueRewards is the single reward path: the protocol fee is split off,
// the remainder raises the staked balance and the rate.
func accrueRewards(p *Pool, earned uint64) (RewardSplit, error) {
	fee, err := fixedpoint.Bps(earned, uint64(p.ProtocolFeeBps))
	if err != nil {
		return RewardSplit{}, err
	}
	userRewards, err := fixedpoint.Sub(earned, fee)
	if err != nil {
		return RewardSplit{}, err
	}
	split := RewardSplit{
		Total:       earned,
		ProtocolFee: fee,
		UserRewards: userRewards,
		OldRate:     p.ExchangeRate,
	}
	if p.StakedBalance, err = fixedpoint.Add(p.StakedBalance, userRewards); err != nil {
		return RewardSplit{}, err
	}
	if p.ProtocolFeesEarned, err = fixedpoint.Add(p.ProtocolFeesEarned, fee); err != nil {
		return RewardSplit{}, err
	}
	if p.TotalDeposited, err = fixedpoint.Add(p.TotalDeposited, userRewards); err != nil {
		return RewardSplit{}, err
	}
	if err := recomputeRate(p); err != nil {
		return RewardSplit{}, err
	}
	split.NewRate = p.ExchangeRate
	return split, nil
}

func logAccrual(ctx context.Context, source string, split RewardSplit, sequence uint64) {
	log.Ctx(ctx).Info().
		Str("source", source).
		Uint64("rewards", split.Total).
		Uint64("user_rewards", split.UserRewards).
		Uint64("protocol_fee", split.ProtocolFee).
		Str("exchange_rate", fixedpoint.FormatRate(split.NewRate)).
		Uint64("sequence", sequence).
		Msg("rewards accrued")
}
