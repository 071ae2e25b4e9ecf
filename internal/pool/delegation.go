package pool

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/fluidstake/liquid-staking-pool/internal/fixedpoint"
)

// Delegate moves amount out of the liquid reserve into a new external
// delegation to the validator at index. slot distinguishes delegation
// positions created for the same validator and must be non-zero.
func (l *Ledger) Delegate(
	ctx context.Context, caller string, index uint32, amount, slot uint64,
) (DelegationRef, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, err := l.beginPrivileged(caller)
	if err != nil {
		return DelegationRef{}, err
	}
	if amount == 0 {
		return DelegationRef{}, ErrInvalidAmount
	}
	if amount > next.Pool.LiquidReserve {
		return DelegationRef{}, ErrInsufficientLiquidity
	}
	if slot == 0 {
		return DelegationRef{}, ErrInvalidValidatorIndex
	}
	record, err := l.validator(&next, index)
	if err != nil {
		return DelegationRef{}, err
	}
	if !record.IsActive {
		return DelegationRef{}, ErrValidatorInactive
	}

	p := &next.Pool
	if p.LiquidReserve, err = fixedpoint.Sub(p.LiquidReserve, amount); err != nil {
		return DelegationRef{}, err
	}
	if p.StakedBalance, err = fixedpoint.Add(p.StakedBalance, amount); err != nil {
		return DelegationRef{}, err
	}
	if record.TotalDelegated, err = fixedpoint.Add(record.TotalDelegated, amount); err != nil {
		return DelegationRef{}, err
	}

	from, to := l.settings.CustodyAccount, l.settings.StakingAccount
	if err := l.custody.Transfer(ctx, from, to, amount); err != nil {
		return DelegationRef{}, collaboratorErr("custody transfer", err)
	}
	ref, err := l.delegations.Delegate(ctx, amount, record.Identity, slot)
	if err != nil {
		compensate(ctx, "return undelegated funds", func() error {
			return l.custody.Transfer(ctx, to, from, amount)
		})
		return DelegationRef{}, collaboratorErr("external delegation", err)
	}
	record.Delegations = append(record.Delegations, ref)
	record.LastUpdateEpoch = l.clock.CurrentEpoch()
	l.commit(next)

	log.Ctx(ctx).Info().
		Uint32("validator_index", index).
		Str("delegation_id", ref.ID).
		Uint64("amount", amount).
		Uint64("staked_balance", p.StakedBalance).
		Uint64("liquid_reserve", p.LiquidReserve).
		Uint64("sequence", l.state.Sequence).
		Msg("delegation committed")
	return ref, nil
}
