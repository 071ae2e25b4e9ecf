package pool

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/fluidstake/liquid-staking-pool/internal/fixedpoint"
)

// WithdrawFees pays accrued protocol fees out of custody to the authority.
func (l *Ledger) WithdrawFees(ctx context.Context, caller string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, err := l.beginPrivileged(caller)
	if err != nil {
		return err
	}
	if amount == 0 {
		return ErrInvalidAmount
	}
	if amount > next.Pool.ProtocolFeesEarned {
		return ErrInsufficientFunds
	}
	if next.Pool.ProtocolFeesEarned, err = fixedpoint.Sub(next.Pool.ProtocolFeesEarned, amount); err != nil {
		return err
	}

	if err := l.custody.Transfer(ctx, l.settings.CustodyAccount, next.Pool.Authority, amount); err != nil {
		return collaboratorErr("custody transfer", err)
	}
	l.commit(next)

	log.Ctx(ctx).Info().
		Uint64("amount", amount).
		Uint64("protocol_fees_earned", next.Pool.ProtocolFeesEarned).
		Uint64("sequence", l.state.Sequence).
		Msg("protocol fees withdrawn")
	return nil
}
