package pool

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/fluidstake/liquid-staking-pool/internal/fixedpoint"
)

// Deposit takes amount from the caller into custody and mints receipts at the
// current rate. New deposits always land in the liquid reserve.
func (l *Ledger) Deposit(ctx context.Context, caller string, amount uint64) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, err := l.beginHolder(caller)
	if err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, ErrInvalidAmount
	}
	if amount < MinimumDeposit {
		return 0, ErrMinimumDeposit
	}

	p := &next.Pool
	minted, err := receiptFor(amount, p.ExchangeRate)
	if err != nil {
		return 0, err
	}
	if minted == 0 {
		return 0, ErrInvalidAmount
	}
	if p.TotalDeposited, err = fixedpoint.Add(p.TotalDeposited, amount); err != nil {
		return 0, err
	}
	if p.TotalReceiptMinted, err = fixedpoint.Add(p.TotalReceiptMinted, minted); err != nil {
		return 0, err
	}
	if p.LiquidReserve, err = fixedpoint.Add(p.LiquidReserve, amount); err != nil {
		return 0, err
	}

	if err := l.custody.Transfer(ctx, caller, l.settings.CustodyAccount, amount); err != nil {
		return 0, collaboratorErr("custody transfer", err)
	}
	if err := l.issuer.Mint(ctx, caller, minted); err != nil {
		compensate(ctx, "refund deposit", func() error {
			return l.custody.Transfer(ctx, l.settings.CustodyAccount, caller, amount)
		})
		return 0, collaboratorErr("receipt mint", err)
	}
	l.commit(next)

	log.Ctx(ctx).Info().
		Str("caller", caller).
		Uint64("amount", amount).
		Uint64("receipt_minted", minted).
		Uint64("total_deposited", p.TotalDeposited).
		Uint64("sequence", l.state.Sequence).
		Msg("deposit committed")
	return minted, nil
}

// Withdraw burns receipts and pays out their value from the liquid reserve,
// less the instant withdrawal fee. There is no delayed withdrawal queue.
func (l *Ledger) Withdraw(ctx context.Context, caller string, receiptAmount uint64) (WithdrawResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, err := l.beginHolder(caller)
	if err != nil {
		return WithdrawResult{}, err
	}
	if receiptAmount == 0 {
		return WithdrawResult{}, ErrInvalidAmount
	}

	p := &next.Pool
	gross, err := valueOf(receiptAmount, p.ExchangeRate)
	if err != nil {
		return WithdrawResult{}, err
	}
	if gross == 0 {
		return WithdrawResult{}, ErrInvalidAmount
	}
	if gross > p.LiquidReserve {
		return WithdrawResult{}, ErrInsufficientLiquidity
	}
	fee, err := fixedpoint.Bps(gross, InstantWithdrawFeeBps)
	if err != nil {
		return WithdrawResult{}, err
	}
	net, err := fixedpoint.Sub(gross, fee)
	if err != nil {
		return WithdrawResult{}, err
	}

	if p.TotalDeposited, err = fixedpoint.Sub(p.TotalDeposited, gross); err != nil {
		return WithdrawResult{}, err
	}
	if p.TotalReceiptMinted, err = fixedpoint.Sub(p.TotalReceiptMinted, receiptAmount); err != nil {
		return WithdrawResult{}, err
	}
	if p.LiquidReserve, err = fixedpoint.Sub(p.LiquidReserve, gross); err != nil {
		return WithdrawResult{}, err
	}
	if p.ProtocolFeesEarned, err = fixedpoint.Add(p.ProtocolFeesEarned, fee); err != nil {
		return WithdrawResult{}, err
	}

	if err := l.issuer.Burn(ctx, caller, receiptAmount); err != nil {
		return WithdrawResult{}, collaboratorErr("receipt burn", err)
	}
	if err := l.custody.Transfer(ctx, l.settings.CustodyAccount, caller, net); err != nil {
		compensate(ctx, "re-mint burned receipts", func() error {
			return l.issuer.Mint(ctx, caller, receiptAmount)
		})
		return WithdrawResult{}, collaboratorErr("custody transfer", err)
	}
	l.commit(next)

	res := WithdrawResult{ReceiptBurned: receiptAmount, Gross: gross, Fee: fee, Net: net}
	log.Ctx(ctx).Info().
		Str("caller", caller).
		Uint64("receipt_amount", receiptAmount).
		Uint64("gross", gross).
		Uint64("fee", fee).
		Uint64("net", net).
		Uint64("liquid_reserve", p.LiquidReserve).
		Uint64("sequence", l.state.Sequence).
		Msg("instant withdrawal committed")
	return res, nil
}
