package pool

import (
	"github.com/fluidstake/liquid-staking-pool/internal/fixedpoint"
)

// receiptFor converts base-asset value into receipts at rate, rounding down.
func receiptFor(amount, rate uint64) (uint64, error) {
	return fixedpoint.MulDiv(amount, fixedpoint.RateScale, rate)
}

// valueOf converts receipts into base-asset value at rate, rounding down.
func valueOf(receipts, rate uint64) (uint64, error) {
	return fixedpoint.MulDiv(receipts, rate, fixedpoint.RateScale)
}

// recomputeRate sets the rate to deposited/minted. With no receipts
// outstanding the previous rate is kept.
func recomputeRate(p *Pool) error {
	if p.TotalReceiptMinted == 0 {
		return nil
	}
	rate, err := fixedpoint.MulDiv(p.TotalDeposited, fixedpoint.RateScale, p.TotalReceiptMinted)
	if err != nil {
		return err
	}
	p.ExchangeRate = rate
	return nil
}
