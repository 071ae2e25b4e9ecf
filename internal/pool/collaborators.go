package pool

import (
	"context"
	"time"
)

// Custody moves base-asset value between named accounts. Transfer must fail
// without side effects when the source balance is short.
type Custody interface {
	Transfer(ctx context.Context, from, to string, amount uint64) error
}

// ReceiptIssuer adjusts the receipt-token supply under the pool's authority.
type ReceiptIssuer interface {
	Mint(ctx context.Context, to string, amount uint64) error
	Burn(ctx context.Context, from string, amount uint64) error
}

// DelegationLedger is the external staking sub-ledger. The pool only creates
// positions and later observes their balance.
type DelegationLedger interface {
	Delegate(ctx context.Context, amount uint64, target string, slot uint64) (DelegationRef, error)
	ObserveBalance(ctx context.Context, ref DelegationRef) (uint64, error)
}

// EpochClock supplies the epoch stamped on validator records.
type EpochClock interface {
	CurrentEpoch() uint64
}

// WallClock derives epochs from wall time: epoch n starts at Genesis + n*Length.
type WallClock struct {
	Genesis time.Time
	Length  time.Duration
	Now     func() time.Time
}

func (c WallClock) CurrentEpoch() uint64 {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	elapsed := now().Sub(c.Genesis)
	if elapsed <= 0 || c.Length <= 0 {
		return 0
	}
	return uint64(elapsed / c.Length)
}
