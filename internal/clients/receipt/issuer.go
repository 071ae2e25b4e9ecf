package receipt

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fluidstake/liquid-staking-pool/internal/fixedpoint"
)

var (
	ErrInsufficientBalance = errors.New("insufficient receipt balance")
	ErrInvalidHolder       = errors.New("invalid holder")
)

// Issuer is an in-memory receipt-token mint. Only the pool holding it can
// change supply.
type Issuer struct {
	mu       sync.Mutex
	balances map[string]uint64
	supply   uint64
}

func NewIssuer() *Issuer {
	return &Issuer{balances: make(map[string]uint64)}
}

func (i *Issuer) Mint(ctx context.Context, to string, amount uint64) error {
	if to == "" {
		return ErrInvalidHolder
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	supply, err := fixedpoint.Add(i.supply, amount)
	if err != nil {
		return fmt.Errorf("mint %d receipts: %w", amount, err)
	}
	i.supply = supply
	i.balances[to] += amount
	return nil
}

func (i *Issuer) Burn(ctx context.Context, from string, amount uint64) error {
	if from == "" {
		return ErrInvalidHolder
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.balances[from] < amount {
		return fmt.Errorf("holder %s has %d, burning %d: %w", from, i.balances[from], amount, ErrInsufficientBalance)
	}
	i.balances[from] -= amount
	i.supply -= amount
	return nil
}

func (i *Issuer) BalanceOf(holder string) uint64 {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.balances[holder]
}

func (i *Issuer) Supply() uint64 {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.supply
}
