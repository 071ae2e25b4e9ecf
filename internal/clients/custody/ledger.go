package custody

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fluidstake/liquid-staking-pool/internal/fixedpoint"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAccount    = errors.New("invalid account")
)

// Ledger is an in-memory custody ledger of named account balances.
type Ledger struct {
	mu       sync.Mutex
	balances map[string]uint64
}

func NewLedger() *Ledger {
	return &Ledger{balances: make(map[string]uint64)}
}

// Transfer atomically debits from and credits to.
func (l *Ledger) Transfer(ctx context.Context, from, to string, amount uint64) error {
	if from == "" || to == "" {
		return ErrInvalidAccount
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balances[from] < amount {
		return fmt.Errorf("account %s holds %d, need %d: %w", from, l.balances[from], amount, ErrInsufficientFunds)
	}
	if from == to {
		return nil
	}
	credited, err := fixedpoint.Add(l.balances[to], amount)
	if err != nil {
		return fmt.Errorf("credit account %s: %w", to, err)
	}
	l.balances[from] -= amount
	l.balances[to] = credited
	return nil
}

// Credit adds funds to an account from outside the ledger.
func (l *Ledger) Credit(account string, amount uint64) error {
	if account == "" {
		return ErrInvalidAccount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	credited, err := fixedpoint.Add(l.balances[account], amount)
	if err != nil {
		return fmt.Errorf("credit account %s: %w", account, err)
	}
	l.balances[account] = credited
	return nil
}

func (l *Ledger) Balance(account string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[account]
}
