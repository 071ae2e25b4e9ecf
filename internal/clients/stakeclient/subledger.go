package stakeclient

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"sync"

	"github.com/fluidstake/liquid-staking-pool/internal/fixedpoint"
)
)

var (
	ErrPositionExists   = errors.New("delegation position already exists")
	ErrPositionNotFound = errors.New("delegation position not found")
	ErrInvalidTarget    = errors.New("invalid delegation target")
)

type position struct {
	ref     pool.DelegationRef
	balance uint64
}

// SubLedger is an in-memory staking sub-ledger. Positions are keyed by
// target and slot; their balance grows only through Accrue.
type SubLedger struct {
	mu        sync.RWMutex
	positions map[string]*position
}

func NewSubLedger() *SubLedger {
	return &SubLedger{positions: make(map[string]*position)}
}

func PositionID(target string, slot uint64) string {
	return fmt.Sprintf("%s/stake/%d", target, slot)
}

func (s *SubLedger) Delegate(ctx context.Context, amount uint64, target string, slot uint64) (pool.DelegationRef, error) {
	if target == "" {
		return pool.DelegationRef{}, ErrInvalidTarget
	}
	if err := ctx.Err(); err != nil {
		return pool.DelegationRef{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := PositionID(target, slot)
	if _, ok := s.positions[id]; ok {
		return pool.DelegationRef{}, fmt.Errorf("%s: %w", id, ErrPositionExists)
	}
	ref := pool.DelegationRef{ID: id, Target: target, Slot: slot, Amount: amount}
	s.positions[id] = &position{ref: ref, balance: amount}
	return ref, nil
}

func (s *SubLedger) ObserveBalance(ctx context.Context, ref pool.DelegationRef) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.positions[ref.ID]
	if !ok {
		return 0, fmt.Errorf("%s: %w", ref.ID, ErrPositionNotFound)
	}
	return p.balance, nil
}

// Accrue credits validator rewards to a position.
func (s *SubLedger) Accrue(id string, rewards uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.positions[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrPositionNotFound)
	}
	balance, err := fixedpoint.Add(p.balance, rewards)
	if err != nil {
		return fmt.Errorf("accrue to position %s: %w", id, err)
	}
	p.balance = balance
	return nil
}

// Positions returns all delegation refs, in no particular order.
func (s *SubLedger) Positions() []pool.DelegationRef {
	s.mu.RLock()
	defer s.mu.RUnlock()

	refs := make([]pool.DelegationRef, 0, len(s.positions))
	for _, p := range s.positions {
		refs = append(refs, p.ref)
	}
	return refs
}
