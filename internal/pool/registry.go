package pool

import (
	"context"

	"github.com/rs/zerolog/log"
)

// RegisterValidator appends a validator record. Identities are not
// deduplicated.
func (l *Ledger) RegisterValidator(
	ctx context.Context, caller, identity string, allocationPct uint32,
) (ValidatorRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, err := l.beginPrivileged(caller)
	if err != nil {
		return ValidatorRecord{}, err
	}
	if allocationPct > 100 {
		return ValidatorRecord{}, ErrInvalidAllocation
	}
	if next.Pool.ValidatorCount >= MaxValidators {
		return ValidatorRecord{}, ErrTooManyValidators
	}

	record := ValidatorRecord{
		Index:                next.Pool.ValidatorCount,
		Identity:             identity,
		AllocationPercentage: allocationPct,
		LastUpdateEpoch:      l.clock.CurrentEpoch(),
		PerformanceScore:     InitialPerformanceScore,
		IsActive:             true,
	}
	next.Validators = append(next.Validators, record)
	next.Pool.ValidatorCount++
	l.commit(next)

	log.Ctx(ctx).Info().
		Uint32("index", record.Index).
		Str("identity", identity).
		Uint32("allocation_pct", allocationPct).
		Msg("validator registered")
	return record, nil
}

// DeactivateValidator stops new delegations and harvesting for a record.
func (l *Ledger) DeactivateValidator(ctx context.Context, caller string, index uint32) error {
	return l.setActive(ctx, caller, index, false)
}

// ActivateValidator re-enables a previously deactivated record.
func (l *Ledger) ActivateValidator(ctx context.Context, caller string, index uint32) error {
	return l.setActive(ctx, caller, index, true)
}

func (l *Ledger) setActive(ctx context.Context, caller string, index uint32, active bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, err := l.beginPrivileged(caller)
	if err != nil {
		return err
	}
	record, err := l.validator(&next, index)
	if err != nil {
		return err
	}
	record.IsActive = active
	record.LastUpdateEpoch = l.clock.CurrentEpoch()
	l.commit(next)

	log.Ctx(ctx).Info().
		Uint32("index", index).
		Bool("active", active).
		Msg("validator status changed")
	return nil
}

// Validators returns copies of all registered records.
func (l *Ledger) Validators() []ValidatorRecord {
	return l.Snapshot().Validators
}
