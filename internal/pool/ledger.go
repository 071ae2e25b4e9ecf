package pool

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/fluidstake/liquid-staking-pool/internal/fixedpoint"
)

// Settings names the accounts the ledger moves value between.
type Settings struct {
	PoolID         string
	CustodyAccount string
	StakingAccount string
}

// Ledger is the pool's state machine. Operations are serialized and either
// commit completely or leave the state untouched.
type Ledger struct {
	mu sync.Mutex

	settings    Settings
	custody     Custody
	issuer      ReceiptIssuer
	delegations DelegationLedger
	clock       EpochClock

	state State
}

func NewLedger(
	settings Settings,
	custody Custody,
	issuer ReceiptIssuer,
	delegations DelegationLedger,
	clock EpochClock,
) *Ledger {
	if clock == nil {
		clock = WallClock{}
	}
	return &Ledger{
		settings:    settings,
		custody:     custody,
		issuer:      issuer,
		delegations: delegations,
		clock:       clock,
	}
}

// Initialize creates the pool with a 1:1 rate and establishes the authority.
func (l *Ledger) Initialize(ctx context.Context, authority string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state.Initialized {
		return ErrAlreadyInitialized
	}
	if authority == "" {
		return ErrUnauthorized
	}

	next := State{
		Initialized: true,
		Sequence:    l.state.Sequence,
		Pool: Pool{
			ID:                 l.settings.PoolID,
			Authority:          authority,
			ExchangeRate:       fixedpoint.RateScale,
			TargetReserveRatio: DefaultTargetReserveRatio,
			ProtocolFeeBps:     DefaultProtocolFeeBps,
		},
	}
	l.commit(next)

	log.Ctx(ctx).Info().
		Str("pool_id", next.Pool.ID).
		Str("authority", authority).
		Uint32("target_reserve_ratio", next.Pool.TargetReserveRatio).
		Msg("liquid staking pool initialized")
	return nil
}

// Snapshot returns a deep copy of the ledger state.
func (l *Ledger) Snapshot() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.clone()
}

// Restore replaces the in-memory state with a persisted snapshot.
func (l *Ledger) Restore(s State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = s.clone()
}

func (l *Ledger) Settings() Settings {
	return l.settings
}

// begin validates that the pool exists and returns a working copy.
func (l *Ledger) begin() (State, error) {
	if !l.state.Initialized {
		return State{}, ErrNotInitialized
	}
	return l.state.clone(), nil
}

// beginHolder is begin for operations that move value between a holder and
// the pool. The pool's own accounts cannot act as holders: a transfer from
// custody to itself moves nothing while the books would still change.
func (l *Ledger) beginHolder(caller string) (State, error) {
	next, err := l.begin()
	if err != nil {
		return State{}, err
	}
	if caller == l.settings.CustodyAccount || caller == l.settings.StakingAccount {
		return State{}, ErrUnauthorized
	}
	return next, nil
}

// beginPrivileged is begin plus the authority check.
func (l *Ledger) beginPrivileged(caller string) (State, error) {
	next, err := l.begin()
	if err != nil {
		return State{}, err
	}
	if caller != next.Pool.Authority {
		return State{}, ErrUnauthorized
	}
	return next, nil
}

func (l *Ledger) commit(next State) {
	next.Sequence++
	l.state = next
}

func (l *Ledger) validator(s *State, index uint32) (*ValidatorRecord, error) {
	if index >= s.Pool.ValidatorCount || int(index) >= len(s.Validators) {
		return nil, ErrInvalidValidatorIndex
	}
	return &s.Validators[index], nil
}

// compensate runs an undo step after a later collaborator call failed. A
// failing undo is logged; the original error is still the one returned.
func compensate(ctx context.Context, op string, undo func() error) {
	if err := undo(); err != nil {
		log.Ctx(ctx).Error().
			Err(err).
			Str("op", op).
			Msg("failed to compensate collaborator call, manual reconciliation required")
	}
}
