package services

import (
	"context"
	"net/http"

	"github.com/fluidstake/liquid-staking-pool/internal/db/model"
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
	"github.com/fluidstake/liquid-staking-pool/internal/types"
)

// MaxEventsPageSize bounds a single page of the ledger journal.
const MaxEventsPageSize = 500

// GetPoolState returns the current in-memory snapshot.
func (s *Service) GetPoolState() (pool.State, *types.Error) {
	state := s.ledger.Snapshot()
	if !state.Initialized {
		return pool.State{}, mapLedgerError(pool.ErrNotInitialized)
	}
	return state, nil
}

func (s *Service) GetValidators() []pool.ValidatorRecord {
	return s.ledger.Validators()
}

func (s *Service) GetLedgerEvents(
	ctx context.Context, fromSequence uint64, limit int64,
) ([]*model.LedgerEventDocument, *types.Error) {
	if limit <= 0 || limit > MaxEventsPageSize {
		return nil, types.NewErrorWithMsg(
			http.StatusBadRequest, types.BadRequest, "limit must be between 1 and 500",
		)
	}

	events, err := s.db.GetLedgerEvents(ctx, s.PoolID(), fromSequence, limit)
	if err != nil {
		return nil, types.NewInternalServiceError(err)
	}
	return events, nil
}

func (s *Service) Healthcheck(ctx context.Context) error {
	return s.db.Ping(ctx)
}
