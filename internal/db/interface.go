package db

import (
	"context"

	"github.com/fluidstake/liquid-staking-pool/internal/db/model"
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
)

type DbInterface interface {
	Ping(ctx context.Context) error
	// GetPoolState loads the pool and its validators. It returns
	// NotFoundError when the pool has never been saved.
	GetPoolState(ctx context.Context, poolID string) (*pool.State, error)
	// SavePoolState upserts the pool snapshot and every validator record.
	// Saving the stored sequence again is allowed; an older snapshot yields
	// StaleStateError.
	SavePoolState(ctx context.Context, state pool.State) error
	// SaveLedgerEvent appends a journal entry; a repeated sequence yields
	// DuplicateKeyError.
	SaveLedgerEvent(ctx context.Context, event *model.LedgerEventDocument) error
	GetLedgerEvents(ctx context.Context, poolID string, fromSequence uint64, limit int64) ([]*model.LedgerEventDocument, error)
	UpsertPoolStats(ctx context.Context, stats *model.PoolStatsDocument) error
	GetPoolStats(ctx context.Context, poolID string) (*model.PoolStatsDocument, error)
}
