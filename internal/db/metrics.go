package db

import (
	"context"
	"time"

	"github.com/fluidstake/liquid-staking-pool/internal/db/model"
	"github.com/fluidstake/liquid-staking-pool/internal/observability/metrics"
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) GetPoolState(ctx context.Context, poolID string) (result *pool.State, err error) {
	//nolint:errcheck
	d.run("GetPoolState", func() error {
		result, err = d.db.GetPoolState(ctx, poolID)
		return err
	})
	return
}

func (d *DbWithMetrics) SavePoolState(ctx context.Context, state pool.State) error {
	return d.run("SavePoolState", func() error {
		return d.db.SavePoolState(ctx, state)
	})
}

func (d *DbWithMetrics) SaveLedgerEvent(ctx context.Context, event *model.LedgerEventDocument) error {
	return d.run("SaveLedgerEvent", func() error {
		return d.db.SaveLedgerEvent(ctx, event)
	})
}

func (d *DbWithMetrics) GetLedgerEvents(
	ctx context.Context, poolID string, fromSequence uint64, limit int64,
) (result []*model.LedgerEventDocument, err error) {
	//nolint:errcheck
	d.run("GetLedgerEvents", func() error {
		result, err = d.db.GetLedgerEvents(ctx, poolID, fromSequence, limit)
		return err
	})
	return
}

func (d *DbWithMetrics) UpsertPoolStats(ctx context.Context, stats *model.PoolStatsDocument) error {
	return d.run("UpsertPoolStats", func() error {
		return d.db.UpsertPoolStats(ctx, stats)
	})
}

func (d *DbWithMetrics) GetPoolStats(ctx context.Context, poolID string) (result *model.PoolStatsDocument, err error) {
	//nolint:errcheck
	d.run("GetPoolStats", func() error {
		result, err = d.db.GetPoolStats(ctx, poolID)
		return err
	})
	return
}

// run is private method that executes passed lambda function and send metrics data with spent time, method name
// and an error if any. It returns the error from the lambda function for convenience
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
