package custody

import (
	"context"
	"time"

	"github.com/fluidstake/liquid-staking-pool/internal/observability/metrics"
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
)

type custodyWithMetrics struct {
	custody pool.Custody
}

func NewCustodyWithMetrics(custody pool.Custody) pool.Custody {
	return &custodyWithMetrics{custody: custody}
}

func (c *custodyWithMetrics) Transfer(ctx context.Context, from, to string, amount uint64) error {
	startTime := time.Now()
	err := c.custody.Transfer(ctx, from, to, amount)
	metrics.RecordClientLatency(time.Since(startTime), "custody", "Transfer", err != nil)
	return err
}
