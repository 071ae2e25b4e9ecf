package receipt

import (
	"context"
	"time"

	"github.com/fluidstake/liquid-staking-pool/internal/observability/metrics"
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
)

type issuerWithMetrics struct {
	issuer pool.ReceiptIssuer
}

func NewIssuerWithMetrics(issuer pool.ReceiptIssuer) pool.ReceiptIssuer {
	return &issuerWithMetrics{issuer: issuer}
}

func (i *issuerWithMetrics) Mint(ctx context.Context, to string, amount uint64) error {
	return runIssuerMethodWithMetrics("Mint", func() error {
		return i.issuer.Mint(ctx, to, amount)
	})
}

func (i *issuerWithMetrics) Burn(ctx context.Context, from string, amount uint64) error {
	return runIssuerMethodWithMetrics("Burn", func() error {
		return i.issuer.Burn(ctx, from, amount)
	})
}

func runIssuerMethodWithMetrics(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	metrics.RecordClientLatency(time.Since(startTime), "receipt", method, err != nil)
	return err
}
