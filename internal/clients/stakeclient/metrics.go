package stakeclient

import (
	"context"
	"time"

	"github.com/fluidstake/liquid-staking-pool/internal/observability/metrics"
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
)

type subLedgerWithMetrics struct {
	ledger pool.DelegationLedger
}

func NewSubLedgerWithMetrics(ledger pool.DelegationLedger) pool.DelegationLedger {
	return &subLedgerWithMetrics{ledger: ledger}
}

func (s *subLedgerWithMetrics) Delegate(ctx context.Context, amount uint64, target string, slot uint64) (pool.DelegationRef, error) {
	return runSubLedgerMethodWithMetrics("Delegate", func() (pool.DelegationRef, error) {
		return s.ledger.Delegate(ctx, amount, target, slot)
	})
}

func (s *subLedgerWithMetrics) ObserveBalance(ctx context.Context, ref pool.DelegationRef) (uint64, error) {
	return runSubLedgerMethodWithMetrics("ObserveBalance", func() (uint64, error) {
		return s.ledger.ObserveBalance(ctx, ref)
	})
}

func runSubLedgerMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	v, err := f()
	duration := time.Since(startTime)

	metrics.RecordClientLatency(duration, "stake", method, err != nil)
	return v, err
}
