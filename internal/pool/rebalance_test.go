package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluidstake/liquid-staking-pool/internal/pool"
)

func TestRebalance(t *testing.T) {
	ctx := t.Context()

	t.Run("shortfall is unstaked", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.ledger.Deposit(ctx, alice, 1_000_000_000)
		require.NoError(t, err)
		_, err = h.ledger.RegisterValidator(ctx, authority, "val-a", 100)
		require.NoError(t, err)
		_, err = h.ledger.Delegate(ctx, authority, 0, 900_000_000, 1)
		require.NoError(t, err)

		report, err := h.ledger.Rebalance(ctx, authority)
		require.NoError(t, err)
		assert.Equal(t, pool.RebalanceReport{
			Total:              1_000_000_000,
			CurrentRatio:       10,
			TargetRatio:        30,
			TargetReserve:      300_000_000,
			Unstaked:           200_000_000,
			Shortfall:          200_000_000,
			LiquidReserveAfter: 300_000_000,
			StakedBalanceAfter: 700_000_000,
		}, report)

		p := h.pool()
		assert.Equal(t, uint64(300_000_000), p.LiquidReserve)
		assert.Equal(t, uint64(700_000_000), p.StakedBalance)
		assert.True(t, p.Balanced())
	})
	t.Run("surplus is only reported", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.ledger.Deposit(ctx, alice, 1_000_000_000)
		require.NoError(t, err)

		report, err := h.ledger.Rebalance(ctx, authority)
		require.NoError(t, err)
		assert.Equal(t, uint64(100), report.CurrentRatio)
		assert.Equal(t, uint64(700_000_000), report.Surplus)
		assert.Zero(t, report.Unstaked)
		assert.Equal(t, uint64(1_000_000_000), h.pool().LiquidReserve)
	})
	t.Run("on target", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.ledger.Deposit(ctx, alice, 1_000_000_000)
		require.NoError(t, err)
		_, err = h.ledger.RegisterValidator(ctx, authority, "val-a", 100)
		require.NoError(t, err)
		_, err = h.ledger.Delegate(ctx, authority, 0, 700_000_000, 1)
		require.NoError(t, err)

		report, err := h.ledger.Rebalance(ctx, authority)
		require.NoError(t, err)
		assert.Zero(t, report.Shortfall)
		assert.Zero(t, report.Surplus)
		assert.Equal(t, uint64(300_000_000), report.LiquidReserveAfter)
	})
	t.Run("shortfall above staked balance is unresolved", func(t *testing.T) {
		h := newHarness(t)
		s := h.ledger.Snapshot()
		s.Pool.TargetReserveRatio = 150
		s.Pool.TotalDeposited = 1_000
		s.Pool.TotalReceiptMinted = 1_000
		s.Pool.LiquidReserve = 100
		s.Pool.StakedBalance = 900
		h.ledger.Restore(s)

		report, err := h.ledger.Rebalance(ctx, authority)
		require.NoError(t, err)
		assert.True(t, report.Unresolved)
		assert.Equal(t, uint64(1_500), report.TargetReserve)
		assert.Equal(t, uint64(1_400), report.Shortfall)
		assert.Zero(t, report.Unstaked)
		assert.Equal(t, uint64(100), report.LiquidReserveAfter)
		assert.Equal(t, uint64(900), report.StakedBalanceAfter)

		p := h.pool()
		assert.Equal(t, uint64(100), p.LiquidReserve)
		assert.Equal(t, uint64(900), p.StakedBalance)
	})
	t.Run("empty pool", func(t *testing.T) {
		h := newHarness(t)
		report, err := h.ledger.Rebalance(ctx, authority)
		require.NoError(t, err)
		assert.Equal(t, pool.RebalanceReport{TargetRatio: 30}, report)
	})
	t.Run("unauthorized", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.ledger.Rebalance(ctx, alice)
		require.ErrorIs(t, err, pool.ErrUnauthorized)
	})
}
