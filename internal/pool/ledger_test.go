package pool_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluidstake/liquid-staking-pool/internal/clients/custody"
	"github.com/fluidstake/liquid-staking-pool/internal/clients/receipt"
	"github.com/fluidstake/liquid-staking-pool/internal/clients/stakeclient"
	"github.com/fluidstake/liquid-staking-pool/internal/fixedpoint"
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
)

func TestInitialize(t *testing.T) {
	ctx := t.Context()
	newLedger := func() *pool.Ledger {
		return pool.NewLedger(testSettings, custody.NewLedger(), receipt.NewIssuer(), stakeclient.NewSubLedger(), fixedClock(0))
	}

	t.Run("ok", func(t *testing.T) {
		l := newLedger()
		require.NoError(t, l.Initialize(ctx, authority))

		s := l.Snapshot()
		assert.True(t, s.Initialized)
		assert.Equal(t, uint64(1), s.Sequence)
		assert.Equal(t, pool.Pool{
			ID:                 "test-pool",
			Authority:          authority,
			ExchangeRate:       fixedpoint.RateScale,
			TargetReserveRatio: 30,
			ProtocolFeeBps:     1000,
		}, s.Pool)
		assert.Empty(t, s.Validators)
	})
	t.Run("twice", func(t *testing.T) {
		l := newLedger()
		require.NoError(t, l.Initialize(ctx, authority))
		require.ErrorIs(t, l.Initialize(ctx, "someone-else"), pool.ErrAlreadyInitialized)
		assert.Equal(t, authority, l.Snapshot().Pool.Authority)
	})
	t.Run("empty authority", func(t *testing.T) {
		l := newLedger()
		require.ErrorIs(t, l.Initialize(ctx, ""), pool.ErrUnauthorized)
		assert.False(t, l.Snapshot().Initialized)
	})
	t.Run("operations before initialization", func(t *testing.T) {
		l := newLedger()
		_, err := l.Deposit(ctx, alice, pool.MinimumDeposit)
		require.ErrorIs(t, err, pool.ErrNotInitialized)
		_, err = l.Withdraw(ctx, alice, 1)
		require.ErrorIs(t, err, pool.ErrNotInitialized)
		_, err = l.RegisterValidator(ctx, authority, "val", 10)
		require.ErrorIs(t, err, pool.ErrNotInitialized)
		_, err = l.Rebalance(ctx, authority)
		require.ErrorIs(t, err, pool.ErrNotInitialized)
	})
}

func TestSnapshotIsolation(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()

	_, err := h.ledger.RegisterValidator(ctx, authority, "val-a", 40)
	require.NoError(t, err)

	s := h.ledger.Snapshot()
	s.Validators[0].Identity = "mutated"
	s.Pool.LiquidReserve = 42

	assert.Equal(t, "val-a", h.ledger.Validators()[0].Identity)
	assert.Zero(t, h.pool().LiquidReserve)
}

func TestRestore(t *testing.T) {
	h := newHarness(t)

	restored := pool.State{
		Initialized: true,
		Sequence:    41,
		Pool: pool.Pool{
			ID:                 "test-pool",
			Authority:          authority,
			TotalDeposited:     2_000_000,
			TotalReceiptMinted: 2_000_000,
			ExchangeRate:       fixedpoint.RateScale,
			LiquidReserve:      2_000_000,
			TargetReserveRatio: 30,
			ProtocolFeeBps:     1000,
		},
	}
	h.ledger.Restore(restored)
	require.NoError(t, h.custody.Credit(custodyAccount, 2_000_000))

	_, err := h.ledger.Deposit(t.Context(), alice, pool.MinimumDeposit)
	require.NoError(t, err)

	s := h.ledger.Snapshot()
	assert.Equal(t, uint64(42), s.Sequence)
	assert.Equal(t, uint64(3_000_000), s.Pool.TotalDeposited)
}

func TestWallClock(t *testing.T) {
	genesis := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := pool.WallClock{
		Genesis: genesis,
		Length:  time.Hour,
		Now:     func() time.Time { return genesis.Add(150 * time.Minute) },
	}
	assert.Equal(t, uint64(2), clock.CurrentEpoch())

	clock.Now = func() time.Time { return genesis.Add(-time.Minute) }
	assert.Zero(t, clock.CurrentEpoch())

	clock.Length = 0
	assert.Zero(t, clock.CurrentEpoch())
}

func TestRecordID(t *testing.T) {
	assert.Equal(t, "test-pool/validator/3", pool.RecordID("test-pool", 3))
}
