package pool_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fluidstake/liquid-staking-pool/internal/clients/stakeclient"
	"github.com/fluidstake/liquid-staking-pool/internal/fixedpoint"
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
	"github.com/fluidstake/liquid-staking-pool/tests/mocks"
)

func TestDelegate(t *testing.T) {
	ctx := t.Context()

	setup := func(t *testing.T) *harness {
		h := newHarness(t)
		_, err := h.ledger.Deposit(ctx, alice, 1_000_000_000)
		require.NoError(t, err)
		_, err = h.ledger.RegisterValidator(ctx, authority, "val-a", 50)
		require.NoError(t, err)
		return h
	}

	t.Run("ok", func(t *testing.T) {
		h := setup(t)

		ref, err := h.ledger.Delegate(ctx, authority, 0, 600_000_000, 1)
		require.NoError(t, err)
		assert.Equal(t, pool.DelegationRef{
			ID:     stakeclient.PositionID("val-a", 1),
			Target: "val-a",
			Slot:   1,
			Amount: 600_000_000,
		}, ref)

		p := h.pool()
		assert.Equal(t, uint64(400_000_000), p.LiquidReserve)
		assert.Equal(t, uint64(600_000_000), p.StakedBalance)
		assert.True(t, p.Balanced())

		rec := h.ledger.Validators()[0]
		assert.Equal(t, uint64(600_000_000), rec.TotalDelegated)
		assert.Equal(t, []pool.DelegationRef{ref}, rec.Delegations)

		assert.Equal(t, uint64(400_000_000), h.custody.Balance(custodyAccount))
		assert.Equal(t, uint64(600_000_000), h.custody.Balance(stakingAccount))
	})
	t.Run("whole reserve", func(t *testing.T) {
		h := setup(t)
		_, err := h.ledger.Delegate(ctx, authority, 0, 1_000_000_000, 1)
		require.NoError(t, err)
		assert.Zero(t, h.pool().LiquidReserve)
	})
	t.Run("same slot twice", func(t *testing.T) {
		h := setup(t)
		_, err := h.ledger.Delegate(ctx, authority, 0, 100_000_000, 1)
		require.NoError(t, err)

		_, err = h.ledger.Delegate(ctx, authority, 0, 100_000_000, 1)
		require.ErrorIs(t, err, stakeclient.ErrPositionExists)
		assert.Equal(t, uint64(100_000_000), h.pool().StakedBalance)
		assert.Equal(t, uint64(900_000_000), h.custody.Balance(custodyAccount))
	})
	t.Run("slot zero", func(t *testing.T) {
		h := setup(t)
		_, err := h.ledger.Delegate(ctx, authority, 0, 1_000_000, 0)
		require.ErrorIs(t, err, pool.ErrInvalidValidatorIndex)
	})
	t.Run("unknown validator", func(t *testing.T) {
		h := setup(t)
		_, err := h.ledger.Delegate(ctx, authority, 3, 1_000_000, 1)
		require.ErrorIs(t, err, pool.ErrInvalidValidatorIndex)
	})
	t.Run("inactive validator", func(t *testing.T) {
		h := setup(t)
		require.NoError(t, h.ledger.DeactivateValidator(ctx, authority, 0))
		_, err := h.ledger.Delegate(ctx, authority, 0, 1_000_000, 1)
		require.ErrorIs(t, err, pool.ErrValidatorInactive)
	})
	t.Run("more than reserve", func(t *testing.T) {
		h := setup(t)
		_, err := h.ledger.Delegate(ctx, authority, 0, 1_000_000_001, 1)
		require.ErrorIs(t, err, pool.ErrInsufficientLiquidity)
	})
	t.Run("zero", func(t *testing.T) {
		h := setup(t)
		_, err := h.ledger.Delegate(ctx, authority, 0, 0, 1)
		require.ErrorIs(t, err, pool.ErrInvalidAmount)
	})
	t.Run("unauthorized", func(t *testing.T) {
		h := setup(t)
		_, err := h.ledger.Delegate(ctx, alice, 0, 1_000_000, 1)
		require.ErrorIs(t, err, pool.ErrUnauthorized)
	})
}

func TestDelegateExternalFailureReturnsFunds(t *testing.T) {
	ctx := t.Context()
	delegateErr := errors.New("staking ledger rejected delegation")

	c := mocks.NewCustody(t)
	c.On("Transfer", mock.Anything, custodyAccount, stakingAccount, uint64(3_000_000)).Return(nil).Once()
	c.On("Transfer", mock.Anything, stakingAccount, custodyAccount, uint64(3_000_000)).Return(nil).Once()

	stake := mocks.NewDelegationLedger(t)
	stake.On("Delegate", mock.Anything, uint64(3_000_000), "val-a", uint64(2)).
		Return(pool.DelegationRef{}, delegateErr).Once()

	l := pool.NewLedger(testSettings, c, mocks.NewReceiptIssuer(t), stake, fixedClock(1))
	before := pool.State{
		Initialized: true,
		Sequence:    3,
		Pool: pool.Pool{
			ID:                 "test-pool",
			Authority:          authority,
			TotalDeposited:     5_000_000,
			TotalReceiptMinted: 5_000_000,
			ExchangeRate:       fixedpoint.RateScale,
			LiquidReserve:      5_000_000,
			TargetReserveRatio: 30,
			ProtocolFeeBps:     1000,
			ValidatorCount:     1,
		},
		Validators: []pool.ValidatorRecord{
			{Index: 0, Identity: "val-a", AllocationPercentage: 100, PerformanceScore: 100, IsActive: true},
		},
	}
	l.Restore(before)

	_, err := l.Delegate(ctx, authority, 0, 3_000_000, 2)
	require.ErrorIs(t, err, delegateErr)
	assert.True(t, pool.IsCollaboratorError(err))
	assert.Equal(t, before, l.Snapshot())
}
