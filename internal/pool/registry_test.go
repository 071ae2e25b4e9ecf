package pool_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluidstake/liquid-staking-pool/internal/pool"
)

func TestRegisterValidator(t *testing.T) {
	ctx := t.Context()

	t.Run("ok", func(t *testing.T) {
		h := newHarness(t)

		rec, err := h.ledger.RegisterValidator(ctx, authority, "val-a", 40)
		require.NoError(t, err)
		assert.Equal(t, pool.ValidatorRecord{
			Index:                0,
			Identity:             "val-a",
			AllocationPercentage: 40,
			LastUpdateEpoch:      7,
			PerformanceScore:     100,
			IsActive:             true,
		}, rec)

		rec, err = h.ledger.RegisterValidator(ctx, authority, "val-a", 0)
		require.NoError(t, err, "duplicate identities are accepted")
		assert.Equal(t, uint32(1), rec.Index)
		assert.Equal(t, uint32(2), h.pool().ValidatorCount)
	})
	t.Run("capacity", func(t *testing.T) {
		h := newHarness(t)
		for i := range pool.MaxValidators {
			_, err := h.ledger.RegisterValidator(ctx, authority, fmt.Sprintf("val-%d", i), 10)
			require.NoError(t, err)
		}

		_, err := h.ledger.RegisterValidator(ctx, authority, "val-overflow", 10)
		require.ErrorIs(t, err, pool.ErrTooManyValidators)
		assert.Equal(t, uint32(pool.MaxValidators), h.pool().ValidatorCount)
		assert.Len(t, h.ledger.Validators(), pool.MaxValidators)
	})
	t.Run("allocation above 100", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.ledger.RegisterValidator(ctx, authority, "val-a", 100)
		require.NoError(t, err)
		_, err = h.ledger.RegisterValidator(ctx, authority, "val-b", 101)
		require.ErrorIs(t, err, pool.ErrInvalidAllocation)
	})
	t.Run("unauthorized", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.ledger.RegisterValidator(ctx, alice, "val-a", 10)
		require.ErrorIs(t, err, pool.ErrUnauthorized)
		assert.Empty(t, h.ledger.Validators())
	})
}

func TestValidatorActivation(t *testing.T) {
	ctx := t.Context()
	h := newHarness(t)

	_, err := h.ledger.RegisterValidator(ctx, authority, "val-a", 10)
	require.NoError(t, err)

	require.ErrorIs(t, h.ledger.DeactivateValidator(ctx, alice, 0), pool.ErrUnauthorized)
	require.ErrorIs(t, h.ledger.DeactivateValidator(ctx, authority, 1), pool.ErrInvalidValidatorIndex)

	require.NoError(t, h.ledger.DeactivateValidator(ctx, authority, 0))
	assert.False(t, h.ledger.Validators()[0].IsActive)

	require.NoError(t, h.ledger.ActivateValidator(ctx, authority, 0))
	assert.True(t, h.ledger.Validators()[0].IsActive)
}
