package receipt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluidstake/liquid-staking-pool/internal/fixedpoint"
)

func TestIssuer(t *testing.T) {
	ctx := t.Context()
	i := NewIssuer()

	require.NoError(t, i.Mint(ctx, "alice", 1_000))
	require.NoError(t, i.Mint(ctx, "bob", 500))
	assert.Equal(t, uint64(1_500), i.Supply())

	require.NoError(t, i.Burn(ctx, "alice", 400))
	assert.Equal(t, uint64(600), i.BalanceOf("alice"))
	assert.Equal(t, uint64(1_100), i.Supply())

	err := i.Burn(ctx, "bob", 501)
	require.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, uint64(500), i.BalanceOf("bob"))
	assert.Equal(t, uint64(1_100), i.Supply())

	require.ErrorIs(t, i.Mint(ctx, "", 1), ErrInvalidHolder)

	err = i.Mint(ctx, "carol", math.MaxUint64)
	require.ErrorIs(t, err, fixedpoint.ErrOverflow)
	assert.Zero(t, i.BalanceOf("carol"))
	assert.Equal(t, uint64(1_100), i.Supply())
}
