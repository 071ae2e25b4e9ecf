package pool_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fluidstake/liquid-staking-pool/internal/clients/custody"
	"github.com/fluidstake/liquid-staking-pool/internal/clients/receipt"
	"github.com/fluidstake/liquid-staking-pool/internal/clients/stakeclient"
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
)

const (
	authority      = "authority"
	alice          = "alice"
	bob            = "bob"
	custodyAccount = "pool-custody"
	stakingAccount = "pool-staking"
)

type fixedClock uint64

func (c fixedClock) CurrentEpoch() uint64 { return uint64(c) }

type harness struct {
	ledger  *pool.Ledger
	custody *custody.Ledger
	issuer  *receipt.Issuer
	stake   *stakeclient.SubLedger
}

var testSettings = pool.Settings{
	PoolID:         "test-pool",
	CustodyAccount: custodyAccount,
	StakingAccount: stakingAccount,
}

// newHarness returns an initialized ledger backed by in-memory collaborators
// with alice and bob funded.
func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		custody: custody.NewLedger(),
		issuer:  receipt.NewIssuer(),
		stake:   stakeclient.NewSubLedger(),
	}
	h.ledger = pool.NewLedger(testSettings, h.custody, h.issuer, h.stake, fixedClock(7))

	require.NoError(t, h.custody.Credit(alice, 10_000_000_000))
	require.NoError(t, h.custody.Credit(bob, 10_000_000_000))
	require.NoError(t, h.ledger.Initialize(t.Context(), authority))
	return h
}

func (h *harness) pool() pool.Pool {
	return h.ledger.Snapshot().Pool
}
