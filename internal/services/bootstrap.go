package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/fluidstake/liquid-staking-pool/internal/db"
)

// Bootstrap restores the ledger from the last persisted snapshot. A pool that
// was never saved leaves the ledger uninitialized.
func (s *Service) Bootstrap(ctx context.Context) error {
	poolID := s.PoolID()

	state, err := s.db.GetPoolState(ctx, poolID)
	if err != nil {
		if db.IsNotFoundError(err) {
			log.Ctx(ctx).Info().Str("pool_id", poolID).Msg("no persisted pool state, waiting for initialization")
			return nil
		}
		return fmt.Errorf("failed to load pool state: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.ledger.Restore(*state)
	recordGauges(*state)

	log.Ctx(ctx).Info().
		Str("pool_id", poolID).
		Uint64("sequence", state.Sequence).
		Uint32("validators", state.Pool.ValidatorCount).
		Msg("pool state restored")
	return nil
}
