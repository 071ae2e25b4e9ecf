package services

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/fluidstake/liquid-staking-pool/internal/db"
	"github.com/fluidstake/liquid-staking-pool/internal/db/model"
	"github.com/fluidstake/liquid-staking-pool/internal/fixedpoint"
	"github.com/fluidstake/liquid-staking-pool/internal/observability/metrics"
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
	"github.com/fluidstake/liquid-staking-pool/internal/queue"
)

const (
	persistAttempts = 3
	persistDelay    = 200 * time.Millisecond
)

// persist stores the committed snapshot and its journal entry, then publishes
// the event. Storage is retried because the ledger has already moved on; a
// publishing failure is only logged.
func (s *Service) persist(ctx context.Context, state pool.State, event *model.LedgerEventDocument) error {
	event.ID = model.LedgerEventID(state.Pool.ID, state.Sequence)
	event.PoolID = state.Pool.ID
	event.Sequence = state.Sequence
	event.ExchangeRate = state.Pool.ExchangeRate
	event.CreatedAt = time.Now().Unix()

	err := s.withRetry(ctx, "SavePoolState", func() error {
		err := s.db.SavePoolState(ctx, state)
		if db.IsStaleStateError(err) {
			return retry.Unrecoverable(err)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to save pool state at sequence %d: %w", state.Sequence, err)
	}

	err = s.withRetry(ctx, "SaveLedgerEvent", func() error {
		err := s.db.SaveLedgerEvent(ctx, event)
		if db.IsDuplicateKeyError(err) {
			return retry.Unrecoverable(err)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to journal ledger event %s: %w", event.ID, err)
	}

	if err := s.publisher.PublishLedgerEvent(ctx, toMessage(event)); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("event_id", event.ID).Msg("failed to publish ledger event")
	}

	recordGauges(state)
	return nil
}

func (s *Service) withRetry(ctx context.Context, method string, f func() error) error {
	return retry.Do(
		f,
		retry.Context(ctx),
		retry.Attempts(persistAttempts),
		retry.Delay(persistDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warn().
				Err(err).
				Str("method", method).
				Uint("attempt", n+1).
				Msg("persistence call failed, retrying")
		}),
	)
}

func toMessage(event *model.LedgerEventDocument) *queue.LedgerEventMessage {
	return &queue.LedgerEventMessage{
		EventID:        event.ID,
		PoolID:         event.PoolID,
		Sequence:       event.Sequence,
		EventType:      event.Type.String(),
		Caller:         event.Caller,
		ValidatorIndex: event.ValidatorIndex,
		Identity:       event.Identity,
		Amounts:        event.Amounts,
		ExchangeRate:   fixedpoint.FormatRate(event.ExchangeRate),
		Timestamp:      event.CreatedAt,
	}
}

func recordGauges(state pool.State) {
	p := state.Pool
	rate, _ := fixedpoint.RateDec(p.ExchangeRate).Float64()
	metrics.RecordPoolState(metrics.PoolSnapshot{
		ExchangeRate:   rate,
		TotalDeposited: p.TotalDeposited,
		ReceiptSupply:  p.TotalReceiptMinted,
		LiquidReserve:  p.LiquidReserve,
		StakedBalance:  p.StakedBalance,
		ProtocolFees:   p.ProtocolFeesEarned,
		ValidatorCount: p.ValidatorCount,
	})
}
