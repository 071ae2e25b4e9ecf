package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fluidstake/liquid-staking-pool/internal/db/model"
	"github.com/fluidstake/liquid-staking-pool/internal/observability/metrics"
	"github.com/fluidstake/liquid-staking-pool/internal/observability/tracing"
	"github.com/fluidstake/liquid-staking-pool/internal/types"
	"github.com/fluidstake/liquid-staking-pool/pkg"
)

var errEmptyCaller = errors.New("caller is required")

// ledgerOp runs one ledger operation. A nil event means nothing was
// committed and there is nothing to persist.
type ledgerOp[T any] func(ctx context.Context) (T, *model.LedgerEventDocument, error)

func execute[T any](ctx context.Context, s *Service, operation, caller string, op ledgerOp[T]) (T, *types.Error) {
	ctx = tracing.WithOperation(ctx, operation)
	startTime := time.Now()

	result, err := runLocked(ctx, s, caller, op)
	metrics.RecordLedgerOperation(time.Since(startTime), operation, err != nil)
	if err != nil {
		log.Ctx(ctx).Warn().
			Err(err).
			Str("caller", caller).
			Int("status", err.StatusCode).
			Msg("ledger operation failed")
	}
	return result, err
}

func runLocked[T any](ctx context.Context, s *Service, caller string, op ledgerOp[T]) (T, *types.Error) {
	var zero T
	if err := s.validateCaller(caller); err != nil {
		return zero, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	result, event, err := op(ctx)
	if err != nil {
		return zero, mapLedgerError(err)
	}
	if event == nil {
		return result, nil
	}

	event.Caller = caller
	if err := s.persist(ctx, s.ledger.Snapshot(), event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("ledger operation committed but not persisted")
		return zero, types.NewInternalServiceError(err)
	}
	return result, nil
}

func (s *Service) validateCaller(caller string) *types.Error {
	if caller == "" {
		return types.NewValidationFailedError(errEmptyCaller)
	}
	if prefix := s.cfg.Pool.AddressPrefix; prefix != "" {
		if err := pkg.ValidateAddress(caller, prefix); err != nil {
			return types.NewValidationFailedError(err)
		}
	}
	return nil
}
