package services

import (
	"errors"
	"net/http"

	"github.com/fluidstake/liquid-staking-pool/internal/fixedpoint"
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
	"github.com/fluidstake/liquid-staking-pool/internal/types"
)

var validationErrors = []error{
	pool.ErrInvalidAmount,
	pool.ErrMinimumDeposit,
	pool.ErrInsufficientFunds,
	pool.ErrInsufficientLiquidity,
	pool.ErrInvalidAllocation,
	pool.ErrTooManyValidators,
	pool.ErrInvalidValidatorIndex,
	pool.ErrValidatorInactive,
}

// mapLedgerError assigns an HTTP status to a ledger failure.
func mapLedgerError(err error) *types.Error {
	if err == nil {
		return nil
	}

	var typed *types.Error
	if errors.As(err, &typed) {
		return typed
	}

	switch {
	case errors.Is(err, pool.ErrUnauthorized):
		return types.NewError(http.StatusForbidden, types.Forbidden, err)
	case errors.Is(err, pool.ErrNotInitialized), errors.Is(err, pool.ErrAlreadyInitialized):
		return types.NewError(http.StatusConflict, types.Conflict, err)
	case errors.Is(err, fixedpoint.ErrArithmetic):
		return types.NewError(http.StatusUnprocessableEntity, types.UnprocessableEntity, err)
	case pool.IsCollaboratorError(err):
		return types.NewError(http.StatusBadGateway, types.BadGateway, err)
	}

	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return types.NewValidationFailedError(err)
		}
	}

	return types.NewInternalServiceError(err)
}
