package pool

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount         = errors.New("invalid amount provided")
	ErrMinimumDeposit        = errors.New("deposit is below the minimum of 0.001 unit")
	ErrInsufficientFunds     = errors.New("insufficient funds in pool")
	ErrInsufficientLiquidity = errors.New("insufficient liquidity for operation")
	ErrUnauthorized          = errors.New("unauthorized: only pool authority can perform this action")
	ErrInvalidAllocation     = errors.New("invalid allocation percentage")
	ErrTooManyValidators     = errors.New("too many validators")
	ErrInvalidValidatorIndex = errors.New("invalid validator index")
	ErrValidatorInactive     = errors.New("validator is not active")
	ErrAlreadyInitialized    = errors.New("pool is already initialized")
	ErrNotInitialized        = errors.New("pool is not initialized")
)

// CollaboratorError reports a failed call into custody, the receipt issuer or
// the delegation sub-ledger. The ledger is unchanged when it is returned.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

func collaboratorErr(op string, err error) error {
	return &CollaboratorError{Op: op, Err: err}
}

// IsCollaboratorError reports whether err came from an external collaborator.
func IsCollaboratorError(err error) bool {
	var ce *CollaboratorError
	return errors.As(err, &ce)
}
