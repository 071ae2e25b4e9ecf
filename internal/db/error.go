package db

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// DuplicateKeyError is an error type for duplicate key errors
type DuplicateKeyError struct {
	Key     string
	Message string
}

func (e *DuplicateKeyError) Error() string {
	return e.Message
}

func IsDuplicateKeyError(err error) bool {
	var target *DuplicateKeyError
	return errors.As(err, &target)
}

// Not found Error
type NotFoundError struct {
	Key     string
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// StaleStateError is returned when a snapshot older than the stored one is
// written.
type StaleStateError struct {
	PoolID   string
	Sequence uint64
}

func (e *StaleStateError) Error() string {
	return "pool state is newer than the snapshot being saved"
}

func IsStaleStateError(err error) bool {
	var target *StaleStateError
	return errors.As(err, &target)
}

func duplicateKey(err error, key, msg string) error {
	if mongo.IsDuplicateKeyError(err) {
		return &DuplicateKeyError{Key: key, Message: msg}
	}
	return err
}
