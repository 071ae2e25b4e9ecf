package types

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	cause := errors.New("boom")

	err := NewInternalServiceError(cause)
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.Equal(t, InternalServiceError, err.ErrorCode)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "boom", err.Error())

	err = NewErrorWithMsg(http.StatusConflict, Conflict, "already there")
	assert.Equal(t, "already there", err.Error())

	err = NewValidationFailedError(cause)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, ValidationError, err.ErrorCode)
}
