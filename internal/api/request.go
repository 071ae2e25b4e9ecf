package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fluidstake/liquid-staking-pool/internal/types"
)

const maxBodyBytes = 1 << 16

type InitializePoolRequest struct {
	Authority string `json:"authority"`
}

// CallerRequest is the body of mutating requests without further arguments.
type CallerRequest struct {
	Caller string `json:"caller"`
}

type RegisterValidatorRequest struct {
	Caller               string `json:"caller"`
	Identity             string `json:"identity"`
	AllocationPercentage uint32 `json:"allocationPercentage"`
}

type AmountRequest struct {
	Caller string `json:"caller"`
	Amount uint64 `json:"amount"`
}

type DelegateRequest struct {
	Caller         string `json:"caller"`
	ValidatorIndex uint32 `json:"validatorIndex"`
	Amount         uint64 `json:"amount"`
	Slot           uint64 `json:"slot"`
}

type CreditRequest struct {
	Amount uint64 `json:"amount"`
}

type AccrueRequest struct {
	DelegationID string `json:"delegationId"`
	Rewards      uint64 `json:"rewards"`
}

func decodeBody[T any](r *http.Request) (T, *types.Error) {
	var body T
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("request body is empty")
		}
		return body, types.NewErrorWithMsg(
			http.StatusBadRequest, types.BadRequest, fmt.Sprintf("invalid request body: %v", err),
		)
	}
	return body, nil
}

func parseIndex(r *http.Request) (uint32, *types.Error) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, types.NewErrorWithMsg(
			http.StatusBadRequest, types.BadRequest, fmt.Sprintf("invalid validator index %q", raw),
		)
	}
	return uint32(index), nil
}

func parseUintQuery(r *http.Request, key string, defaultValue uint64) (uint64, *types.Error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, types.NewErrorWithMsg(
			http.StatusBadRequest, types.BadRequest, fmt.Sprintf("invalid %s query parameter", key),
		)
	}
	return v, nil
}
