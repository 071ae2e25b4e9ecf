package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/fluidstake/liquid-staking-pool/internal/types"
)

// Result is a successful handler outcome.
type Result struct {
	Data   any
	Status int
}

func newResult(data any) *Result {
	return &Result{Data: data, Status: http.StatusOK}
}

type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

type handlerFunc func(r *http.Request) (*Result, *types.Error)

func registerHandler(f handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := f(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, result.Status, result.Data)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err *types.Error) {
	if err.StatusCode >= http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	}
	writeJSON(w, r, err.StatusCode, ErrorResponse{
		ErrorCode: string(err.ErrorCode),
		Message:   err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}
