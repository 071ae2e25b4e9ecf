package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/fluidstake/liquid-staking-pool/internal/services"
	"github.com/fluidstake/liquid-staking-pool/internal/types"
)

const defaultEventsPageSize = 100

type Handler struct {
	service *services.Service
	dev     *DevTools
}

func NewHandler(service *services.Service, dev *DevTools) *Handler {
	return &Handler{service: service, dev: dev}
}

func (h *Handler) Healthcheck(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Healthcheck(r.Context()); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("healthcheck failed")
		writeJSON(w, r, http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, r, http.StatusOK, StatusResponse{Status: "ok"})
}

func (h *Handler) InitializePool(r *http.Request) (*Result, *types.Error) {
	req, err := decodeBody[InitializePoolRequest](r)
	if err != nil {
		return nil, err
	}
	if err := h.service.InitializePool(r.Context(), req.Authority); err != nil {
		return nil, err
	}
	return h.GetPool(r)
}

func (h *Handler) GetPool(r *http.Request) (*Result, *types.Error) {
	state, err := h.service.GetPoolState()
	if err != nil {
		return nil, err
	}
	return newResult(newPoolResponse(state)), nil
}

func (h *Handler) GetLedgerEvents(r *http.Request) (*Result, *types.Error) {
	from, err := parseUintQuery(r, "from", 1)
	if err != nil {
		return nil, err
	}
	limit, err := parseUintQuery(r, "limit", defaultEventsPageSize)
	if err != nil {
		return nil, err
	}
	if limit > services.MaxEventsPageSize {
		return nil, types.NewErrorWithMsg(
			http.StatusBadRequest, types.BadRequest, "limit must be between 1 and 500",
		)
	}

	events, err := h.service.GetLedgerEvents(r.Context(), from, int64(limit))
	if err != nil {
		return nil, err
	}

	resp := EventsResponse{Events: events}
	if n := len(events); n > 0 && uint64(n) == limit {
		resp.NextSequence = events[n-1].Sequence + 1
	}
	return newResult(resp), nil
}
