package api

import (
	"net/http"

	"github.com/fluidstake/liquid-staking-pool/internal/types"
)

func (h *Handler) GetValidators(r *http.Request) (*Result, *types.Error) {
	poolID := h.service.PoolID()
	records := h.service.GetValidators()

	resp := make([]ValidatorResponse, 0, len(records))
	for _, v := range records {
		resp = append(resp, newValidatorResponse(poolID, v))
	}
	return newResult(resp), nil
}

func (h *Handler) RegisterValidator(r *http.Request) (*Result, *types.Error) {
	req, err := decodeBody[RegisterValidatorRequest](r)
	if err != nil {
		return nil, err
	}
	rec, err := h.service.RegisterValidator(r.Context(), req.Caller, req.Identity, req.AllocationPercentage)
	if err != nil {
		return nil, err
	}
	return &Result{
		Data:   newValidatorResponse(h.service.PoolID(), rec),
		Status: http.StatusCreated,
	}, nil
}

func (h *Handler) DeactivateValidator(r *http.Request) (*Result, *types.Error) {
	return h.setValidatorActive(r, false)
}

func (h *Handler) ActivateValidator(r *http.Request) (*Result, *types.Error) {
	return h.setValidatorActive(r, true)
}

func (h *Handler) setValidatorActive(r *http.Request, active bool) (*Result, *types.Error) {
	index, err := parseIndex(r)
	if err != nil {
		return nil, err
	}
	req, err := decodeBody[CallerRequest](r)
	if err != nil {
		return nil, err
	}

	if active {
		err = h.service.ActivateValidator(r.Context(), req.Caller, index)
	} else {
		err = h.service.DeactivateValidator(r.Context(), req.Caller, index)
	}
	if err != nil {
		return nil, err
	}
	return newResult(StatusResponse{Status: types.ValidatorStatusFromActive(active).String()}), nil
}

func (h *Handler) HarvestRewards(r *http.Request) (*Result, *types.Error) {
	index, err := parseIndex(r)
	if err != nil {
		return nil, err
	}
	req, err := decodeBody[CallerRequest](r)
	if err != nil {
		return nil, err
	}

	res, err := h.service.HarvestRewards(r.Context(), req.Caller, index)
	if err != nil {
		return nil, err
	}
	resp := HarvestResponse{
		ValidatorIndex:  res.ValidatorIndex,
		ObservedBalance: res.ObservedBalance,
		Harvested:       res.Harvested,
	}
	if res.Harvested {
		split := newRewardSplitResponse(res.Split)
		resp.Rewards = &split
	}
	return newResult(resp), nil
}
