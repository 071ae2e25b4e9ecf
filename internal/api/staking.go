package api

import (
	"net/http"

	"github.com/fluidstake/liquid-staking-pool/internal/types"
)

func (h *Handler) Deposit(r *http.Request) (*Result, *types.Error) {
	req, err := decodeBody[AmountRequest](r)
	if err != nil {
		return nil, err
	}
	minted, err := h.service.Deposit(r.Context(), req.Caller, req.Amount)
	if err != nil {
		return nil, err
	}
	return newResult(DepositResponse{ReceiptMinted: minted}), nil
}

func (h *Handler) Withdraw(r *http.Request) (*Result, *types.Error) {
	req, err := decodeBody[AmountRequest](r)
	if err != nil {
		return nil, err
	}
	res, err := h.service.Withdraw(r.Context(), req.Caller, req.Amount)
	if err != nil {
		return nil, err
	}
	return newResult(WithdrawResponse{
		ReceiptBurned: res.ReceiptBurned,
		Gross:         res.Gross,
		Fee:           res.Fee,
		Net:           res.Net,
	}), nil
}

func (h *Handler) Delegate(r *http.Request) (*Result, *types.Error) {
	req, err := decodeBody[DelegateRequest](r)
	if err != nil {
		return nil, err
	}
	ref, err := h.service.Delegate(r.Context(), req.Caller, req.ValidatorIndex, req.Amount, req.Slot)
	if err != nil {
		return nil, err
	}
	return &Result{Data: newDelegationResponse(ref), Status: http.StatusCreated}, nil
}

func (h *Handler) UpdateRewards(r *http.Request) (*Result, *types.Error) {
	req, err := decodeBody[AmountRequest](r)
	if err != nil {
		return nil, err
	}
	split, err := h.service.UpdateRewards(r.Context(), req.Caller, req.Amount)
	if err != nil {
		return nil, err
	}
	return newResult(newRewardSplitResponse(split)), nil
}

func (h *Handler) Rebalance(r *http.Request) (*Result, *types.Error) {
	req, err := decodeBody[CallerRequest](r)
	if err != nil {
		return nil, err
	}
	report, err := h.service.Rebalance(r.Context(), req.Caller)
	if err != nil {
		return nil, err
	}
	return newResult(RebalanceResponse{
		Total:              report.Total,
		CurrentRatio:       report.CurrentRatio,
		TargetRatio:        report.TargetRatio,
		TargetReserve:      report.TargetReserve,
		Unstaked:           report.Unstaked,
		Shortfall:          report.Shortfall,
		Surplus:            report.Surplus,
		Unresolved:         report.Unresolved,
		LiquidReserveAfter: report.LiquidReserveAfter,
		StakedBalanceAfter: report.StakedBalanceAfter,
	}), nil
}

func (h *Handler) WithdrawFees(r *http.Request) (*Result, *types.Error) {
	req, err := decodeBody[AmountRequest](r)
	if err != nil {
		return nil, err
	}
	if err := h.service.WithdrawFees(r.Context(), req.Caller, req.Amount); err != nil {
		return nil, err
	}
	return h.GetPool(r)
}
