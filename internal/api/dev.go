package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/fluidstake/liquid-staking-pool/internal/clients/stakeclient"
	"github.com/fluidstake/liquid-staking-pool/internal/types"
)

// DevTools are the in-memory collaborators the dev endpoints act on.
type DevTools struct {
	Custody interface {
		Credit(account string, amount uint64) error
		Balance(account string) uint64
	}
	Receipts interface {
		BalanceOf(holder string) uint64
	}
	Stake interface {
		Accrue(id string, rewards uint64) error
	}
}

func (h *Handler) GetAccount(r *http.Request) (*Result, *types.Error) {
	account := chi.URLParam(r, "account")
	return newResult(AccountResponse{
		Account:        account,
		Balance:        h.dev.Custody.Balance(account),
		ReceiptBalance: h.dev.Receipts.BalanceOf(account),
	}), nil
}

func (h *Handler) CreditAccount(r *http.Request) (*Result, *types.Error) {
	account := chi.URLParam(r, "account")
	req, err := decodeBody[CreditRequest](r)
	if err != nil {
		return nil, err
	}
	if err := h.dev.Custody.Credit(account, req.Amount); err != nil {
		return nil, types.NewValidationFailedError(err)
	}
	log.Ctx(r.Context()).Warn().Str("account", account).Uint64("amount", req.Amount).Msg("dev: account credited")
	return h.GetAccount(r)
}

func (h *Handler) AccrueDelegation(r *http.Request) (*Result, *types.Error) {
	req, err := decodeBody[AccrueRequest](r)
	if err != nil {
		return nil, err
	}
	if err := h.dev.Stake.Accrue(req.DelegationID, req.Rewards); err != nil {
		if errors.Is(err, stakeclient.ErrPositionNotFound) {
			return nil, types.NewError(http.StatusNotFound, types.NotFound, err)
		}
		return nil, types.NewValidationFailedError(err)
	}
	log.Ctx(r.Context()).Warn().
		Str("delegation_id", req.DelegationID).
		Uint64("rewards", req.Rewards).
		Msg("dev: rewards accrued on delegation")
	return newResult(StatusResponse{Status: "accrued"}), nil
}
