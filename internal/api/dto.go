package api

import (
	"github.com/fluidstake/liquid-staking-pool/internal/db/model"
	"github.com/fluidstake/liquid-staking-pool/internal/fixedpoint"
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
	"github.com/fluidstake/liquid-staking-pool/internal/types"
)

type PoolResponse struct {
	ID                 string `json:"id"`
	Authority          string `json:"authority"`
	Sequence           uint64 `json:"sequence"`
	TotalDeposited     uint64 `json:"totalDeposited"`
	TotalReceiptMinted uint64 `json:"totalReceiptMinted"`
	ExchangeRate       string `json:"exchangeRate"`
	ExchangeRateScaled uint64 `json:"exchangeRateScaled"`
	StakedBalance      uint64 `json:"stakedBalance"`
	LiquidReserve      uint64 `json:"liquidReserve"`
	ProtocolFeesEarned uint64 `json:"protocolFeesEarned"`
	TargetReserveRatio uint32 `json:"targetReserveRatio"`
	ProtocolFeeBps     uint32 `json:"protocolFeeBps"`
	ValidatorCount     uint32 `json:"validatorCount"`
}

type DelegationResponse struct {
	ID     string `json:"id"`
	Target string `json:"target"`
	Slot   uint64 `json:"slot"`
	Amount uint64 `json:"amount"`
}

type ValidatorResponse struct {
	ID                   string                `json:"id"`
	Index                uint32                `json:"index"`
	Identity             string                `json:"identity"`
	AllocationPercentage uint32                `json:"allocationPercentage"`
	TotalDelegated       uint64                `json:"totalDelegated"`
	LastUpdateEpoch      uint64                `json:"lastUpdateEpoch"`
	PerformanceScore     uint32                `json:"performanceScore"`
	Status               types.ValidatorStatus `json:"status"`
	Delegations          []DelegationResponse  `json:"delegations"`
}

type DepositResponse struct {
	ReceiptMinted uint64 `json:"receiptMinted"`
}

type WithdrawResponse struct {
	ReceiptBurned uint64 `json:"receiptBurned"`
	Gross         uint64 `json:"gross"`
	Fee           uint64 `json:"fee"`
	Net           uint64 `json:"net"`
}

type RewardSplitResponse struct {
	Total       uint64 `json:"total"`
	ProtocolFee uint64 `json:"protocolFee"`
	UserRewards uint64 `json:"userRewards"`
	OldRate     string `json:"oldRate"`
	NewRate     string `json:"newRate"`
}

type HarvestResponse struct {
	ValidatorIndex  uint32               `json:"validatorIndex"`
	ObservedBalance uint64               `json:"observedBalance"`
	Harvested       bool                 `json:"harvested"`
	Rewards         *RewardSplitResponse `json:"rewards,omitempty"`
}

type RebalanceResponse struct {
	Total              uint64 `json:"total"`
	CurrentRatio       uint64 `json:"currentRatio"`
	TargetRatio        uint32 `json:"targetRatio"`
	TargetReserve      uint64 `json:"targetReserve"`
	Unstaked           uint64 `json:"unstaked"`
	Shortfall          uint64 `json:"shortfall"`
	Surplus            uint64 `json:"surplus"`
	Unresolved         bool   `json:"unresolved"`
	LiquidReserveAfter uint64 `json:"liquidReserveAfter"`
	StakedBalanceAfter uint64 `json:"stakedBalanceAfter"`
}

type EventsResponse struct {
	Events []*model.LedgerEventDocument `json:"events"`
	// NextSequence is the from value for the following page, zero when the
	// page was not full.
	NextSequence uint64 `json:"nextSequence,omitempty"`
}

type AccountResponse struct {
	Account        string `json:"account"`
	Balance        uint64 `json:"balance"`
	ReceiptBalance uint64 `json:"receiptBalance"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

func newPoolResponse(s pool.State) PoolResponse {
	p := s.Pool
	return PoolResponse{
		ID:                 p.ID,
		Authority:          p.Authority,
		Sequence:           s.Sequence,
		TotalDeposited:     p.TotalDeposited,
		TotalReceiptMinted: p.TotalReceiptMinted,
		ExchangeRate:       fixedpoint.FormatRate(p.ExchangeRate),
		ExchangeRateScaled: p.ExchangeRate,
		StakedBalance:      p.StakedBalance,
		LiquidReserve:      p.LiquidReserve,
		ProtocolFeesEarned: p.ProtocolFeesEarned,
		TargetReserveRatio: p.TargetReserveRatio,
		ProtocolFeeBps:     p.ProtocolFeeBps,
		ValidatorCount:     p.ValidatorCount,
	}
}

func newValidatorResponse(poolID string, v pool.ValidatorRecord) ValidatorResponse {
	delegations := make([]DelegationResponse, 0, len(v.Delegations))
	for _, d := range v.Delegations {
		delegations = append(delegations, newDelegationResponse(d))
	}
	return ValidatorResponse{
		ID:                   pool.RecordID(poolID, v.Index),
		Index:                v.Index,
		Identity:             v.Identity,
		AllocationPercentage: v.AllocationPercentage,
		TotalDelegated:       v.TotalDelegated,
		LastUpdateEpoch:      v.LastUpdateEpoch,
		PerformanceScore:     v.PerformanceScore,
		Status:               types.ValidatorStatusFromActive(v.IsActive),
		Delegations:          delegations,
	}
}

func newDelegationResponse(d pool.DelegationRef) DelegationResponse {
	return DelegationResponse{ID: d.ID, Target: d.Target, Slot: d.Slot, Amount: d.Amount}
}

func newRewardSplitResponse(s pool.RewardSplit) RewardSplitResponse {
	return RewardSplitResponse{
		Total:       s.Total,
		ProtocolFee: s.ProtocolFee,
		UserRewards: s.UserRewards,
		OldRate:     fixedpoint.FormatRate(s.OldRate),
		NewRate:     fixedpoint.FormatRate(s.NewRate),
	}
}
