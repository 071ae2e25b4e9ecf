package pool

import (
	"fmt"

	"github.com/fluidstake/liquid-staking-pool/internal/fixedpoint"
)

const (
	// MaxValidators bounds the validator registry.
	MaxValidators = 10
	// MinimumDeposit is 0.001 unit in the smallest denomination.
	MinimumDeposit uint64 = 1_000_000
	// InstantWithdrawFeeBps is the fee on instant withdrawals (0.3%).
	InstantWithdrawFeeBps uint64 = 30

	DefaultTargetReserveRatio uint32 = 30
	DefaultProtocolFeeBps     uint32 = 1000
	InitialPerformanceScore   uint32 = 100
)

// Pool is the singleton ledger record.
type Pool struct {
	ID                 string
	Authority          string
	TotalDeposited     uint64
	TotalReceiptMinted uint64
	ExchangeRate       uint64
	StakedBalance      uint64
	LiquidReserve      uint64
	ProtocolFeesEarned uint64
	TargetReserveRatio uint32
	ProtocolFeeBps     uint32
	ValidatorCount     uint32
}

// DelegationRef identifies one external delegation position.
type DelegationRef struct {
	ID     string
	Target string
	Slot   uint64
	Amount uint64
}

// ValidatorRecord is the pool's bookkeeping for one delegation target.
type ValidatorRecord struct {
	Index                uint32
	Identity             string
	AllocationPercentage uint32
	TotalDelegated       uint64
	LastUpdateEpoch      uint64
	PerformanceScore     uint32
	IsActive             bool
	Delegations          []DelegationRef
}

// RecordID is the stable identifier of a validator record.
func RecordID(poolID string, index uint32) string {
	return fmt.Sprintf("%s/validator/%d", poolID, index)
}

// State is everything the ledger owns. Sequence counts committed operations.
type State struct {
	Initialized bool
	Sequence    uint64
	Pool        Pool
	Validators  []ValidatorRecord
}

func (s State) clone() State {
	c := s
	if s.Validators == nil {
		return c
	}
	c.Validators = make([]ValidatorRecord, len(s.Validators))
	for i, v := range s.Validators {
		v.Delegations = append([]DelegationRef(nil), v.Delegations...)
		c.Validators[i] = v
	}
	return c
}

// Balanced reports whether staked + reserve equals the deposited total.
func (p Pool) Balanced() bool {
	sum, err := fixedpoint.Add(p.StakedBalance, p.LiquidReserve)
	return err == nil && sum == p.TotalDeposited
}

// WithdrawResult is the outcome of an instant withdrawal.
type WithdrawResult struct {
	ReceiptBurned uint64
	Gross         uint64
	Fee           uint64
	Net           uint64
}

// RewardSplit divides accrued rewards between users and the protocol.
type RewardSplit struct {
	Total       uint64
	ProtocolFee uint64
	UserRewards uint64
	OldRate     uint64
	NewRate     uint64
}

// HarvestResult is the outcome of harvesting a single validator.
type HarvestResult struct {
	ValidatorIndex  uint32
	ObservedBalance uint64
	Harvested       bool
	Split           RewardSplit
}

// RebalanceReport describes the reserve/stake split before and after a rebalance.
type RebalanceReport struct {
	Total              uint64
	CurrentRatio       uint64
	TargetRatio        uint32
	TargetReserve      uint64
	Unstaked           uint64
	Shortfall          uint64
	Surplus            uint64
	Unresolved         bool
	LiquidReserveAfter uint64
	StakedBalanceAfter uint64
}
