package model

import (
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
	"github.com/fluidstake/liquid-staking-pool/internal/types"
)

type DelegationDocument struct {
	ID     string `bson:"id"`
	Target string `bson:"target"`
	Slot   uint64 `bson:"slot"`
	Amount uint64 `bson:"amount"`
}

type ValidatorDocument struct {
	ID                   string                `bson:"_id"`
	PoolID               string                `bson:"pool_id"`
	Index                uint32                `bson:"index"`
	Identity             string                `bson:"identity"`
	AllocationPercentage uint32                `bson:"allocation_percentage"`
	TotalDelegated       uint64                `bson:"total_delegated"`
	LastUpdateEpoch      uint64                `bson:"last_update_epoch"`
	PerformanceScore     uint32                `bson:"performance_score"`
	Status               types.ValidatorStatus `bson:"status"`
	Delegations          []DelegationDocument  `bson:"delegations"`
	// Sequence is the pool sequence of the snapshot that last wrote the record.
	Sequence uint64 `bson:"sequence"`
}

func NewValidatorDocument(poolID string, v pool.ValidatorRecord) *ValidatorDocument {
	delegations := make([]DelegationDocument, 0, len(v.Delegations))
	for _, d := range v.Delegations {
		delegations = append(delegations, DelegationDocument{
			ID:     d.ID,
			Target: d.Target,
			Slot:   d.Slot,
			Amount: d.Amount,
		})
	}

	return &ValidatorDocument{
		ID:                   pool.RecordID(poolID, v.Index),
		PoolID:               poolID,
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

func (d *ValidatorDocument) ToRecord() pool.ValidatorRecord {
	var delegations []pool.DelegationRef
	for _, del := range d.Delegations {
		delegations = append(delegations, pool.DelegationRef{
			ID:     del.ID,
			Target: del.Target,
			Slot:   del.Slot,
			Amount: del.Amount,
		})
	}

	return pool.ValidatorRecord{
		Index:                d.Index,
		Identity:             d.Identity,
		AllocationPercentage: d.AllocationPercentage,
		TotalDelegated:       d.TotalDelegated,
		LastUpdateEpoch:      d.LastUpdateEpoch,
		PerformanceScore:     d.PerformanceScore,
		IsActive:             d.Status == types.ValidatorStatusActive,
		Delegations:          delegations,
	}
}
