package model

import (
	"fmt"

	"github.com/fluidstake/liquid-staking-pool/internal/types"
)

// LedgerEventDocument is one journal entry; one is written per committed
// ledger operation. Amounts holds the operation specific quantities, e.g.
// "amount" and "receipt_minted" for a deposit.
type LedgerEventDocument struct {
	ID             string            `bson:"_id" json:"id"`
	PoolID         string            `bson:"pool_id" json:"poolId"`
	Sequence       uint64            `bson:"sequence" json:"sequence"`
	Type           types.EventType   `bson:"type" json:"type"`
	Caller         string            `bson:"caller" json:"caller"`
	ValidatorIndex *uint32           `bson:"validator_index,omitempty" json:"validatorIndex,omitempty"`
	Identity       string            `bson:"identity,omitempty" json:"identity,omitempty"`
	Amounts        map[string]uint64 `bson:"amounts,omitempty" json:"amounts,omitempty"`
	ExchangeRate   uint64            `bson:"exchange_rate" json:"exchangeRate"`
	CreatedAt      int64             `bson:"created_at" json:"createdAt"`
}

func LedgerEventID(poolID string, sequence uint64) string {
	return fmt.Sprintf("%s/event/%d", poolID, sequence)
}
