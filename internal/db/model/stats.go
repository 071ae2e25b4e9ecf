package model

// PoolStatsDocument is the periodic snapshot written by the stats poller.
type PoolStatsDocument struct {
	ID                 string `bson:"_id"` // pool id
	ExchangeRate       string `bson:"exchange_rate"`
	TotalDeposited     uint64 `bson:"total_deposited"`
	TotalReceiptMinted uint64 `bson:"total_receipt_minted"`
	LiquidReserve      uint64 `bson:"liquid_reserve"`
	StakedBalance      uint64 `bson:"staked_balance"`
	ProtocolFeesEarned uint64 `bson:"protocol_fees_earned"`
	ReserveRatio       uint64 `bson:"reserve_ratio"`
	ActiveValidators   uint32 `bson:"active_validators"`
	InactiveValidators uint32 `bson:"inactive_validators"`
	OpenDelegations    uint32 `bson:"open_delegations"`
	Sequence           uint64 `bson:"sequence"`
	LastUpdated        int64  `bson:"last_updated"`
}
