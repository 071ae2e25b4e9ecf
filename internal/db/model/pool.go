package model

import (
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
)

// PoolDocument is the persisted pool record. Sequence guards against a
// stale writer overwriting a newer snapshot.
type PoolDocument struct {
	ID                 string `bson:"_id"`
	Initialized        bool   `bson:"initialized"`
	Sequence           uint64 `bson:"sequence"`
	Authority          string `bson:"authority"`
	TotalDeposited     uint64 `bson:"total_deposited"`
	TotalReceiptMinted uint64 `bson:"total_receipt_minted"`
	ExchangeRate       uint64 `bson:"exchange_rate"`
	StakedBalance      uint64 `bson:"staked_balance"`
	LiquidReserve      uint64 `bson:"liquid_reserve"`
	ProtocolFeesEarned uint64 `bson:"protocol_fees_earned"`
	TargetReserveRatio uint32 `bson:"target_reserve_ratio"`
	ProtocolFeeBps     uint32 `bson:"protocol_fee_bps"`
	ValidatorCount     uint32 `bson:"validator_count"`
	UpdatedAt          int64  `bson:"updated_at"`
}

func NewPoolDocument(s pool.State, updatedAt int64) *PoolDocument {
	p := s.Pool
	return &PoolDocument{
		ID:                 p.ID,
		Initialized:        s.Initialized,
		Sequence:           s.Sequence,
		Authority:          p.Authority,
		TotalDeposited:     p.TotalDeposited,
		TotalReceiptMinted: p.TotalReceiptMinted,
		ExchangeRate:       p.ExchangeRate,
		StakedBalance:      p.StakedBalance,
		LiquidReserve:      p.LiquidReserve,
		ProtocolFeesEarned: p.ProtocolFeesEarned,
		TargetReserveRatio: p.TargetReserveRatio,
		ProtocolFeeBps:     p.ProtocolFeeBps,
		ValidatorCount:     p.ValidatorCount,
		UpdatedAt:          updatedAt,
	}
}

func (d *PoolDocument) ToPool() pool.Pool {
	return pool.Pool{
		ID:                 d.ID,
		Authority:          d.Authority,
		TotalDeposited:     d.TotalDeposited,
		TotalReceiptMinted: d.TotalReceiptMinted,
		ExchangeRate:       d.ExchangeRate,
		StakedBalance:      d.StakedBalance,
		LiquidReserve:      d.LiquidReserve,
		ProtocolFeesEarned: d.ProtocolFeesEarned,
		TargetReserveRatio: d.TargetReserveRatio,
		ProtocolFeeBps:     d.ProtocolFeeBps,
		ValidatorCount:     d.ValidatorCount,
	}
}
