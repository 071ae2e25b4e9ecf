package services

import (
	"sync"

	"github.com/fluidstake/liquid-staking-pool/internal/config"
	"github.com/fluidstake/liquid-staking-pool/internal/db"
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
	"github.com/fluidstake/liquid-staking-pool/internal/queue"
)

// Service exposes the pool ledger to the outside world. Every mutating call
// runs the ledger operation, persists the resulting snapshot, journals and
// publishes the event, all inside one writer lane.
type Service struct {
	cfg       *config.Config
	db        db.DbInterface
	ledger    *pool.Ledger
	publisher queue.Publisher

	writeMu sync.Mutex
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	ledger *pool.Ledger,
	publisher queue.Publisher,
) *Service {
	return &Service{
		cfg:       cfg,
		db:        db,
		ledger:    ledger,
		publisher: publisher,
	}
}

func (s *Service) PoolID() string {
	return s.ledger.Settings().PoolID
}
