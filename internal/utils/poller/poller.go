package poller

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Poller runs a poll function once on start and then on every tick.
type Poller struct {
	name     string
	interval time.Duration
	poll     func(ctx context.Context) error
	stop     chan struct{}
}

func NewPoller(name string, interval time.Duration, poll func(ctx context.Context) error) *Poller {
	return &Poller{
		name:     name,
		interval: interval,
		poll:     poll,
		stop:     make(chan struct{}),
	}
}

// Start blocks until ctx is cancelled or Stop is called. A failed poll is
// logged and the next tick tries again.
func (p *Poller) Start(ctx context.Context) {
	logger := log.With().Str("poller", p.name).Dur("interval", p.interval).Logger()
	logger.Info().Msg("poller started")

	p.runOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.runOnce(ctx)
		case <-ctx.Done():
			logger.Info().Msg("poller stopped: context done")
			return
		case <-p.stop:
			logger.Info().Msg("poller stopped")
			return
		}
	}
}

func (p *Poller) runOnce(ctx context.Context) {
	if err := p.poll(ctx); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("poller", p.name).Msg("poll failed")
	}
}

func (p *Poller) Stop() {
	close(p.stop)
}
