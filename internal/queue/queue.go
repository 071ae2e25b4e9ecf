package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/fluidstake/liquid-staking-pool/internal/config"
	"github.com/fluidstake/liquid-staking-pool/internal/observability/metrics"
)

// Publisher delivers committed ledger events to downstream consumers.
type Publisher interface {
	PublishLedgerEvent(ctx context.Context, msg *LedgerEventMessage) error
	Shutdown()
}

// LedgerEventMessage is the JSON body published for every journal entry.
type LedgerEventMessage struct {
	EventID        string            `json:"event_id"`
	PoolID         string            `json:"pool_id"`
	Sequence       uint64            `json:"sequence"`
	EventType      string            `json:"event_type"`
	Caller         string            `json:"caller"`
	ValidatorIndex *uint32           `json:"validator_index,omitempty"`
	Identity       string            `json:"identity,omitempty"`
	Amounts        map[string]uint64 `json:"amounts,omitempty"`
	ExchangeRate   string            `json:"exchange_rate"`
	Timestamp      int64             `json:"timestamp"`
}

type QueueManager struct {
	mu       sync.Mutex
	url      string
	exchange string
	logger   *zap.Logger
	conn     *amqp.Connection
	ch       *amqp.Channel
}

// NewQueueManager dials the broker and declares the fanout exchange. A
// disabled queue config yields a publisher that drops every message.
func NewQueueManager(cfg *config.QueueConfig, logger *zap.Logger) (Publisher, error) {
	if !cfg.Enabled {
		logger.Info("queue publishing disabled")
		return NoopPublisher{}, nil
	}

	qm := &QueueManager{
		url:      brokerURL(cfg),
		exchange: cfg.ExchangeName,
		logger:   logger.With(zap.String("exchange", cfg.ExchangeName)),
	}
	if err := qm.connect(); err != nil {
		return nil, err
	}
	return qm, nil
}

func brokerURL(cfg *config.QueueConfig) string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   cfg.Url,
	}
	return u.String()
}

func (qm *QueueManager) connect() error {
	conn, err := amqp.Dial(qm.url)
	if err != nil {
		return fmt.Errorf("failed to dial queue broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to open queue channel: %w", err)
	}
	err = ch.ExchangeDeclare(qm.exchange, amqp.ExchangeFanout, true, false, false, false, nil)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to declare exchange %s: %w", qm.exchange, err)
	}

	qm.conn = conn
	qm.ch = ch
	return nil
}

func (qm *QueueManager) PublishLedgerEvent(ctx context.Context, msg *LedgerEventMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	qm.mu.Lock()
	defer qm.mu.Unlock()

	if qm.conn == nil || qm.conn.IsClosed() || qm.ch.IsClosed() {
		qm.logger.Warn("queue connection lost, reconnecting")
		if err := qm.connect(); err != nil {
			metrics.RecordQueueSendError()
			return err
		}
	}

	err = qm.ch.PublishWithContext(ctx, qm.exchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.EventID,
		Type:         msg.EventType,
		Timestamp:    time.Unix(msg.Timestamp, 0),
		Body:         body,
	})
	if err != nil {
		metrics.RecordQueueSendError()
		qm.logger.Error("failed to publish ledger event",
			zap.String("event_id", msg.EventID),
			zap.Uint64("sequence", msg.Sequence),
			zap.Error(err),
		)
		return err
	}

	qm.logger.Debug("ledger event published",
		zap.String("event_id", msg.EventID),
		zap.String("event_type", msg.EventType),
	)
	return nil
}

// Shutdown gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Shutdown() {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	qm.logger.Info("shutting down queue manager")
	if qm.ch != nil {
		_ = qm.ch.Close()
	}
	if qm.conn != nil {
		if err := qm.conn.Close(); err != nil {
			qm.logger.Warn("failed to close queue connection", zap.Error(err))
		}
	}
}

// NoopPublisher discards messages.
type NoopPublisher struct{}

func (NoopPublisher) PublishLedgerEvent(context.Context, *LedgerEventMessage) error { return nil }

func (NoopPublisher) Shutdown() {}
