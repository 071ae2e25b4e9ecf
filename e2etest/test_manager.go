//go:build e2e

package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fluidstake/liquid-staking-pool/e2etest/container"
	"github.com/fluidstake/liquid-staking-pool/internal/api"
	"github.com/fluidstake/liquid-staking-pool/internal/clients/custody"
	"github.com/fluidstake/liquid-staking-pool/internal/clients/receipt"
	"github.com/fluidstake/liquid-staking-pool/internal/clients/stakeclient"
	"github.com/fluidstake/liquid-staking-pool/internal/config"
	"github.com/fluidstake/liquid-staking-pool/internal/db"
	"github.com/fluidstake/liquid-staking-pool/internal/db/model"
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
	"github.com/fluidstake/liquid-staking-pool/internal/queue"
	"github.com/fluidstake/liquid-staking-pool/internal/services"
)

var (
	eventuallyWaitTimeOut = 20 * time.Second
	eventuallyPollTime    = 500 * time.Millisecond
)

type TestManager struct {
	Config    *config.Config
	DbClient  *db.Database
	Service   *services.Service
	Server    *httptest.Server
	Publisher queue.Publisher
	Events    <-chan amqp.Delivery
}

// StartManager brings up mongo and rabbitmq, wires the service exactly like
// start-server does and serves the API from an httptest server.
func StartManager(t *testing.T) *TestManager {
	ctx := context.Background()
	manager := container.NewManager(t)

	cfg := DefaultPoolConfig()
	cfg.Db = manager.StartMongo(t)
	cfg.Queue = manager.StartRabbit(t, cfg.Queue.ExchangeName)
	require.NoError(t, cfg.Validate())

	require.NoError(t, model.Setup(ctx, &cfg.Db))
	dbClient, err := db.New(ctx, cfg.Db)
	require.NoError(t, err)

	events := subscribe(t, cfg.Queue)

	publisher, err := queue.NewQueueManager(&cfg.Queue, zap.NewNop())
	require.NoError(t, err)

	tm := &TestManager{
		Config:    cfg,
		DbClient:  dbClient,
		Publisher: publisher,
		Events:    events,
	}
	tm.Service, tm.Server = tm.startService(t)

	t.Cleanup(func() {
		tm.Server.Close()
		publisher.Shutdown()
		_ = dbClient.Close(context.Background())
	})
	return tm
}

func (tm *TestManager) startService(t *testing.T) (*services.Service, *httptest.Server) {
	settings := pool.Settings{
		PoolID:         tm.Config.Pool.PoolID,
		CustodyAccount: tm.Config.Pool.CustodyAccount,
		StakingAccount: tm.Config.Pool.StakingAccount,
	}
	custodyLedger := custody.NewLedger()
	issuer := receipt.NewIssuer()
	stake := stakeclient.NewSubLedger()
	ledger := pool.NewLedger(settings, custodyLedger, issuer, stake, nil)

	service := services.NewService(tm.Config, db.NewDbWithMetrics(tm.DbClient), ledger, tm.Publisher)
	require.NoError(t, service.Bootstrap(context.Background()))

	dev := &api.DevTools{Custody: custodyLedger, Receipts: issuer, Stake: stake}
	return service, httptest.NewServer(api.NewHandler(service, dev).Router(true))
}

// Restart replaces the service and API with fresh ones bootstrapped from the
// same database.
func (tm *TestManager) Restart(t *testing.T) {
	tm.Server.Close()
	tm.Service, tm.Server = tm.startService(t)
}

func subscribe(t *testing.T, cfg config.QueueConfig) <-chan amqp.Delivery {
	conn, err := amqp.Dial(container.AmqpURL(cfg))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ch, err := conn.Channel()
	require.NoError(t, err)
	require.NoError(t, ch.ExchangeDeclare(cfg.ExchangeName, amqp.ExchangeFanout, true, false, false, false, nil))
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, "", cfg.ExchangeName, false, nil))

	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)
	return deliveries
}

func DefaultPoolConfig() *config.Config {
	return &config.Config{
		Pool: config.PoolConfig{
			PoolID:         "e2e-pool",
			Authority:      "authority",
			CustodyAccount: "pool-custody",
			StakingAccount: "pool-staking",
		},
		Queue: config.QueueConfig{
			ExchangeName: "liquid_staking_ledger_events_e2e",
		},
		Poller: config.PollerConfig{
			StatsPollingInterval: time.Second,
		},
		Metrics: config.MetricsConfig{
			Host: "0.0.0.0",
			Port: 2113,
		},
	}
}

// Call performs a JSON request against the API and decodes the response
// into out when it is non-nil.
func (tm *TestManager) Call(t *testing.T, method, path string, body, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, tm.Server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// NextEvent waits for the next ledger event on the queue.
func (tm *TestManager) NextEvent(t *testing.T) queue.LedgerEventMessage {
	t.Helper()

	select {
	case d := <-tm.Events:
		var msg queue.LedgerEventMessage
		require.NoError(t, json.Unmarshal(d.Body, &msg))
		return msg
	case <-time.After(eventuallyWaitTimeOut):
		t.Fatal("timed out waiting for ledger event")
		return queue.LedgerEventMessage{}
	}
}
