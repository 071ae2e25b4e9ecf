package container

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fluidstake/liquid-staking-pool/internal/config"
	"github.com/fluidstake/liquid-staking-pool/testutil"
)

const (
	mongoUsername = "user"
	mongoPassword = "password"
	rabbitUser    = "user"
	rabbitPass    = "password"
)

// Manager starts the docker dependencies of the e2e tests and removes them
// when the test ends.
type Manager struct {
	cfg  ImageConfig
	pool *dockertest.Pool
}

func NewManager(t *testing.T) *Manager {
	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	pool.MaxWait = 2 * time.Minute

	return &Manager{cfg: NewImageConfig(), pool: pool}
}

func (m *Manager) run(t *testing.T, name string, opts *dockertest.RunOptions) *dockertest.Resource {
	opts.Name = testutil.UniqueName(name+"-e2e-", 6)

	resource, err := m.pool.RunWithOptions(opts, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, m.pool.Purge(resource))
	})
	return resource
}

// StartMongo runs MongoDB and waits until it accepts connections.
func (m *Manager) StartMongo(t *testing.T) config.DbConfig {
	resource := m.run(t, "mongo", &dockertest.RunOptions{
		Repository: m.cfg.MongoRepository,
		Tag:        m.cfg.MongoVersion,
		Env: []string{
			"MONGO_INITDB_ROOT_USERNAME=" + mongoUsername,
			"MONGO_INITDB_ROOT_PASSWORD=" + mongoPassword,
		},
	})

	cfg := config.DbConfig{
		Username:      mongoUsername,
		Password:      mongoPassword,
		DbName:        "e2e-database",
		Address:       fmt.Sprintf("mongodb://localhost:%s/", resource.GetPort("27017/tcp")),
		MaxRetryTimes: 3,
		RetryInterval: time.Second,
	}

	require.NoError(t, m.pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		credential := options.Credential{Username: cfg.Username, Password: cfg.Password}
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Address).SetAuth(credential))
		if err != nil {
			return err
		}
		defer client.Disconnect(ctx) //nolint:errcheck
		return client.Ping(ctx, nil)
	}))
	return cfg
}

// StartRabbit runs RabbitMQ and waits until it accepts connections.
func (m *Manager) StartRabbit(t *testing.T, exchange string) config.QueueConfig {
	resource := m.run(t, "rabbit", &dockertest.RunOptions{
		Repository: m.cfg.RabbitRepository,
		Tag:        m.cfg.RabbitVersion,
		Env: []string{
			"RABBITMQ_DEFAULT_USER=" + rabbitUser,
			"RABBITMQ_DEFAULT_PASS=" + rabbitPass,
		},
	})

	cfg := config.QueueConfig{
		Enabled:      true,
		User:         rabbitUser,
		Password:     rabbitPass,
		Url:          fmt.Sprintf("localhost:%s", resource.GetPort("5672/tcp")),
		ExchangeName: exchange,
	}

	require.NoError(t, m.pool.Retry(func() error {
		conn, err := amqp.Dial(AmqpURL(cfg))
		if err != nil {
			return err
		}
		return conn.Close()
	}))
	return cfg
}

func AmqpURL(cfg config.QueueConfig) string {
	return fmt.Sprintf("amqp://%s:%s@%s", cfg.User, cfg.Password, cfg.Url)
}
