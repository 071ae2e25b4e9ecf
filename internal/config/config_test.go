package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cosmos/cosmos-sdk/types/bech32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Db: DbConfig{
			Username: "test",
			Password: "test",
			Address:  "mongodb://localhost:27017",
			DbName:   "test",
		},
		Pool: PoolConfig{
			PoolID:         "pool-1",
			Authority:      "authority",
			CustodyAccount: "custody",
			StakingAccount: "staking",
		},
		Queue: QueueConfig{
			Enabled:  true,
			User:     "test",
			Password: "test",
			Url:      "localhost:5672",
		},
		Metrics: MetricsConfig{
			Host: "0.0.0.0",
			Port: 2112,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("defaults are applied", func(t *testing.T) {
		cfg := validConfig()
		require.NoError(t, cfg.Validate())

		assert.Equal(t, uint(3), cfg.Db.MaxRetryTimes)
		assert.Equal(t, time.Second, cfg.Db.RetryInterval)
		assert.Equal(t, 24*time.Hour, cfg.Pool.EpochLength)
		assert.Equal(t, 8090, cfg.Server.Port)
		assert.Equal(t, "liquid_staking_ledger_events", cfg.Queue.ExchangeName)
		assert.Equal(t, defaultStatsPollingInterval, cfg.Poller.StatsPollingInterval)
	})
	t.Run("disabled queue needs no credentials", func(t *testing.T) {
		cfg := validConfig()
		cfg.Queue = QueueConfig{}
		require.NoError(t, cfg.Validate())
	})
	t.Run("missing db address", func(t *testing.T) {
		cfg := validConfig()
		cfg.Db.Address = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db: missing db address")
	})
	t.Run("bad db scheme", func(t *testing.T) {
		cfg := validConfig()
		cfg.Db.Address = "postgres://localhost:5432"
		require.Error(t, cfg.Validate())
	})
	t.Run("same custody and staking account", func(t *testing.T) {
		cfg := validConfig()
		cfg.Pool.StakingAccount = cfg.Pool.CustodyAccount
		require.Error(t, cfg.Validate())
	})
	t.Run("bad genesis time", func(t *testing.T) {
		cfg := validConfig()
		cfg.Pool.GenesisTime = "yesterday"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "genesis-time")
	})
	t.Run("address prefix", func(t *testing.T) {
		encode := func(b byte) string {
			raw := make([]byte, 20)
			raw[0] = b
			addr, err := bech32.ConvertAndEncode("lsp", raw)
			require.NoError(t, err)
			return addr
		}

		cfg := validConfig()
		cfg.Pool.AddressPrefix = "lsp"
		require.Error(t, cfg.Validate())

		cfg.Pool.Authority = encode(1)
		cfg.Pool.CustodyAccount = encode(2)
		cfg.Pool.StakingAccount = encode(3)
		require.NoError(t, cfg.Validate())
	})
	t.Run("bad metrics host", func(t *testing.T) {
		cfg := validConfig()
		cfg.Metrics.Host = "not-an-ip"
		require.Error(t, cfg.Validate())
	})
}

func TestNew(t *testing.T) {
	const content = `
db:
  username: root
  password: example
  db-name: liquid-staking
  address: "mongodb://localhost:27017/"
pool:
  pool-id: pool-1
  authority: authority
  custody-account: custody
  staking-account: staking
  epoch-length: 1h
  genesis-time: "2026-01-01T00:00:00Z"
server:
  host: 127.0.0.1
  port: 8090
queue:
  enabled: false
poller:
  stats-polling-interval: 30s
metrics:
  host: 0.0.0.0
  port: 2112
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("DB_ADDRESS", "mongodb://mongo:27017/")
	t.Setenv("POOL_CUSTODY_ACCOUNT", "env-custody")

	cfg, err := New(path)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://mongo:27017/", cfg.Db.Address)
	assert.Equal(t, "env-custody", cfg.Pool.CustodyAccount)
	assert.Equal(t, time.Hour, cfg.Pool.EpochLength)
	assert.Equal(t, 30*time.Second, cfg.Poller.StatsPollingInterval)

	genesis, err := cfg.Pool.Genesis()
	require.NoError(t, err)
	assert.Equal(t, 2026, genesis.Year())

	_, err = New(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestNew_LocalSample(t *testing.T) {
	cfg, err := New(filepath.Join("..", "..", "config", "config-local.yml"))
	require.NoError(t, err)

	assert.Equal(t, "local-pool", cfg.Pool.PoolID)
	assert.True(t, cfg.Server.DevMode)
	assert.False(t, cfg.Queue.Enabled)
	assert.Equal(t, time.Minute, cfg.Poller.StatsPollingInterval)

	genesis, err := cfg.Pool.Genesis()
	require.NoError(t, err)
	assert.Equal(t, 2025, genesis.Year())
}
