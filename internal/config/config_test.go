package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

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
		Ledger: LedgerConfig{
			Administrator: "admin-address",
			Name:          "ETH & ERC20 Payments",
		},
		Transfer: TransferConfig{
			URL: "http://localhost:8090",
		},
		Queue: &QueueConfig{
			QueueUser:     "test",
			QueuePassword: "test",
			Url:           "localhost:5672",
		},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			WriteTimeout: 60 * time.Second,
			ReadTimeout:  60 * time.Second,
			IdleTimeout:  60 * time.Second,
			JWTSecret:    "0123456789abcdef0123456789abcdef",
			JWTIssuer:    "payment-service",
		},
		Poller: PollerConfig{
			StatsPollingInterval: time.Minute,
		},
		Metrics: MetricsConfig{
			Host: "0.0.0.0",
			Port: 2112,
		},
	}
}

func TestConfig_OptionalQueue(t *testing.T) {
	cfg := validConfig()

	err := cfg.Validate()
	require.NoError(t, err)
	assert.NotNil(t, cfg.Queue)
	assert.Equal(t, defaultQueueExchange, cfg.Queue.Exchange)

	cfg.Queue = nil
	err = cfg.Validate()
	require.NoError(t, err)
	assert.Nil(t, cfg.Queue)
}

func TestConfig_Defaults(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, uint(defaultDbMaxRetryTimes), cfg.Db.MaxRetryTimes)
	assert.Equal(t, defaultTransferTimeout, cfg.Transfer.Timeout)
	assert.Equal(t, uint(defaultTransferMaxRetryTimes), cfg.Transfer.MaxRetryTimes)
	assert.Equal(t, defaultDeploymentRecordPath, cfg.Ledger.DeploymentRecordPath)
	assert.Equal(t, float64(defaultRateLimitRPS), cfg.Server.RateLimitRPS)
	assert.Equal(t, int64(defaultMaxEventsLimit), cfg.Server.MaxEventsLimit)
}

func TestConfig_Invalid(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(cfg *Config)
		errMsg string
	}{
		{"missing administrator", func(cfg *Config) { cfg.Ledger.Administrator = "  " }, "administrator is required"},
		{"invalid administrator", func(cfg *Config) { cfg.Ledger.Administrator = "a.b" }, "invalid address"},
		{"missing db address", func(cfg *Config) { cfg.Db.Address = "" }, "address is required"},
		{"invalid transfer url", func(cfg *Config) { cfg.Transfer.URL = "not a url" }, "url is invalid"},
		{"short jwt secret", func(cfg *Config) { cfg.Server.JWTSecret = "short" }, "jwt-secret"},
		{"queue without user", func(cfg *Config) { cfg.Queue.QueueUser = "" }, "missing queue user"},
		{"invalid metrics host", func(cfg *Config) { cfg.Metrics.Host = "localhost:1" }, "invalid metrics server host"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestNew(t *testing.T) {
	const content = `
db:
  username: user
  password: password
  db-name: payment
  address: mongodb://localhost:27017
ledger:
  administrator: admin-address
transfer:
  url: http://localhost:8090
  timeout: 3s
server:
  host: 0.0.0.0
  port: 8080
  write-timeout: 30s
  read-timeout: 30s
  idle-timeout: 2m
  jwt-secret: 0123456789abcdef0123456789abcdef
  jwt-issuer: payment-service
poller:
  stats-polling-interval: 1m
metrics:
  host: 0.0.0.0
  port: 2112
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("PAYMENT_DB_PASSWORD", "from-env")

	cfg, err := New(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Db.Password)
	assert.Equal(t, "payment", cfg.Db.DbName)
	assert.Equal(t, "admin-address", cfg.Ledger.Administrator)
	assert.Equal(t, 3*time.Second, cfg.Transfer.Timeout)
	assert.Equal(t, 2*time.Minute, cfg.Server.IdleTimeout)
	assert.Equal(t, time.Minute, cfg.Poller.StatsPollingInterval)
	assert.Nil(t, cfg.Queue)

	t.Run("missing file", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "missing.yml"))
		require.Error(t, err)
	})
}
