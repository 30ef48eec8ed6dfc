package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "Cash", cfg.POS.PaymentMethod)
	assert.Equal(t, "Asia/Kolkata", cfg.POS.Timezone)
	assert.Equal(t, 20, cfg.POS.LowStockThreshold)
	assert.True(t, cfg.POS.SeedDefaultMenu)
	assert.Equal(t, 5, cfg.Kafka.BreakerFailures)
	assert.Equal(t, 30*time.Second, cfg.Kafka.BreakerCooldown)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFile_YAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := []byte(`
environment: production
server:
  port: 9000
store:
  backend: redis
  key_prefix: "shop1:"
redis:
  addr: redis:6379
`)
	require.NoError(t, os.WriteFile(path, yaml, 0o600))

	t.Setenv("POS_SERVER_PORT", "9100")
	t.Setenv("POS_KAFKA_ENABLED", "true")
	t.Setenv("POS_KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "shop1:", cfg.Store.KeyPrefix)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoadFile_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("POS_STORE_BACKEND", "sqlite")

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}
