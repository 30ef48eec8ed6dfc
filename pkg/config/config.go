package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store backends
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Environment string `mapstructure:"environment"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Server struct {
		Port               int           `mapstructure:"port"`
		CorsAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
		RequestTimeout     time.Duration `mapstructure:"request_timeout"`
	} `mapstructure:"server"`

	Store struct {
		Backend    string `mapstructure:"backend"`
		KeyPrefix  string `mapstructure:"key_prefix"`
		MaxRetries int    `mapstructure:"max_retries"`
	} `mapstructure:"store"`

	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		SSLMode  string `mapstructure:"sslmode"`
	} `mapstructure:"database"`

	Kafka struct {
		Enabled         bool          `mapstructure:"enabled"`
		Brokers         []string      `mapstructure:"brokers"`
		ConsumerGroup   string        `mapstructure:"consumer_group"`
		BreakerFailures int           `mapstructure:"breaker_failures"`
		BreakerCooldown time.Duration `mapstructure:"breaker_cooldown"`
	} `mapstructure:"kafka"`

	Tracing struct {
		Enabled        bool    `mapstructure:"enabled"`
		JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
		SampleRatio    float64 `mapstructure:"sample_ratio"`
	} `mapstructure:"tracing"`

	POS struct {
		ServiceName       string `mapstructure:"service_name"`
		ShopName          string `mapstructure:"shop_name"`
		Timezone          string `mapstructure:"timezone"`
		PaymentMethod     string `mapstructure:"payment_method"`
		SeedDefaultMenu   bool   `mapstructure:"seed_default_menu"`
		LowStockThreshold int    `mapstructure:"low_stock_threshold"`
	} `mapstructure:"pos"`
}

// IsDevelopment reports whether console logging should be used
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads configs/config.yaml when present and applies POS_* environment overrides.
func Load() (*Config, error) {
	return LoadFile("configs/config.yaml")
}

// LoadFile is Load with an explicit config file path. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	v.SetEnvPrefix("POS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late at startup
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendRedis, BackendPostgres:
	default:
		return fmt.Errorf("unsupported store backend %q", c.Store.Backend)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka enabled but no brokers configured")
	}
	if c.POS.LowStockThreshold < 0 {
		return fmt.Errorf("low stock threshold cannot be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("log.level", "info")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.request_timeout", 30*time.Second)

	v.SetDefault("store.backend", BackendMemory)
	v.SetDefault("store.key_prefix", "pos:")
	v.SetDefault("store.max_retries", 5)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "posdb")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.consumer_group", "pos-event-audit")
	v.SetDefault("kafka.breaker_failures", 5)
	v.SetDefault("kafka.breaker_cooldown", 30*time.Second)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.jaeger_endpoint", "http://localhost:14268/api/traces")
	v.SetDefault("tracing.sample_ratio", 1.0)

	v.SetDefault("pos.service_name", "pos-service")
	v.SetDefault("pos.shop_name", "Tiffin Center")
	v.SetDefault("pos.timezone", "Asia/Kolkata")
	v.SetDefault("pos.payment_method", "Cash")
	v.SetDefault("pos.seed_default_menu", true)
	v.SetDefault("pos.low_stock_threshold", 20)
}
