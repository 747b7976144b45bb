package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig             `mapstructure:"server"`
	Database DatabaseConfig           `mapstructure:"database"`
	Redis    RedisConfig              `mapstructure:"redis"`
	Kafka    KafkaConfig              `mapstructure:"kafka"`
	Platform PlatformConfig           `mapstructure:"platform"`
	Channels map[string]ChannelConfig `mapstructure:"channels"`
	Log      LogConfig                `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// KafkaConfig configures the settlement event publisher.
// An empty broker list disables publishing entirely.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// PlatformConfig holds operator-level settings.
type PlatformConfig struct {
	// AccountID identifies the single platform profit account row.
	AccountID string `mapstructure:"account_id"`
	// SandboxMerchantID routes the designated test merchant to channel
	// sandbox secrets instead of production ones.
	SandboxMerchantID string `mapstructure:"sandbox_merchant_id"`
	// PublicBaseURL is where upstream channels reach the webhook endpoints.
	PublicBaseURL string `mapstructure:"public_base_url"`
	// AdminAPIKey guards the back-office payout approval endpoints. Empty
	// disables them entirely.
	AdminAPIKey     string        `mapstructure:"admin_api_key"`
	ForwardTimeout  time.Duration `mapstructure:"forward_timeout"`
	UpstreamTimeout time.Duration `mapstructure:"upstream_timeout"`
	AutoSettlePoll  time.Duration `mapstructure:"auto_settle_poll"`
}

// ChannelConfig holds per-channel settings. Secrets are resolved per
// merchant: the sandbox merchant always gets SandboxSecret.
type ChannelConfig struct {
	Secret        string  `mapstructure:"secret"`
	SandboxSecret string  `mapstructure:"sandbox_secret"`
	PublicKey     string  `mapstructure:"public_key"` // detached-signature channels only
	CreateURL     string  `mapstructure:"create_url"`
	MinAmount     float64 `mapstructure:"min_amount"`
	DefaultRate   float64 `mapstructure:"default_rate"`
	CostRate      float64 `mapstructure:"cost_rate"`
	PayoutRate    float64 `mapstructure:"payout_rate"`
	PayoutFee     float64 `mapstructure:"payout_fee"` // fixed per-payout fee
	// AutoSuccessRate in [0,1]; 0 disables simulated settlement scheduling.
	AutoSuccessRate float64       `mapstructure:"auto_success_rate"`
	AutoSettleDelay time.Duration `mapstructure:"auto_settle_delay"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: SGW_ (Settlement Gateway).
// Nested keys use underscore: SGW_DATABASE_HOST, SGW_PLATFORM_ACCOUNT_ID, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "settlement_gateway")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "settlement.events")
	v.SetDefault("platform.account_id", "")
	v.SetDefault("platform.sandbox_merchant_id", "")
	v.SetDefault("platform.public_base_url", "http://localhost:8080")
	v.SetDefault("platform.admin_api_key", "")
	v.SetDefault("platform.forward_timeout", "15s")
	v.SetDefault("platform.upstream_timeout", "30s")
	v.SetDefault("platform.auto_settle_poll", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: SGW_DATABASE_HOST -> database.host
	v.SetEnvPrefix("SGW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && path != "" {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints that viper cannot express.
func (c *Config) Validate() error {
	for code, ch := range c.Channels {
		if ch.AutoSuccessRate < 0 || ch.AutoSuccessRate > 1 {
			return fmt.Errorf("channel %s: auto_success_rate must be within [0,1]", code)
		}
		if ch.MinAmount < 0 {
			return fmt.Errorf("channel %s: min_amount must not be negative", code)
		}
		if ch.CostRate < 0 {
			return fmt.Errorf("channel %s: cost_rate must not be negative", code)
		}
	}
	return nil
}
