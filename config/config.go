package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"treasury-ledger/pkg/crypto"
	"treasury-ledger/pkg/types"

	"github.com/spf13/viper"
)

// DefaultProgramSeed is hashed into the program ID when ledger.program_id is unset.
const DefaultProgramSeed = "treasury-ledger/v1"

// Storage backends selectable through ledger.storage.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Security SecurityConfig `mapstructure:"security"`
	Journal  JournalConfig  `mapstructure:"journal"`
	Webhook  WebhookConfig  `mapstructure:"webhook"`
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
	LockTimeout     time.Duration `mapstructure:"lock_timeout"` // 0 = wait forever
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
	// EphemeralSecret is set when Secret was generated at load time.
	EphemeralSecret bool `mapstructure:"-"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

type LedgerConfig struct {
	ProgramID     string `mapstructure:"program_id"` // 32-byte hex; empty = derived from DefaultProgramSeed
	Storage       string `mapstructure:"storage"`    // postgres, memory
	FaucetEnabled bool   `mapstructure:"faucet_enabled"`
}

// ProgramAddress returns the program ID that scopes every derived address.
func (l LedgerConfig) ProgramAddress() (types.Address, error) {
	if l.ProgramID == "" {
		return types.Address(crypto.Hash([]byte(DefaultProgramSeed))), nil
	}
	addr, err := types.ParseAddress(l.ProgramID)
	if err != nil {
		return types.Address{}, fmt.Errorf("parsing ledger.program_id: %w", err)
	}
	return addr, nil
}

type SecurityConfig struct {
	TimestampDrift time.Duration `mapstructure:"timestamp_drift"`
	NonceTTL       time.Duration `mapstructure:"nonce_ttl"`
}

type JournalConfig struct {
	Path string `mapstructure:"path"` // empty = journal disabled
}

type WebhookConfig struct {
	URL             string        `mapstructure:"url"` // empty = webhooks disabled
	Secret          string        `mapstructure:"secret"`
	Timeout         time.Duration `mapstructure:"timeout"`
	BreakerFailures uint32        `mapstructure:"breaker_failures"`
	BreakerTimeout  time.Duration `mapstructure:"breaker_timeout"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: TLG_ (Treasury LedGer).
// Nested keys use underscore: TLG_DATABASE_HOST, TLG_LEDGER_STORAGE, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "treasury_ledger")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.lock_timeout", "5s")
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "treasury-ledger")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("ledger.program_id", "")
	v.SetDefault("ledger.storage", StoragePostgres)
	v.SetDefault("ledger.faucet_enabled", false)
	v.SetDefault("security.timestamp_drift", "60s")
	v.SetDefault("security.nonce_ttl", "120s")
	v.SetDefault("journal.path", "")
	v.SetDefault("webhook.url", "")
	v.SetDefault("webhook.secret", "")
	v.SetDefault("webhook.timeout", "10s")
	v.SetDefault("webhook.breaker_failures", 5)
	v.SetDefault("webhook.breaker_timeout", "30s")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// TLG_LEDGER_STORAGE -> ledger.storage
	v.SetEnvPrefix("TLG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; env vars can suffice.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.JWT.Secret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("generating jwt secret: %w", err)
		}
		cfg.JWT.Secret = secret
		cfg.JWT.EphemeralSecret = true
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Ledger.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("unsupported ledger.storage %q", c.Ledger.Storage)
	}
	if _, err := c.Ledger.ProgramAddress(); err != nil {
		return err
	}
	return nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
