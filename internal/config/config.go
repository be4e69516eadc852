// Package config loads runtime settings from defaults, an optional catalog.yaml,
// a .env file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Log      LogConfig      `mapstructure:"log"`
	Remote   RemoteConfig   `mapstructure:"remote"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Store    StoreConfig    `mapstructure:"store"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Limit    LimitConfig    `mapstructure:"ratelimit"`
	Sync     SyncConfig     `mapstructure:"sync"`
}

type AppConfig struct {
	Addr           string        `mapstructure:"addr"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type LogConfig struct {
	Format string `mapstructure:"format"`
	Level  string `mapstructure:"level"`
}

type RemoteConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CatalogConfig struct {
	ExchangeRate     float64 `mapstructure:"exchange_rate"`
	CapitalizeTitles bool    `mapstructure:"capitalize_titles"`
	Translate        bool    `mapstructure:"translate"`
}

// Store backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type StoreConfig struct {
	Backend   string `mapstructure:"backend"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type KafkaConfig struct {
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
	Buffer  int    `mapstructure:"buffer"`
}

// BrokerList splits the comma separated broker list. It is empty when Kafka is disabled.
func (k KafkaConfig) BrokerList() []string {
	var out []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

type LimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type SyncConfig struct {
	Buffer  int           `mapstructure:"buffer"`
	Timeout time.Duration `mapstructure:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.addr", ":8080")
	v.SetDefault("app.read_timeout", 15*time.Second)
	v.SetDefault("app.write_timeout", 15*time.Second)
	v.SetDefault("app.request_timeout", 30*time.Second)
	v.SetDefault("log.format", "text")
	v.SetDefault("log.level", "info")
	v.SetDefault("remote.base_url", "https://fakestoreapi.com")
	v.SetDefault("remote.timeout", 10*time.Second)
	v.SetDefault("catalog.exchange_rate", 5.5)
	v.SetDefault("catalog.capitalize_titles", false)
	v.SetDefault("catalog.translate", true)
	v.SetDefault("store.backend", BackendMemory)
	v.SetDefault("store.key_prefix", "catalog:")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("database.url", "")
	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic", "catalog.events")
	v.SetDefault("kafka.buffer", 256)
	v.SetDefault("ratelimit.rps", 5)
	v.SetDefault("ratelimit.burst", 10)
	v.SetDefault("sync.buffer", 64)
	v.SetDefault("sync.timeout", 5*time.Second)
}

// Load reads the configuration. envFiles are passed to godotenv; a missing .env is not an error.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("catalog")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/catalog-manager")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendRedis:
	case BackendPostgres:
		if c.Database.URL == "" {
			return errors.New("database.url is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown store.backend %q", c.Store.Backend)
	}
	if c.Catalog.ExchangeRate <= 0 {
		return errors.New("catalog.exchange_rate must be positive")
	}
	if c.Remote.BaseURL == "" {
		return errors.New("remote.base_url is required")
	}
	return nil
}
