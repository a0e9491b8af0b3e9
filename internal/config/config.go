package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"
)

const (
	BackendBolt     = "bolt"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Backend     string `mapstructure:"backend"`
	StorageKey  string `mapstructure:"storage_key"`
	BoltPath    string `mapstructure:"bolt_path"`
	Currency    string `mapstructure:"currency"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
	RedisAddr   string `mapstructure:"redis_addr"`
	LogLevel    string `mapstructure:"log_level"`
}

// Load reads the optional config file at path, then applies CART_* env overrides.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("backend", BackendBolt)
	v.SetDefault("storage_key", "@goMarketplace/cartProducts")
	v.SetDefault("bolt_path", "cart.db")
	v.SetDefault("currency", "USD")
	v.SetDefault("postgres_dsn", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("cart")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("v.ReadInConfig: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("v.Unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("cfg.Validate: %w", err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendBolt:
		if c.BoltPath == "" {
			return fmt.Errorf("bolt_path is empty")
		}
	case BackendMemory:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis_addr is empty")
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres_dsn is empty")
		}
	default:
		return fmt.Errorf("backend[%s] is not supported", c.Backend)
	}

	if c.StorageKey == "" {
		return fmt.Errorf("storage_key is empty")
	}

	if _, err := c.CurrencyUnit(); err != nil {
		return err
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

func (c Config) CurrencyUnit() (currency.Unit, error) {
	unit, err := currency.ParseISO(c.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", c.Currency, err)
	}

	return unit, nil
}

func (c Config) Level() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("log_level[%s] is not valid: %w", c.LogLevel, err)
	}

	return level, nil
}
