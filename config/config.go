// Package config provides configuration management for the foodsync service
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration. PrivateKey, Contract and
// Alchemy are optional as a set: when any of them is missing the service
// runs in fallback mode and records price updates locally only.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Port     string `envconfig:"PORT" default:"8080"`

	Alchemy    string `envconfig:"ALCHEMY"`    // Ethereum RPC URL
	Contract   string `envconfig:"CONTRACT"`   // FoodOracle contract address
	PrivateKey string `envconfig:"PRIVATEKEY"` // Signer key, hex without 0x prefix

	GeckoURL   string `envconfig:"GECKO_URL" default:"https://api.coingecko.com/api/v3/simple/price"`
	GeckoAsset string `envconfig:"GECKO_ASSET" default:"ethereum"`
	DiaURL     string `envconfig:"DIA_URL" default:"https://api.diadata.org/v1/quotation/ETH"`

	IndexerURL string `envconfig:"INDEXER_URL" required:"true"` // Subgraph endpoint

	PostgresDSN string `envconfig:"POSTGRES_DSN"` // Empty selects the in-memory store

	PageSize     int           `envconfig:"PAGE_SIZE" default:"100"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"5m"`
	SyncInterval time.Duration `envconfig:"SYNC_INTERVAL" default:"2m"`
}

// Option is a function that modifies Config
type Option func(*Config) error

// WithEnvFile loads configuration from a .env file
func WithEnvFile(path string) Option {
	return func(c *Config) error {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
		return nil
	}
}

// WithPageSize overrides the indexer page size
func WithPageSize(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("page size must be positive")
		}
		c.PageSize = n
		return nil
	}
}

// ChainWriteMode reports whether the chain write path is fully
// configured. The mode is fixed for the process lifetime.
func (c *Config) ChainWriteMode() bool {
	return c.Alchemy != "" && c.Contract != "" && c.PrivateKey != ""
}

// validate performs validation on the config values
func (c *Config) validate() error {
	for name, urlStr := range map[string]string{
		"indexer":   c.IndexerURL,
		"CoinGecko": c.GeckoURL,
		"DIA":       c.DiaURL,
	} {
		if urlStr == "" {
			return fmt.Errorf("%s URL is required", name)
		}
		if _, err := url.ParseRequestURI(urlStr); err != nil {
			return fmt.Errorf("invalid %s URL: %s", name, urlStr)
		}
	}

	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive")
	}

	// Chain settings are only checked when the write path is in use.
	if !c.ChainWriteMode() {
		return nil
	}

	if _, err := url.ParseRequestURI(c.Alchemy); err != nil {
		return fmt.Errorf("invalid Alchemy URL: %s", c.Alchemy)
	}

	if !common.IsHexAddress(c.Contract) {
		return fmt.Errorf("invalid contract address: %s", c.Contract)
	}

	if len(c.PrivateKey) != 64 || !isHex(c.PrivateKey) {
		return fmt.Errorf("invalid private key format")
	}

	return nil
}

// isHex checks if a string is valid hexadecimal
func isHex(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// NewConfig creates a new validated Config instance
func NewConfig(opts ...Option) (*Config, error) {
	var cfg Config

	// Env-file options must run before envconfig reads the environment.
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("option application failed: %w", err)
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	// Re-apply options so explicit values take precedence over env.
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("option application failed: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
