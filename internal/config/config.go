package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server     ServerConfig           `yaml:"server"`
	Blockscout BlockscoutConfig       `yaml:"blockscout"`
	Explorer   ExplorerConfig         `yaml:"explorer"`
	Merkl      MerklConfig            `yaml:"merkl"`
	Midas      MidasConfig            `yaml:"midas"`
	Footprint  FootprintConfig        `yaml:"footprint"`
	Icarus     IcarusConfig           `yaml:"icarus"`
	Tropykus   TropykusConfig         `yaml:"tropykus"`
	Portfolio  PortfolioServiceConfig `yaml:"portfolioService"`
	Cache      CacheConfig            `yaml:"cache"`
	Logging    LoggingConfig          `yaml:"logging"`
}

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// BlockscoutConfig holds the configuration for the Rootstock Blockscout client.
type BlockscoutConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	WRBTCAddress         string `yaml:"wrbtcAddress"`
}

// ExplorerConfig holds the configuration for the Rootstock explorer v3 client.
type ExplorerConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// MerklConfig holds the configuration for the Merkl client.
type MerklConfig struct {
	BaseURL              string `yaml:"baseURL"`
	ChainID              string `yaml:"chainID"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// MidasConfig holds the configuration for the Midas client. Tokens maps
// yield token addresses to their Midas APY symbol.
type MidasConfig struct {
	BaseURL              string            `yaml:"baseURL"`
	RequestTimeoutMillis int64             `yaml:"requestTimeoutMillis"`
	Tokens               map[string]string `yaml:"tokens"`
}

// FootprintConfig holds the configuration for the Footprint Analytics client.
type FootprintConfig struct {
	BaseURL              string `yaml:"baseURL"`
	ApiKey               string `yaml:"apiKey"`
	CardID               string `yaml:"cardID"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// IcarusConfig holds the configuration for the Icarus Tools client.
type IcarusConfig struct {
	Endpoint             string `yaml:"endpoint"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// TropykusConfig holds the configuration for the Tropykus markets client.
type TropykusConfig struct {
	Enabled              bool   `yaml:"enabled"`
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// PortfolioServiceConfig holds configuration for the portfolio orchestrator.
type PortfolioServiceConfig struct {
	MaxConcurrentRequests int     `yaml:"maxConcurrentRequests"`
	RateLimitPerSecond    float64 `yaml:"rateLimitPerSecond"`
	LimiterBurst          int     `yaml:"limiterBurst"`
	SnapshotTTLMinutes    int     `yaml:"snapshotTTLMinutes"`
}

// CacheConfig holds configuration for caching.
type CacheConfig struct {
	DefaultExpirationMinutes int `yaml:"defaultExpirationMinutes"`
	CleanupIntervalMinutes   int `yaml:"cleanupIntervalMinutes"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
	File  string `yaml:"file"`
}

// LoadConfig loads configuration from a YAML file and applies defaults for
// everything left unset. The Footprint API key may also come from the
// FOOTPRINT_API_KEY environment variable, which wins over the file.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if key := os.Getenv("FOOTPRINT_API_KEY"); key != "" {
		cfg.Footprint.ApiKey = key
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8001"
		logrus.Infof("Server.Port not set, defaulting to %s", cfg.Server.Port)
	}

	if cfg.Blockscout.BaseURL == "" {
		cfg.Blockscout.BaseURL = "https://rootstock.blockscout.com/api/v2"
		logrus.Infof("Blockscout.BaseURL not set, defaulting to %s", cfg.Blockscout.BaseURL)
	}
	if cfg.Blockscout.RequestTimeoutMillis == 0 {
		cfg.Blockscout.RequestTimeoutMillis = 10000
	}
	if cfg.Blockscout.WRBTCAddress == "" {
		cfg.Blockscout.WRBTCAddress = "0x542fda317318ebf1d3deaf76e0b632741a7e677d"
	}

	if cfg.Explorer.BaseURL == "" {
		cfg.Explorer.BaseURL = "https://be.explorer.rootstock.io/api/v3"
		logrus.Infof("Explorer.BaseURL not set, defaulting to %s", cfg.Explorer.BaseURL)
	}
	if cfg.Explorer.RequestTimeoutMillis == 0 {
		cfg.Explorer.RequestTimeoutMillis = 10000
	}

	if cfg.Merkl.BaseURL == "" {
		cfg.Merkl.BaseURL = "https://api.merkl.xyz/v4"
		logrus.Infof("Merkl.BaseURL not set, defaulting to %s", cfg.Merkl.BaseURL)
	}
	if cfg.Merkl.ChainID == "" {
		cfg.Merkl.ChainID = "30" // Rootstock
	}
	if cfg.Merkl.RequestTimeoutMillis == 0 {
		cfg.Merkl.RequestTimeoutMillis = 10000
	}

	if cfg.Midas.BaseURL == "" {
		cfg.Midas.BaseURL = "https://api-prod.midas.app/api/data"
		logrus.Infof("Midas.BaseURL not set, defaulting to %s", cfg.Midas.BaseURL)
	}
	if cfg.Midas.RequestTimeoutMillis == 0 {
		cfg.Midas.RequestTimeoutMillis = 10000
	}

	if cfg.Footprint.BaseURL == "" {
		cfg.Footprint.BaseURL = "https://www.footprint.network/api/v1/dataApi/card"
	}
	if cfg.Footprint.CardID == "" {
		cfg.Footprint.CardID = "52841" // LayerBank reserves card
	}
	if cfg.Footprint.RequestTimeoutMillis == 0 {
		cfg.Footprint.RequestTimeoutMillis = 10000
	}

	if cfg.Icarus.Endpoint == "" {
		cfg.Icarus.Endpoint = "https://omni.icarus.tools/rootstock/cush/analyticsPosition"
	}
	if cfg.Icarus.RequestTimeoutMillis == 0 {
		cfg.Icarus.RequestTimeoutMillis = 10000
	}

	if cfg.Tropykus.RequestTimeoutMillis == 0 {
		cfg.Tropykus.RequestTimeoutMillis = 10000
	}

	if cfg.Portfolio.MaxConcurrentRequests == 0 {
		cfg.Portfolio.MaxConcurrentRequests = 5
		logrus.Infof("Portfolio.MaxConcurrentRequests not set, defaulting to %d", cfg.Portfolio.MaxConcurrentRequests)
	}
	if cfg.Portfolio.RateLimitPerSecond == 0 {
		cfg.Portfolio.RateLimitPerSecond = 10
	}
	if cfg.Portfolio.LimiterBurst == 0 {
		cfg.Portfolio.LimiterBurst = 5
	}
	if cfg.Portfolio.SnapshotTTLMinutes == 0 {
		cfg.Portfolio.SnapshotTTLMinutes = 2
	}

	if cfg.Cache.DefaultExpirationMinutes == 0 {
		cfg.Cache.DefaultExpirationMinutes = 5
	}
	if cfg.Cache.CleanupIntervalMinutes == 0 {
		cfg.Cache.CleanupIntervalMinutes = 10
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
