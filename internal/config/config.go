package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	// Storage
	DataFile string `env:"CAMPAIGNS_DATA_FILE" envDefault:"data/campaigns.json"`

	// Redis is optional; without it idempotency keys, rate limits and
	// events stay in process.
	RedisURL string `env:"REDIS_URL"`

	// API
	IdempotencyTTL     time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"100"`
	BodyLimitBytes     int           `env:"BODY_LIMIT_BYTES" envDefault:"1048576"`
	CORSAllowOrigins   string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`

	// Contract call settings handed to the web client
	ContractAddress string `env:"CAMPAIGN_CONTRACT_ADDRESS" envDefault:"0x5B1B4c1fBa9bF1cBcB410CCe24a7fc059E925836"`
	NFTLocation     string `env:"CAMPAIGN_NFT_LOCATION" envDefault:"Palace of Fine Arts"`
	ChainID         int64  `env:"CAMPAIGN_CHAIN_ID" envDefault:"80002"` // Polygon Amoy

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Server
	APIPort string `env:"API_PORT" envDefault:"3000"`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c *Config) RedisEnabled() bool {
	return c.RedisURL != ""
}

func (c *Config) Validate(log *zap.Logger) {
	if !c.RedisEnabled() {
		log.Info("REDIS_URL is not set, using in-process idempotency, rate limiting and events")
	}
	if c.CORSAllowOrigins == "*" {
		log.Warn("CORS_ALLOW_ORIGINS is *, restrict it in production")
	}
	if c.RateLimitPerMinute <= 0 {
		log.Warn("RATE_LIMIT_PER_MINUTE is not positive, rate limiting disabled")
	}
	if c.ChainID == 0 {
		log.Warn("CAMPAIGN_CHAIN_ID is not set")
	}
}

// NewLogger builds the production zap logger at LOG_LEVEL.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
