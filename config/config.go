package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	CacheBackend  string // "memory" or "redis"
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	MarketDataTTL time.Duration
	FXTTL         time.Duration

	RateLimitCapacity int
	RateLimitWindow   time.Duration

	FXSourceURL    string
	FXFallbackRate decimal.Decimal
	HTTPTimeout    time.Duration

	DefaultPeriod   string
	DefaultInterval string

	WarmTickers  []string
	WarmInterval time.Duration // 0 disables the cache warmer
}

// Load reads an optional .env file and then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		CacheBackend:  getEnv("CACHE_BACKEND", "memory"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		MarketDataTTL: getEnvDuration("CACHE_TTL", 15*time.Minute),
		FXTTL:         getEnvDuration("FX_CACHE_TTL", time.Hour),

		RateLimitCapacity: getEnvInt("RATE_LIMIT_CAPACITY", 30),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),

		FXSourceURL:    getEnv("FX_SOURCE_URL", "https://www.x-rates.com/calculator/?from=USD&to=BRL&amount=1"),
		FXFallbackRate: getEnvDecimal("FX_FALLBACK_RATE", decimal.RequireFromString("5.40")),
		HTTPTimeout:    getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		DefaultPeriod:   getEnv("DEFAULT_PERIOD", "1y"),
		DefaultInterval: getEnv("DEFAULT_INTERVAL", "1d"),

		WarmTickers:  getEnvList("WARM_TICKERS", "PETR4.SA,VALE3.SA"),
		WarmInterval: getEnvDuration("WARM_INTERVAL", 10*time.Minute),
	}
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvList splits a comma-separated value. "none" gives an empty list.
func getEnvList(key, defaultValue string) []string {
	value := getEnv(key, defaultValue)
	if strings.EqualFold(value, "none") {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		slog.Warn("ignoring invalid integer setting", "key", key, "value", value)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		slog.Warn("ignoring invalid duration setting", "key", key, "value", value)
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
		slog.Warn("ignoring invalid decimal setting", "key", key, "value", value)
	}
	return defaultValue
}
