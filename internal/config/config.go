package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all runtime settings, loaded from the environment.
type Config struct {
	Port      string
	LogLevel  string
	JWTSecret string

	// RedisAddr enables publishing auction events to Redis Pub/Sub when set.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SeedDemo bool

	Auction AuctionDefaults
}

// AuctionDefaults are the rule values used when a queue item does not
// override them.
type AuctionDefaults struct {
	MinIncrement    decimal.Decimal
	Duration        time.Duration
	AntiSnipeWindow time.Duration
	ExtensionStep   time.Duration
	MaxExtensions   int
}

// Load reads configuration from the environment, with a .env file as fallback.
func Load() *Config {
	// Missing .env is fine in production; env vars win either way.
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-do-not-use"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		SeedDemo:      getEnv("SEED_DEMO", "") == "1",
		Auction: AuctionDefaults{
			MinIncrement:    getEnvDecimal("MIN_INCREMENT", "1"),
			Duration:        getEnvDuration("AUCTION_DURATION", 60*time.Second),
			AntiSnipeWindow: getEnvDuration("ANTI_SNIPE_WINDOW", 15*time.Second),
			ExtensionStep:   getEnvDuration("EXTENSION_STEP", 15*time.Second),
			MaxExtensions:   getEnvInt("MAX_EXTENSIONS", 10),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvDecimal(key, fallback string) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return decimal.RequireFromString(fallback)
}
