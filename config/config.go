// Package config loads client configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/parsascontentcorner/discordlite/auth"
)

// Config holds all configuration for a client.
type Config struct {
	Discord DiscordConfig
	Cache   CacheConfig
	Gateway GatewayConfig
	Logging LoggingConfig
}

// DiscordConfig holds the bot credentials.
type DiscordConfig struct {
	Token string
}

// CacheConfig bounds the in-memory cache.
type CacheConfig struct {
	// MaxMessages is the per-channel message cache capacity. Zero disables
	// message caching.
	MaxMessages int
}

// GatewayConfig holds gateway connection configuration.
type GatewayConfig struct {
	// ShardCount is the number of shards to identify with. Zero defers to
	// the gateway's recommendation.
	ShardCount uint16
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	maxMessages, err := getEnvInt("CACHE_MAX_MESSAGES", 0)
	if err != nil {
		return nil, err
	}
	shardCount, err := getEnvInt("GATEWAY_SHARD_COUNT", 0)
	if err != nil {
		return nil, err
	}
	if shardCount < 0 || shardCount > int(^uint16(0)) {
		return nil, fmt.Errorf("GATEWAY_SHARD_COUNT out of range: %d", shardCount)
	}

	cfg := &Config{
		Discord: DiscordConfig{
			Token: getEnv("DISCORD_TOKEN", ""),
		},
		Cache: CacheConfig{
			MaxMessages: maxMessages,
		},
		Gateway: GatewayConfig{
			ShardCount: uint16(shardCount),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if _, _, err := auth.ValidateToken(c.Discord.Token); err != nil {
		return fmt.Errorf("DISCORD_TOKEN is malformed: %w", err)
	}

	if c.Cache.MaxMessages < 0 {
		return fmt.Errorf("CACHE_MAX_MESSAGES must not be negative")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}
	validLogFormats := map[string]bool{"json": true, "console": true}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}

	return nil
}

// getEnv retrieves an environment variable with a fallback default value.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
