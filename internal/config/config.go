package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	apperr "github.com/KirkDiggler/ability-engine/internal/errors"
)

// Config holds all configuration for the application
type Config struct {
	World     WorldConfig
	Redis     RedisConfig
	Abilities AbilitiesConfig
	Telemetry TelemetryConfig
}

// WorldConfig holds simulation settings
type WorldConfig struct {
	ID       string
	TickRate int
	// Seed drives the dice roller; 0 seeds from the clock
	Seed int64
}

// RedisConfig holds Redis-specific configuration. Leaving both URL and
// Addr empty keeps cooldowns in memory.
type RedisConfig struct {
	URL         string
	Addr        string
	Password    string
	DB          int
	SnapshotTTL time.Duration
}

// Enabled reports whether a Redis server is configured
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Addr != ""
}

// AbilitiesConfig holds where ability definitions come from
type AbilitiesConfig struct {
	// CatalogPath overrides the built-in catalog
	CatalogPath string
	// ScriptDir overrides the built-in scripts
	ScriptDir    string
	WatchScripts bool
}

// TelemetryConfig holds OpenTelemetry settings
type TelemetryConfig struct {
	Enabled bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		World: WorldConfig{
			ID:       getEnvOrDefault("WORLD_ID", "lair"),
			TickRate: getEnvAsIntOrDefault("TICK_RATE", 20),
			Seed:     int64(getEnvAsIntOrDefault("SEED", 0)),
		},
		Redis: RedisConfig{
			URL:         os.Getenv("REDIS_URL"),
			Addr:        os.Getenv("REDIS_ADDR"),
			Password:    os.Getenv("REDIS_PASSWORD"),
			DB:          getEnvAsIntOrDefault("REDIS_DB", 0),
			SnapshotTTL: getEnvAsDurationOrDefault("SNAPSHOT_TTL", 24*time.Hour),
		},
		Abilities: AbilitiesConfig{
			CatalogPath:  os.Getenv("ABILITY_CATALOG"),
			ScriptDir:    os.Getenv("ABILITY_SCRIPT_DIR"),
			WatchScripts: getEnvAsBoolOrDefault("ABILITY_SCRIPT_WATCH", false),
		},
		Telemetry: TelemetryConfig{
			Enabled: getEnvAsBoolOrDefault("OTEL_ENABLED", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	if c.World.TickRate <= 0 || c.World.TickRate > 1000 {
		return apperr.Configurationf("TICK_RATE must be between 1 and 1000, got %d", c.World.TickRate)
	}
	if strings.TrimSpace(c.World.ID) == "" {
		return apperr.Configurationf("WORLD_ID cannot be empty")
	}
	if c.Redis.SnapshotTTL <= 0 {
		return apperr.Configurationf("SNAPSHOT_TTL must be positive")
	}
	if c.Abilities.WatchScripts && c.Abilities.ScriptDir == "" {
		return apperr.Configurationf("ABILITY_SCRIPT_WATCH requires ABILITY_SCRIPT_DIR")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
