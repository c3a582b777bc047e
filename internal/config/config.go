// Package config loads bt-roller settings from .bt-roller.yaml, BTROLLER_*
// environment variables and command-line flags
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
	"github.com/KirkDiggler/bt-ship-roller/internal/sampler"
)

// Scraped layer sources
const (
	SourceJSON   = "json"
	SourceSQLite = "sqlite"
	SourceRedis  = "redis"
)

// Session stores
const (
	SessionStoreNone   = "none"
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// OverridesConfig locates the override layers
type OverridesConfig struct {
	// Source picks where the scraped layer is read from
	Source      string `mapstructure:"source"`
	ScrapedJSON string `mapstructure:"scraped_json"`
	SQLite      string `mapstructure:"sqlite"`
	// LocalTOML is an optional manual patch file applied last
	LocalTOML string `mapstructure:"local_toml"`
}

// RedisConfig holds the Redis connection
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// ServerConfig holds the gRPC server settings
type ServerConfig struct {
	Port int `mapstructure:"port"`
	// Address is where the client command dials
	Address string `mapstructure:"address"`
	Watch   bool   `mapstructure:"watch"`
}

// SessionConfig holds roll session settings
type SessionConfig struct {
	Store string        `mapstructure:"store"`
	TTL   time.Duration `mapstructure:"ttl"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Config is the full runtime configuration
type Config struct {
	Overrides        OverridesConfig    `mapstructure:"overrides"`
	Redis            RedisConfig        `mapstructure:"redis"`
	RarityWeights    map[string]float64 `mapstructure:"rarity_weights"`
	PrimitiveWeights map[string]float64 `mapstructure:"primitive_weights"`
	Server           ServerConfig       `mapstructure:"server"`
	Session          SessionConfig      `mapstructure:"session"`
	Log              LogConfig          `mapstructure:"log"`
}

// NewViper returns a viper instance reading cfgFile, or .bt-roller.yaml from
// the working directory and then the home directory when cfgFile is empty
func NewViper(cfgFile string) *viper.Viper {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".bt-roller")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix("BTROLLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers every key so env vars can reach it
func SetDefaults(v *viper.Viper) {
	v.SetDefault("overrides.source", SourceJSON)
	v.SetDefault("overrides.scraped_json", "dropship_overrides.json")
	v.SetDefault("overrides.sqlite", "dropship_overrides.db")
	v.SetDefault("overrides.local_toml", "")
	v.SetDefault("redis.url", "")
	v.SetDefault("server.port", 50051)
	v.SetDefault("server.address", "localhost:50051")
	v.SetDefault("server.watch", false)
	v.SetDefault("session.store", SessionStoreMemory)
	v.SetDefault("session.ttl", 15*time.Minute)
	v.SetDefault("log.level", "info")

	for tier, w := range sampler.DefaultWeights() {
		v.SetDefault("rarity_weights."+string(tier), w)
	}
	for tier, w := range sampler.PrimitiveWeights() {
		v.SetDefault("primitive_weights."+string(tier), w)
	}
}

// Load reads the config file if present and decodes v. A missing config file
// is not an error.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail deep inside a command
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	switch c.Overrides.Source {
	case SourceJSON, SourceSQLite:
	case SourceRedis:
		if c.Redis.URL == "" {
			vb.Field("redis.url", "required when overrides.source is redis")
		}
	default:
		vb.Fieldf("overrides.source", "must be json, sqlite or redis, got %q", c.Overrides.Source)
	}

	switch c.Session.Store {
	case SessionStoreNone, SessionStoreMemory:
	case SessionStoreRedis:
		if c.Redis.URL == "" {
			vb.Field("redis.url", "required when session.store is redis")
		}
	default:
		vb.Fieldf("session.store", "must be none, memory or redis, got %q", c.Session.Store)
	}
	if c.Session.TTL < 0 {
		vb.InvalidField("session.ttl", "must not be negative")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		vb.Fieldf("server.port", "must be between 1 and 65535, got %d", c.Server.Port)
	}
	if _, err := c.SlogLevel(); err != nil {
		vb.Fieldf("log.level", "unknown level %q", c.Log.Level)
	}
	if _, err := tierWeights(c.RarityWeights); err != nil {
		vb.Field("rarity_weights", err.Error())
	}
	if _, err := tierWeights(c.PrimitiveWeights); err != nil {
		vb.Field("primitive_weights", err.Error())
	}

	return vb.Build()
}

// SlogLevel parses the log level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.Log.Level))
	return level, err
}

// DropShipWeights returns the DropShip rarity weights
func (c *Config) DropShipWeights() (sampler.Weights, error) {
	return tierWeights(c.RarityWeights)
}

// PrimitiveJumpShipWeights returns the primitive JumpShip rarity weights
func (c *Config) PrimitiveJumpShipWeights() (sampler.Weights, error) {
	return tierWeights(c.PrimitiveWeights)
}

func tierWeights(raw map[string]float64) (sampler.Weights, error) {
	w := make(sampler.Weights, len(raw))
	for key, v := range raw {
		tier, ok := vessel.ParseRarity(key)
		if !ok {
			return nil, errors.InvalidArgumentf("unknown rarity tier %q", key)
		}
		w[tier] = v
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}
