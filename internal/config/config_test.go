package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/bt-ship-roller/internal/config"
	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
	"github.com/KirkDiggler/bt-ship-roller/internal/sampler"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bt-roller.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load(config.NewViper(""))
	require.NoError(t, err)

	assert.Equal(t, config.SourceJSON, cfg.Overrides.Source)
	assert.Equal(t, "dropship_overrides.json", cfg.Overrides.ScrapedJSON)
	assert.Empty(t, cfg.Overrides.LocalTOML)
	assert.Equal(t, 50051, cfg.Server.Port)
	assert.Equal(t, config.SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, 15*time.Minute, cfg.Session.TTL)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	w, err := cfg.DropShipWeights()
	require.NoError(t, err)
	assert.Equal(t, sampler.DefaultWeights(), w)

	pw, err := cfg.PrimitiveJumpShipWeights()
	require.NoError(t, err)
	assert.Equal(t, sampler.PrimitiveWeights(), pw)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
overrides:
  source: sqlite
  sqlite: /data/ships.db
rarity_weights:
  very_rare: 0.2
session:
  ttl: 1h
log:
  level: debug
`)
	t.Setenv("BTROLLER_SERVER_PORT", "6000")
	t.Setenv("BTROLLER_RARITY_WEIGHTS_COMMON", "20")

	cfg, err := config.Load(config.NewViper(path))
	require.NoError(t, err)

	assert.Equal(t, config.SourceSQLite, cfg.Overrides.Source)
	assert.Equal(t, "/data/ships.db", cfg.Overrides.SQLite)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, 6000, cfg.Server.Port)

	w, err := cfg.DropShipWeights()
	require.NoError(t, err)
	assert.Equal(t, 20.0, w.For(vessel.RarityCommon))
	assert.Equal(t, 0.2, w.For(vessel.RarityVeryRare))
	assert.Equal(t, 3.0, w.For(vessel.RarityUncommon))
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := writeConfig(t, `
overrides:
  source: ftp
session:
  store: redis
rarity_weights:
  common: -1
log:
  level: chatty
`)

	_, err := config.Load(config.NewViper(path))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	for _, field := range []string{"overrides.source", "redis.url", "rarity_weights", "log.level"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := config.Load(config.NewViper(filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Error(t, err)
}
