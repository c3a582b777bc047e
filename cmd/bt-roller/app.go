package main

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/bt-ship-roller/internal/catalog"
	"github.com/KirkDiggler/bt-ship-roller/internal/config"
	"github.com/KirkDiggler/bt-ship-roller/internal/data"
	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
	"github.com/KirkDiggler/bt-ship-roller/internal/jumpship"
	"github.com/KirkDiggler/bt-ship-roller/internal/orchestrators/roller"
	"github.com/KirkDiggler/bt-ship-roller/internal/pkg/clock"
	"github.com/KirkDiggler/bt-ship-roller/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/bt-ship-roller/internal/redis"
	"github.com/KirkDiggler/bt-ship-roller/internal/repositories/overrides"
	rollsession "github.com/KirkDiggler/bt-ship-roller/internal/repositories/roll_session"
	"github.com/KirkDiggler/bt-ship-roller/internal/sampler"
)

// app owns everything a command needs to roll
type app struct {
	dropShips       *catalog.Store
	dropShipLoader  *catalog.Loader
	primitives      *catalog.Store
	primitiveLoader *catalog.Loader
	// watchFiles are the on-disk override files behind dropShips
	watchFiles []string

	service roller.Service
	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	var redis redisclient.Client
	if cfg.Redis.URL != "" {
		redis, err = redisclient.NewClientFromURL(cfg.Redis.URL, nil)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to create redis client")
		}
		a.closers = append(a.closers, redis.Close)
	}

	if err := a.loadDropShips(ctx, cfg, redis); err != nil {
		return nil, err
	}
	if err := a.loadPrimitives(ctx); err != nil {
		return nil, err
	}

	dropShipWeights, err := cfg.DropShipWeights()
	if err != nil {
		return nil, err
	}
	primitiveWeights, err := cfg.PrimitiveJumpShipWeights()
	if err != nil {
		return nil, err
	}
	dropShipSampler, err := sampler.New(&sampler.Config{Weights: dropShipWeights})
	if err != nil {
		return nil, err
	}
	primitiveSampler, err := sampler.New(&sampler.Config{Weights: primitiveWeights})
	if err != nil {
		return nil, err
	}

	clk := clock.New()
	var sessions rollsession.Repository
	switch cfg.Session.Store {
	case config.SessionStoreMemory:
		sessions = rollsession.NewInMemory(clk)
	case config.SessionStoreRedis:
		sessions, err = rollsession.NewRedisRepository(&rollsession.Config{Client: redis, Clock: clk})
		if err != nil {
			return nil, err
		}
	}

	a.service, err = roller.NewOrchestrator(&roller.Config{
		DropShips:          a.dropShips,
		PrimitiveJumpShips: a.primitives,
		DropShipSampler:    dropShipSampler,
		PrimitiveSampler:   primitiveSampler,
		JumpShipTable:      jumpship.NewTable(nil),
		SessionRepo:        sessions,
		SessionTTL:         cfg.Session.TTL,
		IDGenerator:        idgen.NewUUID("roll"),
		Clock:              clk,
	})
	if err != nil {
		return nil, err
	}

	return a, nil
}

// loadDropShips builds the DropShip catalog: the scraped layer provides the
// base records, then the embedded local patches, then the manual file
func (a *app) loadDropShips(ctx context.Context, cfg *config.Config, redis redisclient.Client) error {
	var scraped catalog.LayerSource
	switch cfg.Overrides.Source {
	case config.SourceJSON:
		src, err := overrides.NewJSONFile(&overrides.JSONFileConfig{
			Name: overrides.LayerScraped,
			Path: cfg.Overrides.ScrapedJSON,
		})
		if err != nil {
			return err
		}
		scraped = src
		a.watchFiles = append(a.watchFiles, src.Path())
	case config.SourceSQLite:
		src, err := overrides.NewSQLite(ctx, &overrides.SQLiteConfig{
			Path:  cfg.Overrides.SQLite,
			Layer: overrides.LayerScraped,
		})
		if err != nil {
			return err
		}
		a.closers = append(a.closers, src.Close)
		scraped = src
	case config.SourceRedis:
		src, err := overrides.NewRedis(&overrides.RedisConfig{Client: redis, Layer: overrides.LayerScraped})
		if err != nil {
			return err
		}
		scraped = src
	}

	local, err := overrides.NewTOMLFile(&overrides.TOMLFileConfig{
		Name: overrides.LayerLocal,
		Path: data.LocalDropShipOverridesFile,
		FS:   data.FS(),
	})
	if err != nil {
		return err
	}
	layers := []catalog.LayerSource{local}

	if cfg.Overrides.LocalTOML != "" {
		manual, err := overrides.NewTOMLFile(&overrides.TOMLFileConfig{
			Name: overrides.LayerManual,
			Path: cfg.Overrides.LocalTOML,
		})
		if err != nil {
			return err
		}
		layers = append(layers, manual)
		a.watchFiles = append(a.watchFiles, manual.Path())
	}

	a.dropShipLoader, err = catalog.NewLoader(&catalog.LoaderConfig{
		Kind:      vessel.KindDropShip,
		BaseLayer: scraped,
		Layers:    layers,
	})
	if err != nil {
		return err
	}

	cat, err := a.dropShipLoader.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load DropShip catalog")
	}
	a.dropShips = catalog.NewStore(cat)

	slog.Debug("DropShip catalog loaded",
		"source", cfg.Overrides.Source,
		"records", cat.Len(),
	)
	return nil
}

func (a *app) loadPrimitives(ctx context.Context) error {
	records, err := data.PrimitiveJumpShips()
	if err != nil {
		return err
	}

	patches, err := overrides.NewTOMLFile(&overrides.TOMLFileConfig{
		Name: overrides.LayerLocal,
		Path: data.PrimitiveJumpShipOverridesFile,
		FS:   data.FS(),
	})
	if err != nil {
		return err
	}

	a.primitiveLoader, err = catalog.NewLoader(&catalog.LoaderConfig{
		Kind:        vessel.KindPrimitiveJumpShip,
		BaseRecords: records,
		Layers:      []catalog.LayerSource{patches},
	})
	if err != nil {
		return err
	}

	cat, err := a.primitiveLoader.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load primitive JumpShip catalog")
	}
	a.primitives = catalog.NewStore(cat)
	return nil
}

// Close releases connections in reverse order of creation
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("Close failed", "error", err)
		}
	}
	a.closers = nil
}
