package overrides

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
	redisclient "github.com/KirkDiggler/bt-ship-roller/internal/redis"
)

// Key pattern: overrides:{layer}, one hash field per class
const layerKeyPrefix = "overrides:"

// RedisConfig configures a Redis-backed layer
type RedisConfig struct {
	Client redisclient.Client
	// Layer names the hash, defaults to LayerScraped
	Layer string
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

// Redis shares a layer between processes. Each hash field holds the class's
// patch in the same JSON shape as the scraper's export.
type Redis struct {
	client redisclient.Client
	layer  string
}

var _ Repository = (*Redis)(nil)

// NewRedis creates a Redis-backed repository
func NewRedis(cfg *RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	layer := cfg.Layer
	if layer == "" {
		layer = LayerScraped
	}
	return &Redis{client: cfg.Client, layer: layer}, nil
}

func (r *Redis) key() string {
	return layerKeyPrefix + r.layer
}

// Load reads the hash. A missing hash is NotFound.
func (r *Redis) Load(ctx context.Context) (*vessel.OverrideLayer, error) {
	fields, err := r.client.HGetAll(ctx, r.key()).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no %s overrides stored", r.layer)
		}
		return nil, errors.Wrapf(err, "failed to get overrides from Redis")
	}
	if len(fields) == 0 {
		return nil, errors.NotFoundf("no %s overrides stored", r.layer)
	}

	layer := vessel.NewOverrideLayer(r.layer)
	for name, raw := range fields {
		var p vessel.Patch
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal override for %s", name)
		}
		layer.Patches[name] = p
	}
	return layer, nil
}

// Save replaces the hash atomically
func (r *Redis) Save(ctx context.Context, layer *vessel.OverrideLayer) error {
	if layer == nil {
		return errors.InvalidArgument("layer is required")
	}

	values := make(map[string]any, layer.Len())
	for name, p := range layer.Patches {
		raw, err := json.Marshal(p)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal override for %s", name)
		}
		values[name] = raw
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key())
		if len(values) > 0 {
			pipe.HSet(ctx, r.key(), values)
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to store overrides in Redis")
	}
	return nil
}
