// Package redis wraps the go-redis client so repositories depend on a small,
// mockable surface.
package redis

import (
	"crypto/tls"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options tunes the connection pool. Zero values keep the go-redis defaults.
type Options struct {
	PoolSize        int
	MinIdleConns    int
	ConnMaxIdleTime time.Duration
	MaxRetries      int
	UseTLS          bool
}

// NewClient creates a client for a single instance at host:port
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.New("redis: endpoint is required")
	}

	return redis.NewClient(applyOptions(&redis.Options{Addr: endpoint}, opts)), nil
}

// NewClientFromURL creates a client from a redis:// or rediss:// URL, the
// form used in configuration (e.g. redis://:secret@localhost:6379/2)
func NewClientFromURL(url string, opts *Options) (Client, error) {
	if url == "" {
		return nil, errors.New("redis: url is required")
	}

	parsed, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	return redis.NewClient(applyOptions(parsed, opts)), nil
}

func applyOptions(ro *redis.Options, opts *Options) *redis.Options {
	if opts == nil {
		return ro
	}

	if opts.PoolSize > 0 {
		ro.PoolSize = opts.PoolSize
	}
	if opts.MinIdleConns > 0 {
		ro.MinIdleConns = opts.MinIdleConns
	}
	if opts.ConnMaxIdleTime > 0 {
		ro.ConnMaxIdleTime = opts.ConnMaxIdleTime
	}
	if opts.MaxRetries != 0 {
		ro.MaxRetries = opts.MaxRetries
	}
	if opts.UseTLS && ro.TLSConfig == nil {
		ro.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402 // self-signed certs on dev boxes
		}
	}

	return ro
}
