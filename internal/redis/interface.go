package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the go-redis universal client. Repositories take this interface
// so tests can hand them a miniredis-backed client.
type Client interface {
	redis.UniversalClient
}
