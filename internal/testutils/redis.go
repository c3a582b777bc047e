// Package testutils provides shared test helpers: miniredis-backed clients
// and small vessel fixtures.
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/bt-ship-roller/internal/redis"
)

// CreateTestRedisServer starts a miniredis and returns a client for it along
// with the server, so tests can fast-forward TTLs or inspect keys. The server
// is closed when the test ends.
func CreateTestRedisServer(t *testing.T) (redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")
	t.Cleanup(mr.Close)

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err, "failed to create redis client")

	return client, mr
}
