package catalog_test

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/bt-ship-roller/internal/catalog"
	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
)

// lineSource reads "Name=rarity" lines from a file
type lineSource struct {
	path string
}

func (s lineSource) Load(_ context.Context) (*vessel.OverrideLayer, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("no file")
		}
		return nil, err
	}
	defer f.Close()

	layer := vessel.NewOverrideLayer("local")
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name, tier, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		layer.Patches[name] = vessel.Patch{Rarity: vessel.RarityPtr(tier)}
	}
	return layer, scanner.Err()
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "local.txt")
	require.NoError(t, os.WriteFile(path, []byte("Union=rare\n"), 0o600))

	loader, err := catalog.NewLoader(&catalog.LoaderConfig{
		Kind:        vessel.KindDropShip,
		BaseRecords: []vessel.ClassRecord{{Name: "Union", TechBase: vessel.TechInnerSphere, Rarity: vessel.RarityCommon}},
		Layers:      []catalog.LayerSource{lineSource{path: path}},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initial, err := loader.Load(ctx)
	require.NoError(t, err)
	store := catalog.NewStore(initial)

	union, _ := store.Catalog().Get("Union")
	require.Equal(t, vessel.RarityRare, union.Rarity)

	reloaded := make(chan error, 4)
	w, err := catalog.NewWatcher(&catalog.WatcherConfig{
		Files:    []string{path},
		Store:    store,
		Loader:   loader,
		Debounce: 20 * time.Millisecond,
		OnReload: func(err error) { reloaded <- err },
	})
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))
	defer func() { _ = w.Close() }()

	require.NoError(t, os.WriteFile(path, []byte("Union=very_rare\n"), 0o600))

	select {
	case err := <-reloaded:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload")
	}

	union, _ = store.Catalog().Get("Union")
	assert.Equal(t, vessel.RarityVeryRare, union.Rarity)
}

func TestNewWatcherValidation(t *testing.T) {
	_, err := catalog.NewWatcher(&catalog.WatcherConfig{})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}
