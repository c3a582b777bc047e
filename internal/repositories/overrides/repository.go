// Package overrides stores and loads override layers: sparse patches of
// intro year, tech base and rarity keyed by class name.
package overrides

import (
	"context"

	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=overridesmock github.com/KirkDiggler/bt-ship-roller/internal/repositories/overrides Repository

// Layer names used across the app
const (
	LayerScraped = "scraped"
	LayerLocal   = "local"
	LayerManual  = "manual"
)

// Repository is a source of one override layer.
//
// Load returns errors.NotFound when the layer does not exist (missing file,
// empty table, no hash), which callers treat as "no overrides".
type Repository interface {
	Load(ctx context.Context) (*vessel.OverrideLayer, error)

	// Save replaces the stored layer with layer
	Save(ctx context.Context, layer *vessel.OverrideLayer) error
}
