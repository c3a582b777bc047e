package catalog

//go:generate mockgen -destination=mock/mock_source.go -package=catalogmock github.com/KirkDiggler/bt-ship-roller/internal/catalog LayerSource

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
)

// LayerSource produces an override layer. A source that does not exist
// returns errors.NotFound, which the loader treats as an absent layer.
type LayerSource interface {
	Load(ctx context.Context) (*vessel.OverrideLayer, error)
}

// LoaderConfig describes where a catalog's data comes from
type LoaderConfig struct {
	Kind vessel.Kind

	// BaseRecords are static records, e.g. an embedded table
	BaseRecords []vessel.ClassRecord

	// BaseLayer, when set, contributes its patched names as base records
	BaseLayer LayerSource

	// Layers are applied in order, lowest priority first
	Layers []LayerSource
}

// Validate ensures the loader has something to load
func (c *LoaderConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Kind == "" {
		vb.RequiredField("Kind")
	}
	if c.BaseLayer == nil && len(c.BaseRecords) == 0 {
		vb.Field("BaseLayer", "either BaseLayer or BaseRecords is required")
	}

	return vb.Build()
}

// Loader builds catalogs from configured sources
type Loader struct {
	cfg LoaderConfig
}

// NewLoader creates a loader
func NewLoader(cfg *LoaderConfig) (*Loader, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Loader{cfg: *cfg}, nil
}

// Load reads every source and builds a fresh catalog. A missing base layer
// yields an empty catalog, not an error.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	base := make([]vessel.ClassRecord, 0, len(l.cfg.BaseRecords))
	for _, r := range l.cfg.BaseRecords {
		r.Kind = l.cfg.Kind
		base = append(base, r)
	}

	var baseLayer *LayerReport
	if l.cfg.BaseLayer != nil {
		layer, err := loadOptional(ctx, l.cfg.BaseLayer)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load base layer")
		}
		if layer == nil {
			slog.Warn("No base data for catalog", "kind", l.cfg.Kind)
		} else {
			baseLayer = &LayerReport{Name: layer.Name, Patches: layer.Len(), Applied: layer.Names()}
		}
		base = append(base, BaseFromLayer(l.cfg.Kind, layer)...)
	}

	layers := make([]*vessel.OverrideLayer, 0, len(l.cfg.Layers))
	for i, src := range l.cfg.Layers {
		layer, err := loadOptional(ctx, src)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load override layer %d", i)
		}
		layers = append(layers, layer)
	}

	cat := Build(base, layers...)
	cat.report.BaseLayer = baseLayer

	slog.Info("Catalog built",
		"kind", l.cfg.Kind,
		"records", cat.Len(),
		"layers", len(cat.Report().Layers),
	)

	return cat, nil
}

func loadOptional(ctx context.Context, src LayerSource) (*vessel.OverrideLayer, error) {
	layer, err := src.Load(ctx)
	if err != nil {
		if errors.IsNotFound(err) {
			slog.Debug("Override source absent", "error", err)
			return nil, nil
		}
		return nil, err
	}
	return layer, nil
}
