package overrides

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
)

// JSONFileConfig configures a JSON file repository
type JSONFileConfig struct {
	// Name labels the loaded layer, defaults to LayerScraped
	Name string
	Path string
}

// Validate ensures all required fields are provided
func (c *JSONFileConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Path == "" {
		vb.RequiredField("Path")
	}
	return vb.Build()
}

// JSONFile reads and writes the scraper's export: one JSON object mapping
// class name to {year, tech, rarity, evidence, source_title, source_url}
type JSONFile struct {
	name string
	path string
}

var _ Repository = (*JSONFile)(nil)

// NewJSONFile creates a JSON file repository
func NewJSONFile(cfg *JSONFileConfig) (*JSONFile, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	name := cfg.Name
	if name == "" {
		name = LayerScraped
	}
	return &JSONFile{name: name, path: cfg.Path}, nil
}

// Path returns the file location
func (r *JSONFile) Path() string {
	return r.path
}

// Load reads the file. A missing file is NotFound.
func (r *JSONFile) Load(_ context.Context) (*vessel.OverrideLayer, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("override file %s does not exist", r.path)
		}
		return nil, errors.Wrapf(err, "failed to read %s", r.path)
	}

	layer := vessel.NewOverrideLayer(r.name)
	if err := json.Unmarshal(raw, &layer.Patches); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed override file "+r.path)
	}
	if layer.Patches == nil {
		layer.Patches = make(map[string]vessel.Patch)
	}

	return layer, nil
}

// Save writes the layer as indented JSON, replacing the file atomically
func (r *JSONFile) Save(_ context.Context, layer *vessel.OverrideLayer) error {
	if layer == nil {
		return errors.InvalidArgument("layer is required")
	}

	patches := layer.Patches
	if patches == nil {
		patches = map[string]vessel.Patch{}
	}
	raw, err := json.MarshalIndent(patches, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode overrides")
	}

	return writeFileAtomic(r.path, append(raw, '\n'))
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "failed to write %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "failed to replace %s", path)
	}
	return nil
}
