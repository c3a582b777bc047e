package overrides

import (
	"bytes"
	"context"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
)

// TOMLFileConfig configures a TOML patch file. When FS is set the file is
// read from it and the repository is read-only.
type TOMLFileConfig struct {
	// Name labels the loaded layer, defaults to LayerManual
	Name string
	Path string
	FS   fs.FS
}

// Validate ensures all required fields are provided
func (c *TOMLFileConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Path == "" {
		vb.RequiredField("Path")
	}
	return vb.Build()
}

// tomlPatch is one [Class Name] table
type tomlPatch struct {
	Year   *int    `toml:"year,omitempty"`
	Tech   *string `toml:"tech,omitempty"`
	Rarity *string `toml:"rarity,omitempty"`
}

// TOMLFile holds hand-written patches, one table per class:
//
//	["Type 51"]
//	year = 2300
//	rarity = "common"
type TOMLFile struct {
	name string
	path string
	fsys fs.FS
}

var _ Repository = (*TOMLFile)(nil)

// NewTOMLFile creates a TOML file repository
func NewTOMLFile(cfg *TOMLFileConfig) (*TOMLFile, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	name := cfg.Name
	if name == "" {
		name = LayerManual
	}
	return &TOMLFile{name: name, path: cfg.Path, fsys: cfg.FS}, nil
}

// Path returns the file location
func (r *TOMLFile) Path() string {
	return r.path
}

// Load parses the file. Unlike scraped data, hand-written tokens are checked:
// a tech or rarity that isn't recognised is an InvalidArgument error.
func (r *TOMLFile) Load(_ context.Context) (*vessel.OverrideLayer, error) {
	raw, err := r.read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotFoundf("override file %s does not exist", r.path)
		}
		return nil, errors.Wrapf(err, "failed to read %s", r.path)
	}

	var tables map[string]tomlPatch
	if err := toml.Unmarshal(raw, &tables); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed override file "+r.path)
	}

	layer := vessel.NewOverrideLayer(r.name)
	vb := errors.NewValidationBuilder()
	for name, t := range tables {
		p := vessel.Patch{IntroYear: t.Year}
		if t.Tech != nil {
			tb, ok := vessel.ParseTechBase(*t.Tech)
			if !ok {
				vb.InvalidField(name+".tech", *t.Tech)
			} else if tb != vessel.TechUnknown {
				p.TechBase = &tb
			}
		}
		if t.Rarity != nil {
			rt, ok := vessel.ParseRarity(*t.Rarity)
			if !ok {
				vb.InvalidField(name+".rarity", *t.Rarity)
			} else if rt != vessel.RarityUnknown {
				p.Rarity = &rt
			}
		}
		layer.Patches[name] = p
	}
	if err := vb.Build(); err != nil {
		return nil, errors.Wrapf(err, "invalid override file %s", r.path)
	}

	return layer, nil
}

// Save writes the layer's non-empty fields. Embedded files can't be saved.
func (r *TOMLFile) Save(_ context.Context, layer *vessel.OverrideLayer) error {
	if r.fsys != nil {
		return errors.Unimplemented("embedded override files are read-only")
	}
	if layer == nil {
		return errors.InvalidArgument("layer is required")
	}

	tables := make(map[string]tomlPatch, layer.Len())
	for name, p := range layer.Patches {
		t := tomlPatch{Year: p.IntroYear}
		if p.TechBase != nil {
			s := string(*p.TechBase)
			t.Tech = &s
		}
		if p.Rarity != nil {
			s := string(*p.Rarity)
			t.Rarity = &s
		}
		tables[name] = t
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(tables); err != nil {
		return errors.Wrap(err, "failed to encode overrides")
	}

	return writeFileAtomic(r.path, buf.Bytes())
}

func (r *TOMLFile) read() ([]byte, error) {
	if r.fsys != nil {
		return fs.ReadFile(r.fsys, r.path)
	}
	return os.ReadFile(r.path)
}
