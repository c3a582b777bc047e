package overrides

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
)

// schema runs on every open; IF NOT EXISTS keeps it idempotent
const schema = `
CREATE TABLE IF NOT EXISTS class_overrides (
    layer        TEXT NOT NULL,
    name         TEXT NOT NULL,
    year         INTEGER,
    tech         TEXT,
    rarity       TEXT,
    source_title TEXT NOT NULL DEFAULT '',
    source_url   TEXT NOT NULL DEFAULT '',
    updated_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (layer, name)
);

CREATE TABLE IF NOT EXISTS class_evidence (
    layer    TEXT NOT NULL,
    name     TEXT NOT NULL,
    position INTEGER NOT NULL,
    pattern  TEXT NOT NULL,
    PRIMARY KEY (layer, name, position)
);
`

// SQLiteConfig configures a SQLite-backed layer
type SQLiteConfig struct {
	Path string
	// Layer selects rows within the database, defaults to LayerScraped
	Layer string
}

// Validate ensures all required fields are provided
func (c *SQLiteConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Path == "" {
		vb.RequiredField("Path")
	}
	return vb.Build()
}

// SQLite keeps layers in a local database, one row per class plus the
// scraper's evidence lines. Several layers can share a file.
type SQLite struct {
	db    *sql.DB
	layer string
}

var _ Repository = (*SQLite)(nil)

// NewSQLite opens (or creates) the database at cfg.Path in WAL mode and
// creates the schema
func NewSQLite(ctx context.Context, cfg *SQLiteConfig) (*SQLite, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", cfg.Path)
	}

	// single writer; one connection avoids SQLITE_BUSY between pooled conns
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000", schema} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, errors.Wrapf(err, "failed to initialise %s", cfg.Path)
		}
	}

	layer := cfg.Layer
	if layer == "" {
		layer = LayerScraped
	}
	return &SQLite{db: db, layer: layer}, nil
}

// Close releases the database
func (r *SQLite) Close() error {
	return r.db.Close()
}

// Load reads every row of the layer. A layer with no rows is NotFound.
func (r *SQLite) Load(ctx context.Context) (*vessel.OverrideLayer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, year, tech, rarity, source_title, source_url
		FROM class_overrides WHERE layer = ?`, r.layer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query overrides")
	}
	defer func() { _ = rows.Close() }()

	layer := vessel.NewOverrideLayer(r.layer)
	for rows.Next() {
		var (
			name                string
			year                sql.NullInt64
			tech, rarity        sql.NullString
			sourceTitle, source string
		)
		if err := rows.Scan(&name, &year, &tech, &rarity, &sourceTitle, &source); err != nil {
			return nil, errors.Wrap(err, "failed to scan override")
		}

		p := vessel.Patch{SourceTitle: sourceTitle, SourceURL: source}
		if year.Valid {
			p.IntroYear = vessel.Year(int(year.Int64))
		}
		if tech.Valid {
			p.TechBase = vessel.TechPtr(tech.String)
		}
		if rarity.Valid {
			p.Rarity = vessel.RarityPtr(rarity.String)
		}
		layer.Patches[name] = p
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read overrides")
	}

	if layer.Len() == 0 {
		return nil, errors.NotFoundf("no %s overrides stored", r.layer)
	}

	if err := r.loadEvidence(ctx, layer); err != nil {
		return nil, err
	}
	return layer, nil
}

func (r *SQLite) loadEvidence(ctx context.Context, layer *vessel.OverrideLayer) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, pattern FROM class_evidence
		WHERE layer = ? ORDER BY name, position`, r.layer)
	if err != nil {
		return errors.Wrap(err, "failed to query evidence")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var name, pattern string
		if err := rows.Scan(&name, &pattern); err != nil {
			return errors.Wrap(err, "failed to scan evidence")
		}
		p, ok := layer.Patches[name]
		if !ok {
			continue
		}
		p.Evidence = append(p.Evidence, pattern)
		layer.Patches[name] = p
	}
	if err := rows.Err(); err != nil {
		return errors.Wrap(err, "failed to read evidence")
	}
	return nil
}

// Save replaces every row of the layer in one transaction
func (r *SQLite) Save(ctx context.Context, layer *vessel.OverrideLayer) (err error) {
	if layer == nil {
		return errors.InvalidArgument("layer is required")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, q := range []string{
		"DELETE FROM class_overrides WHERE layer = ?",
		"DELETE FROM class_evidence WHERE layer = ?",
	} {
		if _, err = tx.ExecContext(ctx, q, r.layer); err != nil {
			return errors.Wrap(err, "failed to clear layer")
		}
	}

	for _, name := range layer.Names() {
		p := layer.Patches[name]

		var year, tech, rarity any
		if p.IntroYear != nil {
			year = *p.IntroYear
		}
		if p.TechBase != nil {
			tech = string(*p.TechBase)
		}
		if p.Rarity != nil {
			rarity = string(*p.Rarity)
		}

		if _, err = tx.ExecContext(ctx, `
			INSERT INTO class_overrides (layer, name, year, tech, rarity, source_title, source_url)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.layer, name, year, tech, rarity, p.SourceTitle, p.SourceURL,
		); err != nil {
			return errors.Wrapf(err, "failed to insert %s", name)
		}

		for i, ev := range p.Evidence {
			if _, err = tx.ExecContext(ctx,
				"INSERT INTO class_evidence (layer, name, position, pattern) VALUES (?, ?, ?, ?)",
				r.layer, name, i, ev,
			); err != nil {
				return errors.Wrapf(err, "failed to insert evidence for %s", name)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit overrides")
	}
	return nil
}
