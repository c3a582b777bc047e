// Package data embeds the static tables that ship with the roller
package data

import (
	"embed"
	"encoding/json"
	"io/fs"

	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
)

// Embedded file names
const (
	LocalDropShipOverridesFile     = "local_dropship_overrides.toml"
	PrimitiveJumpShipsFile         = "primitive_jumpships.json"
	PrimitiveJumpShipOverridesFile = "primitive_jumpship_overrides.toml"
)

//go:embed *.toml *.json
var files embed.FS

// FS exposes the embedded files for override sources
func FS() fs.FS {
	return files
}

// PrimitiveClass is one entry of the primitive JumpShip table. Year is the
// earliest model year on a record sheet; rarity is a rough guess from how
// many variants exist.
type PrimitiveClass struct {
	Name         string  `json:"name"`
	Tech         string  `json:"tech"`
	Year         *int    `json:"year"`
	Rarity       *string `json:"rarity"`
	VariantYears []int   `json:"variant_years"`
	VariantCount int     `json:"variant_count"`
}

// Record converts the entry to a class record
func (p PrimitiveClass) Record() vessel.ClassRecord {
	tech, _ := vessel.ParseTechBase(p.Tech)
	rarity := vessel.RarityUnknown
	if p.Rarity != nil {
		rarity, _ = vessel.ParseRarity(*p.Rarity)
	}

	rec := vessel.ClassRecord{
		Name:     p.Name,
		Kind:     vessel.KindPrimitiveJumpShip,
		TechBase: tech,
		Rarity:   rarity,
	}
	if p.Year != nil {
		rec.IntroYear = vessel.Year(*p.Year)
	}
	return rec
}

// PrimitiveClasses decodes the embedded primitive JumpShip table
func PrimitiveClasses() ([]PrimitiveClass, error) {
	raw, err := files.ReadFile(PrimitiveJumpShipsFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read primitive jumpship table")
	}

	var classes []PrimitiveClass
	if err := json.Unmarshal(raw, &classes); err != nil {
		return nil, errors.Wrap(err, "failed to decode primitive jumpship table")
	}
	return classes, nil
}

// PrimitiveJumpShips returns the embedded primitive JumpShip table as base
// records, before any overrides
func PrimitiveJumpShips() ([]vessel.ClassRecord, error) {
	classes, err := PrimitiveClasses()
	if err != nil {
		return nil, err
	}

	records := make([]vessel.ClassRecord, 0, len(classes))
	for _, c := range classes {
		records = append(records, c.Record())
	}
	return records, nil
}
