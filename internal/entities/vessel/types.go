// Package vessel holds the BattleTech spacecraft class records the rollers draw from
package vessel

import (
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// TechBase is the technology lineage of a vessel class
type TechBase string

// Tech bases
const (
	TechInnerSphere TechBase = "IS"
	TechClan        TechBase = "Clan"
	TechUnknown     TechBase = "Unknown"
)

// ParseTechBase maps a user or scraper token to a TechBase.
// Empty input and "unknown" map to TechUnknown.
func ParseTechBase(s string) (TechBase, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "is", "inner sphere", "innersphere", "inner_sphere":
		return TechInnerSphere, true
	case "clan", "clans":
		return TechClan, true
	case "", "unknown":
		return TechUnknown, true
	default:
		return TechUnknown, false
	}
}

// RarityTier is a coarse in-universe abundance class used to weight rolls
type RarityTier string

// Rarity tiers, most to least common
const (
	RarityCommon   RarityTier = "common"
	RarityUncommon RarityTier = "uncommon"
	RarityRare     RarityTier = "rare"
	RarityVeryRare RarityTier = "very_rare"
	RarityUnknown  RarityTier = "unknown"
)

// RarityTiers lists every tier in display order
var RarityTiers = []RarityTier{RarityCommon, RarityUncommon, RarityRare, RarityVeryRare, RarityUnknown}

// ParseRarity maps a token to a RarityTier. Empty input maps to RarityUnknown.
func ParseRarity(s string) (RarityTier, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "common":
		return RarityCommon, true
	case "uncommon":
		return RarityUncommon, true
	case "rare":
		return RarityRare, true
	case "very_rare", "very rare", "veryrare", "very-rare":
		return RarityVeryRare, true
	case "", "unknown":
		return RarityUnknown, true
	default:
		return RarityUnknown, false
	}
}

// Kind identifies which table a record belongs to
type Kind string

// Record kinds
const (
	KindDropShip          Kind = "dropship"
	KindPrimitiveJumpShip Kind = "primitive_jumpship"
)

// ClassRecord is one vessel class. Name is unique within a catalog.
type ClassRecord struct {
	Name     string
	Kind     Kind
	TechBase TechBase
	// IntroYear is nil when the introduction year is unknown
	IntroYear *int
	Rarity    RarityTier
}

var _ core.Entity = (*ClassRecord)(nil)

// GetID returns the class name
func (r *ClassRecord) GetID() string {
	return r.Name
}

// GetType returns the record kind
func (r *ClassRecord) GetType() string {
	return string(r.Kind)
}

// Clone returns a deep copy so callers can't reach into catalog storage
func (r ClassRecord) Clone() ClassRecord {
	if r.IntroYear != nil {
		y := *r.IntroYear
		r.IntroYear = &y
	}
	return r
}

// Year is a convenience for building optional intro years
func Year(y int) *int {
	return &y
}
