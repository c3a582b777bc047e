package sampler

import (
	"strings"

	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
)

// TechFilter restricts rolls to one tech base
type TechFilter string

// Tech filter choices
const (
	TechAny         TechFilter = "any"
	TechInnerSphere TechFilter = "IS"
	TechClan        TechFilter = "Clan"
)

// ParseTechFilter maps a menu or flag token to a TechFilter
func ParseTechFilter(s string) (TechFilter, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any", "a":
		return TechAny, true
	case "is", "inner sphere", "innersphere":
		return TechInnerSphere, true
	case "clan", "clans", "c":
		return TechClan, true
	default:
		return TechAny, false
	}
}

// RarityPolicy restricts rolls to the more common tiers
type RarityPolicy string

// Rarity policies
const (
	RarityCommonOnly        RarityPolicy = "common"
	RarityCommonAndUncommon RarityPolicy = "common_uncommon"
	RarityAny               RarityPolicy = "any"
)

// ParseRarityPolicy maps a menu choice (1/2/3) or name to a RarityPolicy
func ParseRarityPolicy(s string) (RarityPolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "common":
		return RarityCommonOnly, true
	case "2", "common_uncommon", "common+uncommon", "uncommon":
		return RarityCommonAndUncommon, true
	case "", "3", "any":
		return RarityAny, true
	default:
		return RarityAny, false
	}
}

// Filter is the full set of roll restrictions. The zero value passes every
// record except those with unknown rarity or unknown tech under a tech
// restriction; use AnyFilter for the permissive default.
type Filter struct {
	Tech TechFilter
	// Year, when set, keeps records introduced in or before that year
	Year *int
	// StrictYear drops unknown-year records while Year is set
	StrictYear           bool
	Rarity               RarityPolicy
	IncludeUnknownRarity bool
	IncludeUnknownTech   bool
}

// AnyFilter returns a filter that admits every record
func AnyFilter() Filter {
	return Filter{
		Tech:                 TechAny,
		Rarity:               RarityAny,
		IncludeUnknownRarity: true,
		IncludeUnknownTech:   true,
	}
}

// Match reports whether r passes every predicate
func (f Filter) Match(r vessel.ClassRecord) bool {
	return f.matchTech(r) && f.matchYear(r) && f.matchRarity(r)
}

func (f Filter) matchTech(r vessel.ClassRecord) bool {
	if f.Tech == TechAny || f.Tech == "" {
		return true
	}
	if r.TechBase == vessel.TechUnknown {
		return f.IncludeUnknownTech
	}
	return string(r.TechBase) == string(f.Tech)
}

func (f Filter) matchYear(r vessel.ClassRecord) bool {
	if f.Year == nil {
		return true
	}
	if r.IntroYear == nil {
		return !f.StrictYear
	}
	return *r.IntroYear <= *f.Year
}

func (f Filter) matchRarity(r vessel.ClassRecord) bool {
	if r.Rarity == vessel.RarityUnknown {
		return f.IncludeUnknownRarity
	}
	switch f.Rarity {
	case RarityCommonOnly:
		return r.Rarity == vessel.RarityCommon
	case RarityCommonAndUncommon:
		return r.Rarity == vessel.RarityCommon || r.Rarity == vessel.RarityUncommon
	default:
		return true
	}
}
