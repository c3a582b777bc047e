// Package audit summarises what a catalog contains and which overrides
// missed, so stale patch files get noticed.
package audit

import (
	"fmt"
	"io"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/KirkDiggler/bt-ship-roller/internal/catalog"
	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
)

// MaxSuggestionDistance is the largest edit distance offered as a "did you
// mean" hint for an override naming no known class
const MaxSuggestionDistance = 3

// Count is one bucket of a tally
type Count struct {
	Label string
	N     int
}

// UnknownName is an override naming no class in the catalog
type UnknownName struct {
	Name string
	// Suggestion is the closest class name, empty when none is close enough
	Suggestion string
	Distance   int
}

// LayerAudit describes one override layer
type LayerAudit struct {
	Name    string
	Patches int
	Applied int
	Unknown []UnknownName
}

// Report is the audit of one catalog
type Report struct {
	Kind            vessel.Kind
	TotalClasses    int
	OverridesLoaded int
	MissingYear     int
	TechCounts      []Count
	RarityCounts    []Count
	Layers          []LayerAudit
}

var techOrder = []vessel.TechBase{vessel.TechInnerSphere, vessel.TechClan, vessel.TechUnknown}

// Build audits cat
func Build(kind vessel.Kind, cat *catalog.Catalog) Report {
	rep := Report{Kind: kind, TotalClasses: cat.Len()}

	tech := make(map[vessel.TechBase]int)
	rarity := make(map[vessel.RarityTier]int)
	cat.Each(func(r vessel.ClassRecord) {
		tech[r.TechBase]++
		rarity[r.Rarity]++
		if r.IntroYear == nil {
			rep.MissingYear++
		}
	})

	for _, tb := range techOrder {
		if tech[tb] > 0 {
			rep.TechCounts = append(rep.TechCounts, Count{Label: string(tb), N: tech[tb]})
		}
	}
	for _, rt := range vessel.RarityTiers {
		if rarity[rt] > 0 {
			rep.RarityCounts = append(rep.RarityCounts, Count{Label: string(rt), N: rarity[rt]})
		}
	}

	names := cat.Names()
	built := cat.Report()

	// The scraped base layer is the override set; patch layers only count
	// when the base came from static records.
	if bl := built.BaseLayer; bl != nil {
		rep.OverridesLoaded = bl.Patches
		rep.Layers = append(rep.Layers, LayerAudit{Name: bl.Name, Patches: bl.Patches, Applied: len(bl.Applied)})
	}
	for _, lr := range built.Layers {
		la := LayerAudit{Name: lr.Name, Patches: lr.Patches, Applied: len(lr.Applied)}
		for _, name := range lr.Unknown {
			la.Unknown = append(la.Unknown, suggest(name, names))
		}
		if built.BaseLayer == nil {
			rep.OverridesLoaded += lr.Patches
		}
		rep.Layers = append(rep.Layers, la)
	}

	return rep
}

func suggest(name string, candidates []string) UnknownName {
	out := UnknownName{Name: name, Distance: -1}
	lower := strings.ToLower(name)

	for _, c := range candidates {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(c))
		if d > MaxSuggestionDistance {
			continue
		}
		if out.Distance < 0 || d < out.Distance {
			out.Suggestion, out.Distance = c, d
		}
	}
	return out
}

// WriteText renders the report as plain text
func (r Report) WriteText(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Total classes in DB: %d\n", r.TotalClasses)
	fmt.Fprintf(&b, "Overrides loaded: %d\n", r.OverridesLoaded)
	fmt.Fprintf(&b, "Missing intro year: %d\n", r.MissingYear)
	fmt.Fprintf(&b, "Tech counts: %s\n", formatCounts(r.TechCounts))
	fmt.Fprintf(&b, "Rarity counts: %s\n", formatCounts(r.RarityCounts))

	for _, l := range r.Layers {
		fmt.Fprintf(&b, "Layer %s: %d patches, %d applied", l.Name, l.Patches, l.Applied)
		if len(l.Unknown) == 0 {
			b.WriteString("\n")
			continue
		}
		fmt.Fprintf(&b, ", %d unknown\n", len(l.Unknown))
		for _, u := range l.Unknown {
			if u.Suggestion != "" {
				fmt.Fprintf(&b, "  - %s (did you mean %s?)\n", u.Name, u.Suggestion)
			} else {
				fmt.Fprintf(&b, "  - %s\n", u.Name)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func formatCounts(counts []Count) string {
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		parts = append(parts, fmt.Sprintf("%s: %d", c.Label, c.N))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
