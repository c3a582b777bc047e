package vessel

import (
	"encoding/json"
	"sort"
	"strings"
)

// Patch is a partial record. Nil fields leave the existing value untouched.
type Patch struct {
	IntroYear *int
	TechBase  *TechBase
	Rarity    *RarityTier

	// Provenance, carried for audits and ignored by the builder
	Evidence    []string
	SourceTitle string
	SourceURL   string
}

// IsEmpty reports whether the patch would change nothing
func (p Patch) IsEmpty() bool {
	return p.IntroYear == nil && p.TechBase == nil && p.Rarity == nil
}

// patchJSON mirrors the scraper's file format
type patchJSON struct {
	Year        *int     `json:"year"`
	Tech        *string  `json:"tech"`
	Rarity      *string  `json:"rarity"`
	Evidence    []string `json:"evidence,omitempty"`
	SourceTitle string   `json:"source_title,omitempty"`
	SourceURL   string   `json:"source_url,omitempty"`
}

// MarshalJSON writes absent fields as null
func (p Patch) MarshalJSON() ([]byte, error) {
	out := patchJSON{
		Year:        p.IntroYear,
		Evidence:    p.Evidence,
		SourceTitle: p.SourceTitle,
		SourceURL:   p.SourceURL,
	}
	if p.TechBase != nil {
		s := string(*p.TechBase)
		out.Tech = &s
	}
	if p.Rarity != nil {
		s := string(*p.Rarity)
		out.Rarity = &s
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the scraper's format. Null, empty and "unknown" tokens
// are absent fields; unrecognised tokens are absent as well.
func (p *Patch) UnmarshalJSON(data []byte) error {
	var in patchJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*p = Patch{
		IntroYear:   in.Year,
		Evidence:    in.Evidence,
		SourceTitle: in.SourceTitle,
		SourceURL:   in.SourceURL,
	}
	if in.Tech != nil {
		p.TechBase = TechPtr(*in.Tech)
	}
	if in.Rarity != nil {
		p.Rarity = RarityPtr(*in.Rarity)
	}
	return nil
}

// TechPtr parses a token into an optional tech base; unknown yields nil
func TechPtr(token string) *TechBase {
	tb, ok := ParseTechBase(token)
	if !ok || tb == TechUnknown {
		return nil
	}
	return &tb
}

// RarityPtr parses a token into an optional rarity; unknown yields nil
func RarityPtr(token string) *RarityTier {
	rt, ok := ParseRarity(token)
	if !ok || rt == RarityUnknown {
		return nil
	}
	return &rt
}

// OverrideLayer maps class names to patches
type OverrideLayer struct {
	// Name labels the layer in logs and audits (e.g. "scraped", "local")
	Name    string
	Patches map[string]Patch
}

// NewOverrideLayer creates an empty named layer
func NewOverrideLayer(name string) *OverrideLayer {
	return &OverrideLayer{
		Name:    name,
		Patches: make(map[string]Patch),
	}
}

// Len returns the number of patches, zero for a nil layer
func (l *OverrideLayer) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Patches)
}

// Names returns the patched class names in case-insensitive order
func (l *OverrideLayer) Names() []string {
	if l == nil {
		return nil
	}
	names := make([]string, 0, len(l.Patches))
	for name := range l.Patches {
		names = append(names, name)
	}
	SortNames(names)
	return names
}

// SortNames orders names case-insensitively, breaking ties on the raw name
func SortNames(names []string) {
	sort.Slice(names, func(i, j int) bool {
		li, lj := strings.ToLower(names[i]), strings.ToLower(names[j])
		if li == lj {
			return names[i] < names[j]
		}
		return li < lj
	})
}
