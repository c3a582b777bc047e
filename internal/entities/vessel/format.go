package vessel

import "fmt"

// Describe renders the roll result line shown to players, e.g.
// "Union (intro 2708, Star League) [IS, common]".
func Describe(r ClassRecord) string {
	when := "(intro year unknown)"
	if r.IntroYear != nil {
		when = fmt.Sprintf("(intro %d, %s)", *r.IntroYear, EraForYear(*r.IntroYear))
	}
	return fmt.Sprintf("%s %s [%s, %s]", r.Name, when, r.TechBase, r.Rarity)
}
