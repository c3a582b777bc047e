package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
)

// Infobox parameters in priority order
var (
	yearKeys = []string{
		`production\s*year`,
		`introduced`,
		`introduction`,
		`year`,
		`first\s*produced`,
		`entered\s*service`,
	}
	techKeys = []string{
		`tech\s*base`,
		`techbase`,
	}
)

var (
	yearParams = infoboxParams(yearKeys)
	techParams = infoboxParams(techKeys)
	fourDigits = regexp.MustCompile(`\b(\d{4})\b`)

	textYear       = regexp.MustCompile(`(?i)\bProduction\s*Year\b\s*(\d{4})`)
	textIntroduced = regexp.MustCompile(`(?i)\bIntroduced\b\s*(\d{4})`)
	textTech       = regexp.MustCompile(`(?i)\bTech\s*Base\b\s*(Inner Sphere|Clan)`)

	classSuffix = regexp.MustCompile(`(?i)\s*\((?:DropShip|DropShuttle) class\)\s*$`)
)

func infoboxParams(keys []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(keys))
	for _, k := range keys {
		out = append(out, regexp.MustCompile(`(?im)^\s*\|\s*`+k+`\s*=\s*(.+?)\s*$`))
	}
	return out
}

// infoboxFields reads year and tech from raw wikitext. The first key that
// yields a usable value wins.
func infoboxFields(wikitext string) (*int, *vessel.TechBase) {
	var year *int
	for _, re := range yearParams {
		m := re.FindStringSubmatch(wikitext)
		if m == nil {
			continue
		}
		if y := fourDigits.FindStringSubmatch(m[1]); y != nil {
			n, _ := strconv.Atoi(y[1])
			year = &n
			break
		}
	}

	var tech *vessel.TechBase
	for _, re := range techParams {
		m := re.FindStringSubmatch(wikitext)
		if m == nil {
			continue
		}
		v := strings.ToLower(m[1])
		if strings.Contains(v, "inner sphere") {
			tech = techPtr(vessel.TechInnerSphere)
			break
		}
		if strings.Contains(v, "clan") {
			tech = techPtr(vessel.TechClan)
			break
		}
	}

	return year, tech
}

// textFields is the fallback over rendered page text
func textFields(text string) (*int, *vessel.TechBase) {
	var year *int
	m := textYear.FindStringSubmatch(text)
	if m == nil {
		m = textIntroduced.FindStringSubmatch(text)
	}
	if m != nil {
		n, _ := strconv.Atoi(m[1])
		year = &n
	}

	var tech *vessel.TechBase
	if m := textTech.FindStringSubmatch(text); m != nil {
		if strings.HasPrefix(strings.ToLower(m[1]), "inner") {
			tech = techPtr(vessel.TechInnerSphere)
		} else {
			tech = techPtr(vessel.TechClan)
		}
	}

	return year, tech
}

func techPtr(tb vessel.TechBase) *vessel.TechBase {
	return &tb
}

// NormalizeName turns a page title into a class name
func NormalizeName(title string) string {
	name := norm.NFC.String(title)
	name = classSuffix.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

type rarityBucket struct {
	tier     vessel.RarityTier
	patterns []*regexp.Regexp
}

func compileAll(pats ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(pats))
	for _, p := range pats {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

// Phrases that hint at how many hulls exist. Evidence is reported in this order.
var rarityBuckets = []rarityBucket{
	{vessel.RarityCommon, compileAll(
		`\bmost common\b`,
		`\bamong the most common\b`,
		`\bubiquitous\b`,
		`\bmass[- ]produced\b`,
		`\bproduced in large numbers\b`,
		`\bworkhorse\b`,
		`\bmainstay\b`,
		`\bwidely used\b`,
		`\bcommonly encountered\b`,
		`\bfrequently encountered\b`,
	)},
	{vessel.RarityUncommon, compileAll(
		`\buncommon\b`,
		`\brelatively uncommon\b`,
		`\bless common\b`,
		`\bnot as common\b`,
		`\blimited production\b`,
		`\bproduced in limited numbers\b`,
		`\bbuilt in limited numbers\b`,
		`\bsmall production run\b`,
	)},
	{vessel.RarityVeryRare, compileAll(
		`\bnear extinction\b`,
		`\bneared extinction\b`,
		`\bextinct\b`,
		`\bone[- ]of[- ]a[- ]kind\b`,
		`\bonly\s+\d+\s+(?:were|was)\s+(?:built|constructed|produced)\b`,
		`\bonly\s+\d+\s+(?:built|constructed|produced)\b`,
		`\b(single|sole)\s+(?:example|prototype)\b`,
	)},
	{vessel.RarityRare, compileAll(
		`\bmuch rarer\b`,
		`\brarely encountered\b`,
		`\brarely seen\b`,
		`\brarely used\b`,
		`\bhandful\b`,
		`\bprototype\b`,
		`\bexperimental\b`,
		`\bshort production run\b`,
		`\bfew were built\b`,
		`\bproduced in small numbers\b`,
	)},
}

// Scarcity beats commonness when both match
var rarityPriority = []vessel.RarityTier{
	vessel.RarityVeryRare,
	vessel.RarityRare,
	vessel.RarityUncommon,
	vessel.RarityCommon,
}

const (
	rarityWindow = 4000
	maxEvidence  = 8
)

// GuessRarity scans the description section of an article for scarcity
// phrases. It returns RarityUnknown and no evidence when nothing matches.
func GuessRarity(article string) (vessel.RarityTier, []string) {
	t := strings.ToLower(article)
	if i := strings.Index(t, "description"); i >= 0 {
		t = t[i:]
	}
	t = truncateRunes(t, rarityWindow)

	found := make(map[vessel.RarityTier]bool)
	var evidence []string
	for _, b := range rarityBuckets {
		for _, re := range b.patterns {
			if re.MatchString(t) {
				found[b.tier] = true
				evidence = append(evidence, string(b.tier)+": /"+strings.TrimPrefix(re.String(), "(?i)")+"/")
			}
		}
	}

	for _, tier := range rarityPriority {
		if found[tier] {
			if len(evidence) > maxEvidence {
				evidence = evidence[:maxEvidence]
			}
			return tier, evidence
		}
	}
	return vessel.RarityUnknown, nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
