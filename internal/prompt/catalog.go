package prompt

import (
	"context"
	"strconv"

	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
	"github.com/KirkDiggler/bt-ship-roller/internal/orchestrators/roller"
	"github.com/KirkDiggler/bt-ship-roller/internal/sampler"
)

// NoCandidatesLine replaces each result when the filters leave nothing
const NoCandidatesLine = "No candidates (filters too strict)."

// catalogTable words one catalog dialogue
type catalogTable struct {
	table  roller.Table
	title  string
	name   string
	noun   string
	prefix string
	// hint follows the no-data notice
	hint string
}

var (
	dropShipTable = catalogTable{
		table:  roller.TableDropShip,
		title:  "DropShip Class Roller (weighted)",
		name:   "DropShip",
		noun:   "DropShips",
		prefix: "DS",
		hint:   "Run 'bt-roller scrape' to build the DropShip override data, then run this again.\n",
	}
	primitiveTable = catalogTable{
		table:  roller.TablePrimitiveJumpShip,
		title:  "Primitive JumpShip Class Roller (weighted)",
		name:   "primitive JumpShip",
		noun:   "primitive JumpShips",
		prefix: "PJ",
		hint:   "The embedded primitive JumpShip table is empty; check the build.\n",
	}
)

// DropShips runs the DropShip filter dialogue and roll loop
func (p *Prompt) DropShips(ctx context.Context) error {
	return p.catalogRoller(ctx, dropShipTable)
}

// PrimitiveJumpShips runs the primitive JumpShip filter dialogue and roll loop
func (p *Prompt) PrimitiveJumpShips(ctx context.Context) error {
	return p.catalogRoller(ctx, primitiveTable)
}

func (p *Prompt) catalogRoller(ctx context.Context, t catalogTable) error {
	p.println(t.title)
	p.printf("Type 'q' at any prompt to quit.\n\n")

	audit, err := p.roller.Audit(ctx, &roller.AuditInput{Table: t.table})
	if err != nil {
		return err
	}
	if audit.Report.TotalClasses == 0 {
		p.noData(t)
		return nil
	}

	filter, err := p.askFilter(t)
	if err != nil {
		return p.terminate(err)
	}

	p.printf("\n--- Ready ---\n\n")

	err = p.rollLoop(
		"How many "+t.noun+" do you want to roll? ",
		"Roll again with same filters? (y/n) ",
		func(n int) error {
			return p.rollCatalog(ctx, t, filter, n)
		},
	)
	if errors.Is(err, sampler.ErrNoDataLoaded) {
		p.noData(t)
		return nil
	}
	return p.terminate(err)
}

func (p *Prompt) rollCatalog(ctx context.Context, t catalogTable, filter sampler.Filter, n int) error {
	input := &roller.RollInput{Filter: filter, Count: n}

	var out *roller.RollOutput
	var err error
	if t.table == roller.TablePrimitiveJumpShip {
		out, err = p.roller.RollPrimitiveJumpShips(ctx, input)
	} else {
		out, err = p.roller.RollDropShips(ctx, input)
	}

	if errors.Is(err, sampler.ErrNoEligibleCandidates) {
		for i := 1; i <= n; i++ {
			p.printf("%s-%02d: %s\n", t.prefix, i, NoCandidatesLine)
		}
		return nil
	}
	if err != nil {
		return err
	}

	for i, r := range out.Results {
		p.printf("%s-%02d: %s\n", t.prefix, i+1, r.Line)
	}
	return nil
}

func (p *Prompt) noData(t catalogTable) {
	p.printf("No %s data loaded.\n", t.name)
	p.println(t.hint)
}

// askFilter walks the filter questions. Follow-up questions are only asked
// when the previous answer makes them matter.
func (p *Prompt) askFilter(t catalogTable) (sampler.Filter, error) {
	filter := sampler.AnyFilter()

	raw, err := p.ask("Tech base? (IS / Clan / Any) [Any]: ")
	if err != nil {
		return filter, err
	}
	// unrecognised answers fall back to Any
	filter.Tech, _ = sampler.ParseTechFilter(raw)

	if filter.Tech != sampler.TechAny {
		filter.IncludeUnknownTech, err = p.askYesNo("Include 'Unknown tech' "+t.noun+" in this tech filter? (y/n) [y]: ", true)
		if err != nil {
			return filter, err
		}
	}

	raw, err = p.ask("Filter by in-universe year? (blank = no filter): ")
	if err != nil {
		return filter, err
	}
	if raw != "" {
		if year, convErr := strconv.Atoi(raw); convErr == nil {
			filter.Year = vessel.Year(year)
			p.printf("Year %d => era: %s\n", year, vessel.EraForYear(year))
		} else {
			p.println("Invalid year; continuing with no year filter.")
		}
	}

	if filter.Year != nil {
		filter.StrictYear, err = p.askYesNo("Strict year filter? (exclude unknown-year designs) (y/n) [n]: ", false)
		if err != nil {
			return filter, err
		}
	}

	p.println("\nRarity mode:")
	p.println("  1) common only")
	p.println("  2) common + uncommon")
	p.println("  3) any (includes rare + very rare + unknown)")
	raw, err = p.ask("Choose 1/2/3 [3]: ")
	if err != nil {
		return filter, err
	}
	switch raw {
	case "1":
		filter.Rarity = sampler.RarityCommonOnly
	case "2":
		filter.Rarity = sampler.RarityCommonAndUncommon
	default:
		filter.Rarity = sampler.RarityAny
	}

	if filter.Rarity != sampler.RarityAny {
		filter.IncludeUnknownRarity, err = p.askYesNo("Include 'Unknown rarity' "+t.noun+" in this rarity filter? (y/n) [n]: ", false)
		if err != nil {
			return filter, err
		}
	}

	return filter, nil
}
