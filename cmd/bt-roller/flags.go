package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
	"github.com/KirkDiggler/bt-ship-roller/internal/handlers/roller/v1alpha1"
	"github.com/KirkDiggler/bt-ship-roller/internal/sampler"
)

// filterFlags are the catalog filter options shared by local and remote rolls
type filterFlags struct {
	tech                 string
	year                 int
	strictYear           bool
	rarity               string
	includeUnknownTech   bool
	includeUnknownRarity bool

	cmd *cobra.Command
}

func (f *filterFlags) register(cmd *cobra.Command) {
	f.cmd = cmd
	fs := cmd.Flags()
	fs.StringVar(&f.tech, "tech", "any", "tech base: IS, Clan or any")
	fs.IntVar(&f.year, "year", 0, "only classes introduced in or before this year")
	fs.BoolVar(&f.strictYear, "strict-year", false, "with --year, drop classes whose intro year is unknown")
	fs.StringVar(&f.rarity, "rarity", "any", "rarity mode: common (1), common_uncommon (2) or any (3)")
	fs.BoolVar(&f.includeUnknownTech, "include-unknown-tech", true, "keep unknown-tech classes under a tech filter")
	fs.BoolVar(&f.includeUnknownRarity, "include-unknown-rarity", false,
		"keep unknown-rarity classes under a rarity filter (always on for --rarity any)")
}

func (f *filterFlags) filter() (sampler.Filter, error) {
	out := sampler.AnyFilter()
	vb := errors.NewValidationBuilder()

	tech, ok := sampler.ParseTechFilter(f.tech)
	if !ok {
		vb.InvalidField("tech", "must be IS, Clan or any")
	}
	rarity, ok := sampler.ParseRarityPolicy(f.rarity)
	if !ok {
		vb.InvalidField("rarity", "must be common, common_uncommon or any")
	}
	if err := vb.Build(); err != nil {
		return out, err
	}

	out.Tech = tech
	out.Rarity = rarity
	if tech != sampler.TechAny {
		out.IncludeUnknownTech = f.includeUnknownTech
	}
	if rarity != sampler.RarityAny {
		out.IncludeUnknownRarity = f.includeUnknownRarity
	}
	if f.cmd.Flags().Changed("year") {
		out.Year = vessel.Year(f.year)
		out.StrictYear = f.strictYear
	}
	return out, nil
}

func (f *filterFlags) wire() (*v1alpha1.Filter, error) {
	filter, err := f.filter()
	if err != nil {
		return nil, err
	}

	out := &v1alpha1.Filter{
		Tech:                 string(filter.Tech),
		StrictYear:           filter.StrictYear,
		Rarity:               string(filter.Rarity),
		IncludeUnknownTech:   &filter.IncludeUnknownTech,
		IncludeUnknownRarity: &filter.IncludeUnknownRarity,
	}
	if filter.Year != nil {
		y := int32(*filter.Year)
		out.Year = &y
	}
	return out, nil
}
