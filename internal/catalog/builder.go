package catalog

import (
	"sort"

	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
)

// Build merges override layers onto base records, lowest priority first.
//
// A patch only overwrites the fields it sets. Patches naming a class that is
// not in base are skipped and listed in the report; layers never add or
// remove records. Nil layers are absent sources and are skipped. When base
// repeats a name the later record wins. Inputs are not modified.
func Build(base []vessel.ClassRecord, layers ...*vessel.OverrideLayer) *Catalog {
	byName := make(map[string]vessel.ClassRecord, len(base))
	for _, r := range base {
		byName[r.Name] = r.Clone()
	}

	report := Report{BaseRecords: len(byName)}
	for _, layer := range layers {
		if layer == nil {
			continue
		}

		lr := LayerReport{Name: layer.Name, Patches: layer.Len()}
		for _, name := range layer.Names() {
			rec, ok := byName[name]
			if !ok {
				lr.Unknown = append(lr.Unknown, name)
				continue
			}
			byName[name] = applyPatch(rec, layer.Patches[name])
			lr.Applied = append(lr.Applied, name)
		}
		report.Layers = append(report.Layers, lr)
	}

	records := make([]vessel.ClassRecord, 0, len(byName))
	for _, r := range byName {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		return lessName(records[i].Name, records[j].Name)
	})

	index := make(map[string]int, len(records))
	for i := range records {
		index[records[i].GetID()] = i
	}

	return &Catalog{
		records: records,
		index:   index,
		report:  report,
	}
}

func applyPatch(rec vessel.ClassRecord, p vessel.Patch) vessel.ClassRecord {
	if p.IntroYear != nil {
		rec.IntroYear = vessel.Year(*p.IntroYear)
	}
	if p.TechBase != nil {
		rec.TechBase = *p.TechBase
	}
	if p.Rarity != nil {
		rec.Rarity = *p.Rarity
	}
	return rec
}

// BaseFromLayer turns a scraped layer into base records. Missing tech and
// rarity become Unknown; a missing year stays unknown.
func BaseFromLayer(kind vessel.Kind, layer *vessel.OverrideLayer) []vessel.ClassRecord {
	if layer == nil {
		return nil
	}

	records := make([]vessel.ClassRecord, 0, layer.Len())
	for _, name := range layer.Names() {
		p := layer.Patches[name]
		rec := vessel.ClassRecord{
			Name:     name,
			Kind:     kind,
			TechBase: vessel.TechUnknown,
			Rarity:   vessel.RarityUnknown,
		}
		records = append(records, applyPatch(rec, p))
	}
	return records
}
