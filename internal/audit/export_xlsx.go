package audit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/KirkDiggler/bt-ship-roller/internal/catalog"
	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
)

// Sheet names in the exported workbook
const (
	SheetClasses = "Classes"
	SheetSummary = "Summary"
)

// ExportXLSX writes the catalog and its audit to an .xlsx workbook: a
// Classes sheet with one row per record and a Summary sheet with the counts
// and unknown override names
func ExportXLSX(path string, cat *catalog.Catalog, rep Report) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create %s", dir)
		}
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetClasses); err != nil {
		return errors.Wrap(err, "failed to name classes sheet")
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return errors.Wrap(err, "failed to add summary sheet")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return errors.Wrap(err, "failed to create header style")
	}

	if err := writeClasses(f, cat, headerStyle); err != nil {
		return err
	}
	if err := writeSummary(f, rep, headerStyle); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "failed to save %s", path)
	}
	return nil
}

func writeClasses(f *excelize.File, cat *catalog.Catalog, headerStyle int) error {
	headers := []string{"Name", "Tech", "Intro Year", "Era", "Rarity"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SheetClasses, cell, h)
	}
	if err := f.SetCellStyle(SheetClasses, "A1", "E1", headerStyle); err != nil {
		return errors.Wrap(err, "failed to style header")
	}

	row := 2
	cat.Each(func(r vessel.ClassRecord) {
		f.SetCellValue(SheetClasses, fmt.Sprintf("A%d", row), r.Name)
		f.SetCellValue(SheetClasses, fmt.Sprintf("B%d", row), string(r.TechBase))
		if r.IntroYear != nil {
			f.SetCellValue(SheetClasses, fmt.Sprintf("C%d", row), *r.IntroYear)
			f.SetCellValue(SheetClasses, fmt.Sprintf("D%d", row), vessel.EraForYear(*r.IntroYear))
		}
		f.SetCellValue(SheetClasses, fmt.Sprintf("E%d", row), string(r.Rarity))
		row++
	})

	if err := f.SetColWidth(SheetClasses, "A", "A", 28); err != nil {
		return errors.Wrap(err, "failed to size columns")
	}
	if err := f.SetColWidth(SheetClasses, "B", "E", 16); err != nil {
		return errors.Wrap(err, "failed to size columns")
	}
	return nil
}

func writeSummary(f *excelize.File, rep Report, headerStyle int) error {
	row := 1
	put := func(label string, value any) {
		f.SetCellValue(SheetSummary, fmt.Sprintf("A%d", row), label)
		f.SetCellValue(SheetSummary, fmt.Sprintf("B%d", row), value)
		row++
	}
	section := func(title string) {
		row++
		f.SetCellValue(SheetSummary, fmt.Sprintf("A%d", row), title)
		_ = f.SetCellStyle(SheetSummary, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
		row++
	}

	put("Total classes", rep.TotalClasses)
	put("Overrides loaded", rep.OverridesLoaded)
	put("Missing intro year", rep.MissingYear)

	section("Tech")
	for _, c := range rep.TechCounts {
		put(c.Label, c.N)
	}

	section("Rarity")
	for _, c := range rep.RarityCounts {
		put(c.Label, c.N)
	}

	for _, l := range rep.Layers {
		if len(l.Unknown) == 0 {
			continue
		}
		section("Unknown names in " + l.Name)
		for _, u := range l.Unknown {
			put(u.Name, u.Suggestion)
		}
	}

	if err := f.SetColWidth(SheetSummary, "A", "B", 28); err != nil {
		return errors.Wrap(err, "failed to size columns")
	}
	return nil
}
