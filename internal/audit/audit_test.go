package audit_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/KirkDiggler/bt-ship-roller/internal/audit"
	"github.com/KirkDiggler/bt-ship-roller/internal/catalog"
	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/testutils"
)

func auditedCatalog() *catalog.Catalog {
	common := vessel.RarityCommon
	layer := vessel.NewOverrideLayer("manual")
	layer.Patches["Union"] = vessel.Patch{Rarity: &common}
	layer.Patches["Leopardd"] = vessel.Patch{Rarity: &common}
	layer.Patches["Battlestar Galactica"] = vessel.Patch{Rarity: &common}

	return catalog.Build(testutils.DropShipRecords(), layer)
}

func TestBuild(t *testing.T) {
	rep := audit.Build(vessel.KindDropShip, auditedCatalog())

	assert.Equal(t, 6, rep.TotalClasses)
	assert.Equal(t, 3, rep.OverridesLoaded)
	assert.Equal(t, 2, rep.MissingYear)
	assert.Equal(t, []audit.Count{
		{Label: "IS", N: 3},
		{Label: "Clan", N: 1},
		{Label: "Unknown", N: 2},
	}, rep.TechCounts)
	assert.Equal(t, []audit.Count{
		{Label: "common", N: 2},
		{Label: "uncommon", N: 1},
		{Label: "rare", N: 1},
		{Label: "very_rare", N: 1},
		{Label: "unknown", N: 1},
	}, rep.RarityCounts)

	require.Len(t, rep.Layers, 1)
	layer := rep.Layers[0]
	assert.Equal(t, 1, layer.Applied)
	require.Len(t, layer.Unknown, 2)

	assert.Equal(t, "Battlestar Galactica", layer.Unknown[0].Name)
	assert.Empty(t, layer.Unknown[0].Suggestion)

	assert.Equal(t, "Leopardd", layer.Unknown[1].Name)
	assert.Equal(t, "Leopard", layer.Unknown[1].Suggestion)
	assert.Equal(t, 1, layer.Unknown[1].Distance)
}

type layerSource struct {
	layer *vessel.OverrideLayer
}

func (l layerSource) Load(context.Context) (*vessel.OverrideLayer, error) {
	return l.layer, nil
}

func TestBuildCountsScrapedBaseLayer(t *testing.T) {
	scraped := vessel.NewOverrideLayer("scraped")
	scraped.Patches["Union"] = vessel.Patch{IntroYear: vessel.Year(2708)}
	scraped.Patches["Leopard"] = vessel.Patch{IntroYear: vessel.Year(2537)}
	scraped.Patches["Overlord"] = vessel.Patch{}

	common := vessel.RarityCommon
	local := vessel.NewOverrideLayer("local")
	local.Patches["Union"] = vessel.Patch{Rarity: &common}

	loader, err := catalog.NewLoader(&catalog.LoaderConfig{
		Kind:      vessel.KindDropShip,
		BaseLayer: layerSource{layer: scraped},
		Layers:    []catalog.LayerSource{layerSource{layer: local}},
	})
	require.NoError(t, err)
	cat, err := loader.Load(context.Background())
	require.NoError(t, err)

	rep := audit.Build(vessel.KindDropShip, cat)

	assert.Equal(t, 3, rep.TotalClasses)
	assert.Equal(t, 3, rep.OverridesLoaded)
	require.Len(t, rep.Layers, 2)
	assert.Equal(t, audit.LayerAudit{Name: "scraped", Patches: 3, Applied: 3}, rep.Layers[0])
	assert.Equal(t, audit.LayerAudit{Name: "local", Patches: 1, Applied: 1}, rep.Layers[1])

	var buf bytes.Buffer
	require.NoError(t, rep.WriteText(&buf))
	assert.Contains(t, buf.String(), "Overrides loaded: 3\n")
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, audit.Build(vessel.KindDropShip, auditedCatalog()).WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "Total classes in DB: 6\n")
	assert.Contains(t, out, "Overrides loaded: 3\n")
	assert.Contains(t, out, "Missing intro year: 2\n")
	assert.Contains(t, out, "Tech counts: {IS: 3, Clan: 1, Unknown: 2}\n")
	assert.Contains(t, out, "Layer manual: 3 patches, 1 applied, 2 unknown\n")
	assert.Contains(t, out, "  - Leopardd (did you mean Leopard?)\n")
	assert.Contains(t, out, "  - Battlestar Galactica\n")
}

func TestBuildEmpty(t *testing.T) {
	rep := audit.Build(vessel.KindDropShip, catalog.Build(nil))
	assert.Zero(t, rep.TotalClasses)
	assert.Empty(t, rep.TechCounts)

	var buf bytes.Buffer
	require.NoError(t, rep.WriteText(&buf))
	assert.Contains(t, buf.String(), "Tech counts: {}")
}

func TestExportXLSX(t *testing.T) {
	cat := auditedCatalog()
	rep := audit.Build(vessel.KindDropShip, cat)
	path := filepath.Join(t.TempDir(), "audit", "dropships.xlsx")

	require.NoError(t, audit.ExportXLSX(path, cat, rep))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{audit.SheetClasses, audit.SheetSummary}, f.GetSheetList())

	rows, err := f.GetRows(audit.SheetClasses)
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, []string{"Name", "Tech", "Intro Year", "Era", "Rarity"}, rows[0])

	// catalog order: Argo first, with no year or era
	assert.Equal(t, "Argo", rows[1][0])
	broadsword := rows[2]
	assert.Equal(t, []string{"Broadsword", "Clan", "3050", "Clan Invasion", "rare"}, broadsword)

	total, err := f.GetCellValue(audit.SheetSummary, "B1")
	require.NoError(t, err)
	assert.Equal(t, "6", total)
}
