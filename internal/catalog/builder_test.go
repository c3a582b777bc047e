package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/bt-ship-roller/internal/catalog"
	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
)

func rarity(r vessel.RarityTier) *vessel.RarityTier { return &r }
func tech(t vessel.TechBase) *vessel.TechBase       { return &t }

func baseRecords() []vessel.ClassRecord {
	return []vessel.ClassRecord{
		{Name: "X", Kind: vessel.KindDropShip, TechBase: vessel.TechInnerSphere, IntroYear: vessel.Year(2500), Rarity: vessel.RarityUnknown},
		{Name: "Union", Kind: vessel.KindDropShip, TechBase: vessel.TechInnerSphere, IntroYear: vessel.Year(2708), Rarity: vessel.RarityCommon},
		{Name: "argo", Kind: vessel.KindDropShip, TechBase: vessel.TechUnknown, Rarity: vessel.RarityUnknown},
	}
}

func TestBuild_OverridePrecedence(t *testing.T) {
	layer1 := vessel.NewOverrideLayer("scraped")
	layer1.Patches["X"] = vessel.Patch{Rarity: rarity(vessel.RarityRare)}

	layer2 := vessel.NewOverrideLayer("local")
	layer2.Patches["X"] = vessel.Patch{TechBase: tech(vessel.TechClan)}

	cat := catalog.Build(baseRecords(), layer1, layer2)

	x, ok := cat.Get("X")
	require.True(t, ok)
	assert.Equal(t, vessel.RarityRare, x.Rarity, "layer2 sets no rarity so layer1 stands")
	assert.Equal(t, vessel.TechClan, x.TechBase)
	require.NotNil(t, x.IntroYear)
	assert.Equal(t, 2500, *x.IntroYear)
}

func TestBuild_LaterLayerWins(t *testing.T) {
	layer1 := vessel.NewOverrideLayer("scraped")
	layer1.Patches["Union"] = vessel.Patch{IntroYear: vessel.Year(2700), Rarity: rarity(vessel.RarityRare)}
	layer2 := vessel.NewOverrideLayer("local")
	layer2.Patches["Union"] = vessel.Patch{IntroYear: vessel.Year(2710)}

	cat := catalog.Build(baseRecords(), layer1, layer2)
	union, _ := cat.Get("Union")
	assert.Equal(t, 2710, *union.IntroYear)
	assert.Equal(t, vessel.RarityRare, union.Rarity)
}

func TestBuild_UnknownNameIsNoOp(t *testing.T) {
	ghost := vessel.NewOverrideLayer("local")
	ghost.Patches["Ghost"] = vessel.Patch{Rarity: rarity(vessel.RarityCommon), IntroYear: vessel.Year(3000)}

	without := catalog.Build(baseRecords())
	with := catalog.Build(baseRecords(), ghost)

	assert.Equal(t, without.Records(), with.Records())
	_, ok := with.Get("Ghost")
	assert.False(t, ok)

	report := with.Report()
	require.Len(t, report.Layers, 1)
	assert.Equal(t, []string{"Ghost"}, report.Layers[0].Unknown)
	assert.Empty(t, report.Layers[0].Applied)
}

func TestBuild_Deterministic(t *testing.T) {
	layer := vessel.NewOverrideLayer("local")
	layer.Patches["argo"] = vessel.Patch{Rarity: rarity(vessel.RarityVeryRare)}
	layer.Patches["Union"] = vessel.Patch{TechBase: tech(vessel.TechInnerSphere)}

	first := catalog.Build(baseRecords(), layer)
	for i := 0; i < 20; i++ {
		again := catalog.Build(baseRecords(), layer)
		assert.Equal(t, first.Records(), again.Records())
		assert.Equal(t, first.Report(), again.Report())
	}
	assert.Equal(t, []string{"argo", "Union", "X"}, first.Names())
}

func TestBuild_DoesNotMutateInputs(t *testing.T) {
	base := baseRecords()
	layer := vessel.NewOverrideLayer("local")
	layer.Patches["X"] = vessel.Patch{IntroYear: vessel.Year(3100)}

	cat := catalog.Build(base, layer)
	assert.Equal(t, 2500, *base[0].IntroYear)

	x, _ := cat.Get("X")
	*x.IntroYear = 1
	again, _ := cat.Get("X")
	assert.Equal(t, 3100, *again.IntroYear, "Get returns a copy")
}

func TestBuild_EmptyBase(t *testing.T) {
	layer := vessel.NewOverrideLayer("local")
	layer.Patches["League"] = vessel.Patch{IntroYear: vessel.Year(2750)}

	cat := catalog.Build(nil, layer, nil)
	assert.True(t, cat.IsEmpty())
	assert.Equal(t, 0, cat.Len())
	assert.Equal(t, []string{"League"}, cat.Report().Layers[0].Unknown)
}

func TestBaseFromLayer(t *testing.T) {
	scraped := vessel.NewOverrideLayer("scraped")
	scraped.Patches["Union"] = vessel.Patch{IntroYear: vessel.Year(2708), TechBase: tech(vessel.TechInnerSphere), Rarity: rarity(vessel.RarityCommon)}
	scraped.Patches["Mystery"] = vessel.Patch{}

	records := catalog.BaseFromLayer(vessel.KindDropShip, scraped)
	require.Len(t, records, 2)

	assert.Equal(t, "Mystery", records[0].Name)
	assert.Equal(t, vessel.TechUnknown, records[0].TechBase)
	assert.Equal(t, vessel.RarityUnknown, records[0].Rarity)
	assert.Nil(t, records[0].IntroYear)
	assert.Equal(t, vessel.KindDropShip, records[0].Kind)

	assert.Equal(t, "Union", records[1].Name)
	assert.Equal(t, vessel.RarityCommon, records[1].Rarity)

	assert.Nil(t, catalog.BaseFromLayer(vessel.KindDropShip, nil))
}

func TestStoreSwap(t *testing.T) {
	first := catalog.Build(baseRecords())
	store := catalog.NewStore(first)
	assert.Same(t, first, store.Catalog())

	second := catalog.Build(nil)
	prev := store.Swap(second)
	assert.Same(t, first, prev)
	assert.True(t, store.Catalog().IsEmpty())
}
