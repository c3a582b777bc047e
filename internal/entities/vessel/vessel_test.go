package vessel_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
)

func TestEraForYear(t *testing.T) {
	testCases := []struct {
		year int
		want string
	}{
		{2004, vessel.EraUnknown},
		{2005, "Age of War"},
		{2570, "Age of War"},
		{2571, "Star League"},
		{3049, "Succession Wars"},
		{3050, "Clan Invasion"},
		{3067, "FedCom Civil War"},
		{3068, "Jihad"},
		{3150, "Dark Age"},
		{3151, "ilClan"},
		{9999, "ilClan"},
		{10000, vessel.EraUnknown},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, vessel.EraForYear(tc.year), "year %d", tc.year)
	}
}

func TestErasAreContiguous(t *testing.T) {
	for i := 1; i < len(vessel.Eras); i++ {
		assert.Equal(t, vessel.Eras[i-1].End+1, vessel.Eras[i].Start, vessel.Eras[i].Name)
	}
}

func TestDescribe(t *testing.T) {
	known := vessel.ClassRecord{
		Name:      "Broadsword",
		TechBase:  vessel.TechClan,
		IntroYear: vessel.Year(3050),
		Rarity:    vessel.RarityRare,
	}
	assert.Equal(t, "Broadsword (intro 3050, Clan Invasion) [Clan, rare]", vessel.Describe(known))

	unknown := vessel.ClassRecord{
		Name:     "Hector",
		TechBase: vessel.TechUnknown,
		Rarity:   vessel.RarityUnknown,
	}
	assert.Equal(t, "Hector (intro year unknown) [Unknown, unknown]", vessel.Describe(unknown))
}

func TestParseTokens(t *testing.T) {
	tb, ok := vessel.ParseTechBase("Inner Sphere")
	assert.True(t, ok)
	assert.Equal(t, vessel.TechInnerSphere, tb)

	tb, ok = vessel.ParseTechBase("clans")
	assert.True(t, ok)
	assert.Equal(t, vessel.TechClan, tb)

	_, ok = vessel.ParseTechBase("periphery")
	assert.False(t, ok)

	rt, ok := vessel.ParseRarity("Very Rare")
	assert.True(t, ok)
	assert.Equal(t, vessel.RarityVeryRare, rt)

	rt, ok = vessel.ParseRarity("")
	assert.True(t, ok)
	assert.Equal(t, vessel.RarityUnknown, rt)
}

func TestPatchJSON(t *testing.T) {
	raw := `{
		"Union": {"year": 2708, "tech": "IS", "rarity": "common", "evidence": ["common: /workhorse/"], "source_url": "https://example/Union"},
		"Ghost": {"year": null, "tech": null, "rarity": "unknown"}
	}`

	var patches map[string]vessel.Patch
	require.NoError(t, json.Unmarshal([]byte(raw), &patches))

	union := patches["Union"]
	require.NotNil(t, union.IntroYear)
	assert.Equal(t, 2708, *union.IntroYear)
	require.NotNil(t, union.TechBase)
	assert.Equal(t, vessel.TechInnerSphere, *union.TechBase)
	require.NotNil(t, union.Rarity)
	assert.Equal(t, vessel.RarityCommon, *union.Rarity)
	assert.Equal(t, []string{"common: /workhorse/"}, union.Evidence)

	ghost := patches["Ghost"]
	assert.True(t, ghost.IsEmpty(), "null and unknown tokens are absent fields")

	out, err := json.Marshal(ghost)
	require.NoError(t, err)
	assert.JSONEq(t, `{"year": null, "tech": null, "rarity": null}`, string(out))
}

func TestClassRecordEntity(t *testing.T) {
	r := &vessel.ClassRecord{Name: "Leopard", Kind: vessel.KindDropShip}
	assert.Equal(t, "Leopard", r.GetID())
	assert.Equal(t, "dropship", r.GetType())

	withYear := vessel.ClassRecord{Name: "Union", IntroYear: vessel.Year(2708)}
	clone := withYear.Clone()
	*clone.IntroYear = 1
	assert.Equal(t, 2708, *withYear.IntroYear)
}

func TestOverrideLayerNames(t *testing.T) {
	layer := vessel.NewOverrideLayer("local")
	layer.Patches["union"] = vessel.Patch{}
	layer.Patches["Argo"] = vessel.Patch{}
	layer.Patches["Leopard"] = vessel.Patch{}

	assert.Equal(t, []string{"Argo", "Leopard", "union"}, layer.Names())
	assert.Equal(t, 3, layer.Len())

	var nilLayer *vessel.OverrideLayer
	assert.Equal(t, 0, nilLayer.Len())
}
