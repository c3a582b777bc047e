package testutils

import (
	"github.com/KirkDiggler/bt-ship-roller/internal/catalog"
	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
)

// DropShipRecords is a small mixed DropShip table covering both tech bases,
// unknown years, and every rarity tier
func DropShipRecords() []vessel.ClassRecord {
	return []vessel.ClassRecord{
		{Name: "Union", Kind: vessel.KindDropShip, TechBase: vessel.TechInnerSphere, IntroYear: vessel.Year(2708), Rarity: vessel.RarityCommon},
		{Name: "Leopard", Kind: vessel.KindDropShip, TechBase: vessel.TechInnerSphere, IntroYear: vessel.Year(2537), Rarity: vessel.RarityCommon},
		{Name: "Overlord", Kind: vessel.KindDropShip, TechBase: vessel.TechInnerSphere, IntroYear: vessel.Year(2762), Rarity: vessel.RarityUncommon},
		{Name: "Broadsword", Kind: vessel.KindDropShip, TechBase: vessel.TechClan, IntroYear: vessel.Year(3050), Rarity: vessel.RarityRare},
		{Name: "Argo", Kind: vessel.KindDropShip, TechBase: vessel.TechUnknown, Rarity: vessel.RarityVeryRare},
		{Name: "Hector", Kind: vessel.KindDropShip, TechBase: vessel.TechUnknown, Rarity: vessel.RarityUnknown},
	}
}

// DropShipCatalog builds a catalog from DropShipRecords with no overrides
func DropShipCatalog() *catalog.Catalog {
	return catalog.Build(DropShipRecords())
}
