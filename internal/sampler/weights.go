package sampler

import (
	"math"

	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
)

// Weights maps a rarity tier to its relative draw weight
type Weights map[vessel.RarityTier]float64

// DefaultWeights returns the standard table. Very rare classes are meant to
// show up a handful of times per thousand rolls at most.
func DefaultWeights() Weights {
	return Weights{
		vessel.RarityCommon:   10,
		vessel.RarityUncommon: 3,
		vessel.RarityRare:     1,
		vessel.RarityVeryRare: 0.05,
		vessel.RarityUnknown:  1,
	}
}

// PrimitiveWeights returns the table for primitive JumpShips. Most primitive
// hulls were scrapped or lost long before play, so anything below common is
// steeply discounted.
func PrimitiveWeights() Weights {
	return Weights{
		vessel.RarityCommon:   1,
		vessel.RarityUncommon: 0.6,
		vessel.RarityRare:     0.01,
		vessel.RarityVeryRare: 0.005,
		vessel.RarityUnknown:  0.07,
	}
}

// For returns the weight of a tier, 1.0 when the table has no entry
func (w Weights) For(tier vessel.RarityTier) float64 {
	if v, ok := w[tier]; ok {
		return v
	}
	return 1.0
}

// Validate rejects weights that cannot take part in a draw
func (w Weights) Validate() error {
	vb := errors.NewValidationBuilder()

	for _, tier := range vessel.RarityTiers {
		v, ok := w[tier]
		if !ok {
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			vb.Fieldf(string(tier), "weight must be a positive finite number, got %v", v)
		}
	}
	for tier := range w {
		if _, ok := vessel.ParseRarity(string(tier)); !ok {
			vb.InvalidField(string(tier), "unknown rarity tier")
		}
	}

	return vb.Build()
}

// Merge returns a copy of w with the entries of o laid over it
func (w Weights) Merge(o Weights) Weights {
	out := make(Weights, len(w)+len(o))
	for k, v := range w {
		out[k] = v
	}
	for k, v := range o {
		out[k] = v
	}
	return out
}
