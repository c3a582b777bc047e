// Package sampler draws vessel classes from a catalog, weighted by rarity
package sampler

import (
	"math/rand/v2"

	"github.com/KirkDiggler/bt-ship-roller/internal/catalog"
	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
)

// Reasons attached to the sampler's sentinel errors
const (
	ReasonNoDataLoaded         = "no_data_loaded"
	ReasonNoEligibleCandidates = "no_eligible_candidates"
)

var (
	// ErrNoDataLoaded means the catalog is empty, so there is nothing to roll on
	ErrNoDataLoaded = errors.FailedPrecondition("no vessel data loaded").WithReason(ReasonNoDataLoaded)

	// ErrNoEligibleCandidates means the filters excluded every record
	ErrNoEligibleCandidates = errors.NotFound("no candidates match the filters").WithReason(ReasonNoEligibleCandidates)
)

// Source supplies uniform floats in [0, 1)
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Config configures a Sampler
type Config struct {
	// Weights defaults to DefaultWeights when nil
	Weights Weights
	// Source defaults to the process-wide math/rand generator
	Source Source
}

// Validate checks the weight table
func (c *Config) Validate() error {
	if c.Weights == nil {
		return nil
	}
	return c.Weights.Validate()
}

// Candidate is an eligible record and its draw weight
type Candidate struct {
	Record vessel.ClassRecord
	Weight float64
}

// Sampler performs weighted draws. It holds no per-draw state and is safe
// for concurrent use when its Source is.
type Sampler struct {
	weights Weights
	src     Source
}

// New creates a sampler. A malformed weight table is an error.
func New(cfg *Config) (*Sampler, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid rarity weights")
	}

	weights := cfg.Weights
	if weights == nil {
		weights = DefaultWeights()
	}
	src := cfg.Source
	if src == nil {
		src = globalSource{}
	}

	return &Sampler{
		weights: weights.Merge(nil),
		src:     src,
	}, nil
}

// Weights returns a copy of the weight table in use
func (s *Sampler) Weights() Weights {
	return s.weights.Merge(nil)
}

// Eligible returns every record passing filter, in catalog order
func (s *Sampler) Eligible(cat *catalog.Catalog, filter Filter) []Candidate {
	var pool []Candidate
	cat.Each(func(r vessel.ClassRecord) {
		if filter.Match(r) {
			pool = append(pool, Candidate{Record: r, Weight: s.weights.For(r.Rarity)})
		}
	})
	return pool
}

// RollOne draws a single record. It returns ErrNoDataLoaded for an empty
// catalog and ErrNoEligibleCandidates when nothing passes the filter.
func (s *Sampler) RollOne(cat *catalog.Catalog, filter Filter) (vessel.ClassRecord, error) {
	if cat.IsEmpty() {
		return vessel.ClassRecord{}, ErrNoDataLoaded
	}

	pool := s.Eligible(cat, filter)
	if len(pool) == 0 {
		return vessel.ClassRecord{}, ErrNoEligibleCandidates
	}

	return s.pick(pool), nil
}

// RollMany draws n records independently. Each draw refilters the full
// catalog, so repeats are expected. A failing draw stops the batch.
func (s *Sampler) RollMany(cat *catalog.Catalog, n int, filter Filter) ([]vessel.ClassRecord, error) {
	if n <= 0 {
		return nil, errors.InvalidArgumentf("count must be positive, got %d", n)
	}

	out := make([]vessel.ClassRecord, 0, n)
	for i := 0; i < n; i++ {
		r, err := s.RollOne(cat, filter)
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Sampler) pick(pool []Candidate) vessel.ClassRecord {
	if len(pool) == 1 {
		return pool[0].Record
	}

	var total float64
	for _, c := range pool {
		total += c.Weight
	}

	target := s.src.Float64() * total
	var acc float64
	for _, c := range pool {
		acc += c.Weight
		if target < acc {
			return c.Record
		}
	}
	// float rounding can leave target == total
	return pool[len(pool)-1].Record
}
