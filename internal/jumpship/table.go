// Package jumpship rolls JumpShip classes from the fixed 3025-era d100 table
package jumpship

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
)

// EntityType is the entity type of every rolled JumpShip
const EntityType = "jumpship"

// Class names on the main table
const (
	ClassInvader  = "Invader"
	ClassMerchant = "Merchant"
	ClassScout    = "Scout"
	ClassStarLord = "Star Lord"
	ClassMonolith = "Monolith"
)

// Class names in the minor bucket
const (
	MinorTramp     = "Tramp"
	MinorLeviathan = "Leviathan"
	MinorLiberty   = "Liberty"
	MinorUma       = "Uma"
	MinorOther     = "Other minor (your pick)"
)

type band struct {
	max   int
	class string
}

// Cumulative upper bounds on a d100
var mainTable = []band{
	{46, ClassInvader},
	{78, ClassMerchant},
	{89, ClassScout},
	{94, ClassStarLord},
	{97, ClassMonolith},
}

// d6 results 1-6
var minorTable = [6]string{MinorTramp, MinorTramp, MinorLeviathan, MinorLiberty, MinorUma, MinorOther}

// Result is one rolled JumpShip
type Result struct {
	Class string
	Minor bool
	D100  int
	// D6 is zero unless the d100 landed in the minor bucket
	D6 int
}

var _ core.Entity = (*Result)(nil)

// GetID returns the class name
func (r *Result) GetID() string {
	return r.Class
}

// GetType returns EntityType
func (r *Result) GetType() string {
	return EntityType
}

// String renders the result line, e.g. "Merchant" or "Uma (minor bucket)"
func (r Result) String() string {
	if r.Minor {
		return r.Class + " (minor bucket)"
	}
	return r.Class
}

// NeedsMinorRoll reports whether a d100 result falls in the minor bucket
func NeedsMinorRoll(d100 int) bool {
	return d100 > mainTable[len(mainTable)-1].max
}

// ClassForRoll maps dice to a class. d6 is only read for the minor bucket.
func ClassForRoll(d100, d6 int) (Result, error) {
	if d100 < 1 || d100 > 100 {
		return Result{}, errors.InvalidArgumentf("d100 out of range: %d", d100)
	}

	for _, b := range mainTable {
		if d100 <= b.max {
			return Result{Class: b.class, D100: d100}, nil
		}
	}

	if d6 < 1 || d6 > 6 {
		return Result{}, errors.InvalidArgumentf("d6 out of range: %d", d6)
	}
	return Result{Class: minorTable[d6-1], Minor: true, D100: d100, D6: d6}, nil
}

// Table rolls JumpShip classes
type Table struct {
	roller dice.Roller
}

// NewTable creates a table. A nil roller uses dice.DefaultRoller.
func NewTable(roller dice.Roller) *Table {
	if roller == nil {
		roller = dice.DefaultRoller
	}
	return &Table{roller: roller}
}

// Roll rolls one JumpShip: a d100, then a d6 only for the minor bucket
func (t *Table) Roll() (Result, error) {
	d100, err := t.roller.Roll(100)
	if err != nil {
		return Result{}, errors.Wrap(err, "failed to roll d100")
	}

	var d6 int
	if NeedsMinorRoll(d100) {
		d6, err = t.roller.Roll(6)
		if err != nil {
			return Result{}, errors.Wrap(err, "failed to roll d6")
		}
	}

	return ClassForRoll(d100, d6)
}

// RollMany rolls n independent JumpShips
func (t *Table) RollMany(n int) ([]Result, error) {
	if n <= 0 {
		return nil, errors.InvalidArgumentf("count must be positive, got %d", n)
	}

	out := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		r, err := t.Roll()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
