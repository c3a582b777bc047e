// Package catalog builds the read-only vessel tables the rollers sample from
package catalog

import (
	"strings"

	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
)

// Catalog is an immutable, name-keyed table of class records
type Catalog struct {
	records []vessel.ClassRecord
	index   map[string]int
	report  Report
}

// LayerReport records what one override layer did to the catalog
type LayerReport struct {
	Name    string
	Patches int
	Applied []string
	// Unknown lists patched names with no matching record; they were ignored
	Unknown []string
}

// Report describes how a catalog was built
type Report struct {
	BaseRecords int
	// BaseLayer is the layer whose patches became base records, nil when the
	// base came from static records or the layer was absent
	BaseLayer *LayerReport
	Layers    []LayerReport
}

// Len returns the number of records
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// IsEmpty reports whether there is no data to roll on
func (c *Catalog) IsEmpty() bool {
	return c.Len() == 0
}

// Get looks a record up by exact name
func (c *Catalog) Get(name string) (vessel.ClassRecord, bool) {
	if c == nil {
		return vessel.ClassRecord{}, false
	}
	i, ok := c.index[name]
	if !ok {
		return vessel.ClassRecord{}, false
	}
	return c.records[i].Clone(), true
}

// Records returns a copy of all records in case-insensitive name order
func (c *Catalog) Records() []vessel.ClassRecord {
	if c == nil {
		return nil
	}
	out := make([]vessel.ClassRecord, len(c.records))
	for i, r := range c.records {
		out[i] = r.Clone()
	}
	return out
}

// Names returns all class names in catalog order
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.records))
	for i, r := range c.records {
		names[i] = r.Name
	}
	return names
}

// Report returns the build report
func (c *Catalog) Report() Report {
	if c == nil {
		return Report{}
	}
	return c.report
}

// Each visits every record in order. The record is a copy.
func (c *Catalog) Each(fn func(r vessel.ClassRecord)) {
	if c == nil {
		return
	}
	for _, r := range c.records {
		fn(r.Clone())
	}
}

func lessName(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la == lb {
		return a < b
	}
	return la < lb
}
