// Package deficiency keeps the regional soil-deficiency reference table
// and answers region lookups.
package deficiency

import (
	"strings"

	"github.com/agrosense/fertadvisor/pkg/nutrient"
	"github.com/gnames/gnlib"
)

// Row is one region of the reference table.
type Row struct {
	// Region is the name of a state or union territory.
	Region string
	// Profile holds statuses in N, P, K, OC, B, Cu, Fe, Mn, S, Zn order.
	Profile nutrient.Profile
}

// ParseRow cleans raw cells of a table record and converts them to a Row.
func ParseRow(region string, labels []string) (Row, error) {
	var res Row
	region = strings.TrimSpace(gnlib.FixUtf8(region))
	if region == "" {
		return res, EmptyRegionError()
	}
	clean := make([]string, len(labels))
	for i, v := range labels {
		clean[i] = gnlib.FixUtf8(v)
	}
	p, err := nutrient.NewProfile(clean)
	if err != nil {
		return res, RowError(region, err)
	}
	res.Region = region
	res.Profile = p
	return res, nil
}

// Table is an immutable region to profile index. It is safe for
// concurrent reads.
type Table struct {
	rows  []Row
	index map[string]int
}

// New builds a Table. Duplicate or empty region names are rejected.
func New(rows []Row) (*Table, error) {
	res := Table{
		rows:  make([]Row, 0, len(rows)),
		index: make(map[string]int, len(rows)),
	}
	for _, v := range rows {
		if v.Region == "" {
			return nil, EmptyRegionError()
		}
		if _, ok := res.index[v.Region]; ok {
			return nil, DuplicateRegionError(v.Region)
		}
		res.index[v.Region] = len(res.rows)
		res.rows = append(res.rows, v)
	}
	return &res, nil
}

// Lookup returns the profile of a region. The match is exact: no case
// folding, trimming or fuzzy matching is applied.
func (t *Table) Lookup(region string) (nutrient.Profile, error) {
	idx, ok := t.index[region]
	if !ok {
		return nutrient.Profile{}, RegionNotFoundError(region)
	}
	return t.rows[idx].Profile, nil
}

// Regions returns region names in table order.
func (t *Table) Regions() []string {
	res := make([]string, len(t.rows))
	for i, v := range t.rows {
		res[i] = v.Region
	}
	return res
}

// Rows returns a copy of all rows in table order.
func (t *Table) Rows() []Row {
	res := make([]Row, len(t.rows))
	copy(res, t.rows)
	return res
}

// Len returns the number of regions.
func (t *Table) Len() int {
	return len(t.rows)
}
