// Package dosage resolves treatment names to application rates using
// the dosage reference table.
package dosage

import (
	"strings"

	"github.com/agrosense/fertadvisor/pkg/treatment"
	"github.com/gnames/gnlib"
)

const (
	// DefaultMOP is used when the table has no 'mop' row.
	DefaultMOP = "50-100 kg/ha"
	// DefaultNPKComplex is used when the table has no NPK complex row.
	DefaultNPKComplex = "150-200 kg/ha"
)

// npkGrades are substrings that identify NPK complex grades
// (e.g. 'Fourteen-Thirty Five-Fourteen') in the fertilizers column.
var npkGrades = []string{"fourteen", "seventeen", "twenty"}

// Row is a record of the dosage table.
type Row struct {
	// Name is the fertilizer name as written in the table.
	Name string
	// Dosage is a free-form application rate, e.g. '100-150 kg/ha'.
	Dosage string
}

// Dose is a resolved treatment. Name keeps the spelling used by the
// advisor.
type Dose struct {
	Name   string
	Dosage string
}

// Table is an immutable dosage index. It is safe for concurrent reads.
type Table struct {
	rows  []Row
	index map[string]int
}

// New builds a Table. Names are matched case-insensitively after
// trimming; the first of duplicate names wins.
func New(rows []Row) *Table {
	res := Table{
		rows:  make([]Row, 0, len(rows)),
		index: make(map[string]int, len(rows)),
	}
	for _, v := range rows {
		v.Name = strings.TrimSpace(gnlib.FixUtf8(v.Name))
		v.Dosage = strings.TrimSpace(gnlib.FixUtf8(v.Dosage))
		key := normalize(v.Name)
		if key == "" {
			continue
		}
		if _, ok := res.index[key]; !ok {
			res.index[key] = len(res.rows)
		}
		res.rows = append(res.rows, v)
	}
	return &res
}

// Resolve finds the dosage of a treatment. The second value is false
// when nothing matches, which is not an error.
func (t *Table) Resolve(name string) (string, bool) {
	key := normalize(name)
	if key == "" || key == treatment.NoFertilizerNeeded {
		return "", false
	}

	if idx, ok := t.index[key]; ok {
		return t.rows[idx].Dosage, true
	}

	switch key {
	case treatment.MOP:
		return DefaultMOP, true
	case treatment.NPKComplex:
		if d, ok := t.npkGrade(); ok {
			return d, true
		}
		return DefaultNPKComplex, true
	}
	return "", false
}

// npkGrade returns the dosage of the first row that names an NPK
// complex grade.
func (t *Table) npkGrade() (string, bool) {
	for _, v := range t.rows {
		name := strings.ToLower(v.Name)
		for _, g := range npkGrades {
			if strings.Contains(name, g) {
				return v.Dosage, true
			}
		}
	}
	return "", false
}

// Plan resolves fertilizers first and then micronutrients, keeping
// their order and dropping names that have no dosage.
func (t *Table) Plan(fertilizers, micronutrients []string) []Dose {
	res := make([]Dose, 0, len(fertilizers)+len(micronutrients))
	for _, names := range [][]string{fertilizers, micronutrients} {
		for _, v := range names {
			if d, ok := t.Resolve(v); ok {
				res = append(res, Dose{Name: v, Dosage: d})
			}
		}
	}
	return res
}

// Rows returns a copy of the table rows.
func (t *Table) Rows() []Row {
	res := make([]Row, len(t.rows))
	copy(res, t.rows)
	return res
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
