package ioimport

import (
	"strconv"

	"github.com/agrosense/fertadvisor/pkg/deficiency"
	"github.com/agrosense/fertadvisor/pkg/dosage"
	"github.com/agrosense/fertadvisor/pkg/nutrient"
	"github.com/agrosense/fertadvisor/pkg/schema"
	"github.com/gnames/gnuuid"
)

// profileRecords converts the deficiency table to storage models.
// IDs are UUID v5 of region names.
func profileRecords(t *deficiency.Table) []schema.RegionProfile {
	rows := t.Rows()
	res := make([]schema.RegionProfile, len(rows))
	for i, v := range rows {
		p := v.Profile
		res[i] = schema.RegionProfile{
			ID:      gnuuid.New(v.Region),
			Ordinal: i + 1,
			Region:  v.Region,
			N:       string(p.Get(nutrient.N)),
			P:       string(p.Get(nutrient.P)),
			K:       string(p.Get(nutrient.K)),
			OC:      string(p.Get(nutrient.OC)),
			B:       string(p.Get(nutrient.B)),
			Cu:      string(p.Get(nutrient.Cu)),
			Fe:      string(p.Get(nutrient.Fe)),
			Mn:      string(p.Get(nutrient.Mn)),
			S:       string(p.Get(nutrient.S)),
			Zn:      string(p.Get(nutrient.Zn)),
		}
	}
	return res
}

// dosageRecords converts the dosage table to storage models. Names may
// repeat, so the ordinal is a part of the UUID seed.
func dosageRecords(t *dosage.Table) []schema.Dosage {
	rows := t.Rows()
	res := make([]schema.Dosage, len(rows))
	for i, v := range rows {
		ord := i + 1
		res[i] = schema.Dosage{
			ID:      gnuuid.New(strconv.Itoa(ord) + "|" + v.Name),
			Ordinal: ord,
			Name:    v.Name,
			Dosage:  v.Dosage,
		}
	}
	return res
}

// profileValues returns values in schema.Columns order.
func profileValues(m schema.RegionProfile) []any {
	return []any{
		m.ID.String(), m.Ordinal, m.Region,
		m.N, m.P, m.K, m.OC,
		m.B, m.Cu, m.Fe, m.Mn, m.S, m.Zn,
	}
}

func dosageValues(m schema.Dosage) []any {
	return []any{m.ID.String(), m.Ordinal, m.Name, m.Dosage}
}
