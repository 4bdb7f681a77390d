// Package schema provides storage models for reference tables kept in
// SQLite or PostgreSQL.
package schema

import (
	"github.com/google/uuid"
)

// DDLGenerator defines how Go models generate SQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// TableName returns the table name for this model.
	TableName() string
}

// RegionProfile is a row of the regional deficiency table.
type RegionProfile struct {
	// ID is UUID v5 generated from the region name.
	ID uuid.UUID `db:"id" ddl:"TEXT PRIMARY KEY" gorm:"column:id;type:uuid;primaryKey"`

	// Ordinal keeps the order of rows in the source file.
	Ordinal int `db:"ordinal" ddl:"INTEGER NOT NULL" gorm:"column:ordinal;not null"`

	// Region is the state or union territory name.
	Region string `db:"region" ddl:"TEXT NOT NULL UNIQUE" gorm:"column:region;type:varchar(100);not null;uniqueIndex"`

	// N, P, K and OC take 'very low' ... 'very high'.
	N  string `db:"n"  ddl:"TEXT NOT NULL" gorm:"column:n;type:varchar(20);not null"`
	P  string `db:"p"  ddl:"TEXT NOT NULL" gorm:"column:p;type:varchar(20);not null"`
	K  string `db:"k"  ddl:"TEXT NOT NULL" gorm:"column:k;type:varchar(20);not null"`
	OC string `db:"oc" ddl:"TEXT NOT NULL" gorm:"column:oc;type:varchar(20);not null"`

	// Micronutrients take 'deficient' or 'sufficient'.
	B  string `db:"b"  ddl:"TEXT NOT NULL" gorm:"column:b;type:varchar(20);not null"`
	Cu string `db:"cu" ddl:"TEXT NOT NULL" gorm:"column:cu;type:varchar(20);not null"`
	Fe string `db:"fe" ddl:"TEXT NOT NULL" gorm:"column:fe;type:varchar(20);not null"`
	Mn string `db:"mn" ddl:"TEXT NOT NULL" gorm:"column:mn;type:varchar(20);not null"`
	S  string `db:"s"  ddl:"TEXT NOT NULL" gorm:"column:s;type:varchar(20);not null"`
	Zn string `db:"zn" ddl:"TEXT NOT NULL" gorm:"column:zn;type:varchar(20);not null"`
}

// Labels returns statuses in N, P, K, OC, B, Cu, Fe, Mn, S, Zn order.
func (r RegionProfile) Labels() []string {
	return []string{r.N, r.P, r.K, r.OC, r.B, r.Cu, r.Fe, r.Mn, r.S, r.Zn}
}

// Dosage is a row of the dosage table.
type Dosage struct {
	// ID is UUID v5 generated from the fertilizer name and ordinal.
	ID uuid.UUID `db:"id" ddl:"TEXT PRIMARY KEY" gorm:"column:id;type:uuid;primaryKey"`

	// Ordinal keeps the order of rows in the source file.
	Ordinal int `db:"ordinal" ddl:"INTEGER NOT NULL" gorm:"column:ordinal;not null"`

	// Name is the fertilizer name.
	Name string `db:"name" ddl:"TEXT NOT NULL" gorm:"column:name;type:varchar(255);not null"`

	// Dosage is the application rate, e.g. '100-150 kg/ha'.
	Dosage string `db:"dosage" ddl:"TEXT NOT NULL" gorm:"column:dosage;type:varchar(255);not null"`
}

// Columns returns column names of a model in field order.
func Columns(model any) []string {
	var res []string
	for _, v := range fields(model) {
		res = append(res, v.column)
	}
	return res
}
