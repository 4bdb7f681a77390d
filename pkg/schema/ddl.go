package schema

import (
	"fmt"
	"reflect"
	"strings"
)

type field struct {
	column string
	ddl    string
}

func fields(model any) []field {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var res []field
	for i := range t.NumField() {
		f := t.Field(i)
		db := f.Tag.Get("db")
		ddl := f.Tag.Get("ddl")
		if db != "" && ddl != "" {
			res = append(res, field{column: db, ddl: ddl})
		}
	}
	return res
}

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string) string {
	var columns []string
	for _, v := range fields(model) {
		columns = append(columns, fmt.Sprintf("    %s %s", v.column, v.ddl))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))
}

func (r RegionProfile) TableDDL() string {
	return generateDDL(r, r.TableName())
}

func (r RegionProfile) TableName() string {
	return "region_profiles"
}

func (d Dosage) TableDDL() string {
	return generateDDL(d, d.TableName())
}

func (d Dosage) TableName() string {
	return "dosages"
}

// DDLModels returns models in creation order.
func DDLModels() []DDLGenerator {
	return []DDLGenerator{RegionProfile{}, Dosage{}}
}
