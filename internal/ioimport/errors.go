package ioimport

import (
	"fmt"
	"runtime"

	"github.com/agrosense/fertadvisor/pkg/errcode"
	"github.com/gnames/gn"
)

func ImportError(table string, err error) error {
	msg := "Cannot import table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: import %s: %w", fn.Name(), table, err),
	}
}

func GORMConnectionError(err error) error {
	msg := `Cannot connect to database with GORM

<em>How to fix:</em>
  1. Ensure database operator is connected
  2. Check database configuration`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: failed to connect with GORM: %w", fn.Name(), err),
	}
}

func MigrateError(err error) error {
	msg := `Cannot create reference tables schema

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Check database logs for details`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: failed to migrate schema: %w", fn.Name(), err),
	}
}

func UnknownTargetError(target string) error {
	msg := "Unknown import target <em>%s</em>, use sqlite or postgres"
	vars := []any{target}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown target %q", fn.Name(), target),
	}
}
