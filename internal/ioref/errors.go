package ioref

import (
	"fmt"
	"runtime"

	"github.com/agrosense/fertadvisor/pkg/errcode"
	"github.com/gnames/gn"
)

func OpenError(path string, err error) error {
	msg := "Cannot open reference table <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn.Name(), path, err),
	}
}

func HeaderError(path, column string) error {
	msg := "Reference table <em>%s</em> has no column %s"
	vars := []any{path, column}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TableLoadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: missing column %q in %s",
			fn.Name(), column, path),
	}
}

func RecordError(path string, line int, err error) error {
	msg := "Cannot parse line <em>%d</em> of %s"
	vars := []any{line, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TableLoadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s line %d: %w",
			fn.Name(), path, line, err),
	}
}

func EmptyTableError(name string) error {
	msg := "Reference table <em>%s</em> is empty"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TableLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: table %s has no rows", fn.Name(), name),
	}
}

func UnknownSourceError(source string) error {
	msg := "Unknown reference tables source <em>%s</em>"
	vars := []any{source}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TableLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown source %q", fn.Name(), source),
	}
}

func QueryError(table string, err error) error {
	msg := "Cannot read table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: query %s: %w", fn.Name(), table, err),
	}
}

func MissingTableError(table string) error {
	msg := "Table <em>%s</em> not found, run <em>fertadvisor import --to postgres</em> first"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TableLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: table %q does not exist", fn.Name(), table),
	}
}
