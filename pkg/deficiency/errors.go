package deficiency

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/agrosense/fertadvisor/pkg/errcode"
	"github.com/gnames/gn"
)

// ErrRegionNotFound is wrapped by errors about unknown regions.
var ErrRegionNotFound = errors.New("region not found")

func RegionNotFoundError(region string) error {
	msg := "Region <em>%s</em> is not in the deficiency table"
	vars := []any{region}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RegionNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %w: %q",
			fn.Name(), ErrRegionNotFound, region),
	}
}

func DuplicateRegionError(region string) error {
	msg := "Region <em>%s</em> appears more than once in the deficiency table"
	vars := []any{region}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TableLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: duplicate region %q", fn.Name(), region),
	}
}

func EmptyRegionError() error {
	msg := "Deficiency table has a row without a region name"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TableLoadError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: empty region name", fn.Name()),
	}
}

func RowError(region string, err error) error {
	msg := "Cannot read deficiency row for <em>%s</em>"
	vars := []any{region}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TableLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), err),
	}
}
