package iodb

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/agrosense/fertadvisor/pkg/errcode"
	"github.com/gnames/gn"
)

// ErrNotConnected is wrapped when an operation needs a pool that was
// not created.
var ErrNotConnected = errors.New("database is not connected")

func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := "Cannot connect to PostgreSQL <em>%s:%d/%s</em> as %s"
	vars := []any{host, port, database, user}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot connect to %s:%d/%s: %w",
			fn.Name(), host, port, database, err),
	}
}

func NotConnectedError() error {
	msg := "Database is not connected"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), ErrNotConnected),
	}
}

func QueryError(action string, err error) error {
	msg := "Database query failed: <em>%s</em>"
	vars := []any{action}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s: %w", fn.Name(), action, err),
	}
}
