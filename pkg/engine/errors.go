package engine

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/agrosense/fertadvisor/pkg/errcode"
	"github.com/gnames/gn"
)

// ErrMissingInput is wrapped when a request has neither a region nor
// a sample.
var ErrMissingInput = errors.New("either region or sample is required")

func MissingInputError() error {
	msg := "Provide a <em>region</em> or a <em>sample</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MissingInputError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), ErrMissingInput),
	}
}

// ErrInvalidRequest is wrapped when a request cannot be decoded.
var ErrInvalidRequest = errors.New("invalid request")

func InvalidRequestError(input string, err error) error {
	msg := "Cannot read request <em>%s</em>"
	vars := []any{input}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InvalidRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w: %w", fn.Name(), ErrInvalidRequest, err),
	}
}
