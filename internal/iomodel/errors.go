package iomodel

import (
	"fmt"
	"runtime"

	"github.com/agrosense/fertadvisor/pkg/errcode"
	"github.com/gnames/gn"
)

func ReadError(path string, err error) error {
	msg := "Cannot read model file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ModelReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), path, err),
	}
}

func DecodeError(path string, err error) error {
	msg := "Model file <em>%s</em> is not valid YAML or JSON"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ModelFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot decode %s: %w", fn.Name(), path, err),
	}
}
