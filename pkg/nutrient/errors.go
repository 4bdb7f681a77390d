package nutrient

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/agrosense/fertadvisor/pkg/errcode"
	"github.com/gnames/gn"
)

var (
	// ErrMalformedSample is wrapped by errors about invalid samples.
	ErrMalformedSample = errors.New("malformed nutrient sample")
	// ErrInvalidProfile is wrapped by errors about invalid profiles.
	ErrInvalidProfile = errors.New("invalid nutrient profile")
)

func MalformedSampleError(vals []float64, reason string) error {
	msg := "Sample <em>%v</em> is malformed: %s"
	vars := []any{vals, reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MalformedSampleError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %w: %s",
			fn.Name(), ErrMalformedSample, reason),
	}
}

func ProfileLengthError(size int) error {
	msg := "Profile must have <em>%d</em> values, got %d"
	vars := []any{ProfileSize, size}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InvalidProfileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %w: %d values",
			fn.Name(), ErrInvalidProfile, size),
	}
}

func StatusError(n Nutrient, label string) error {
	msg := "Status <em>%s</em> is not valid for %s"
	vars := []any{label, n.String()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InvalidProfileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %w: %q for %s",
			fn.Name(), ErrInvalidProfile, label, n),
	}
}
