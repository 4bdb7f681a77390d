package learned

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/agrosense/fertadvisor/pkg/errcode"
	"github.com/gnames/gn"
)

var (
	// ErrModelUnavailable is wrapped when no classifier is loaded.
	ErrModelUnavailable = errors.New("learned model is unavailable")
	// ErrInvalidModel is wrapped by errors about model parameters.
	ErrInvalidModel = errors.New("invalid model")
	// ErrPrediction is wrapped by errors about classifier output.
	ErrPrediction = errors.New("prediction failed")
)

// ModelUnavailableError reports a missing classifier. The cause is the
// load error, if any.
func ModelUnavailableError(cause error) error {
	msg := "Fertilizer model is not available"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	err := fmt.Errorf("from %s: %w", fn.Name(), ErrModelUnavailable)
	if cause != nil {
		err = fmt.Errorf("from %s: %w: %w", fn.Name(), ErrModelUnavailable, cause)
	}
	return &gn.Error{
		Code: errcode.ModelUnavailableError,
		Msg:  msg,
		Err:  err,
	}
}

func ParamsError(reason string) error {
	msg := "Fertilizer model is invalid: <em>%s</em>"
	vars := []any{reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ModelFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w: %s", fn.Name(), ErrInvalidModel, reason),
	}
}

func FeaturesSizeError(exp, got int) error {
	msg := "Model expects <em>%d</em> features, got %d"
	vars := []any{exp, got}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PredictionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %w: expected %d features, got %d",
			fn.Name(), ErrPrediction, exp, got),
	}
}

func PredictionError(err error) error {
	msg := "Fertilizer model failed to predict"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PredictionError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w: %w", fn.Name(), ErrPrediction, err),
	}
}

func ProbabilitiesSizeError(classes, proba int) error {
	msg := "Model returned <em>%d</em> probabilities for %d classes"
	vars := []any{proba, classes}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PredictionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %w: %d probabilities for %d classes",
			fn.Name(), ErrPrediction, proba, classes),
	}
}

func ProbabilityValueError(class string, p float64) error {
	msg := "Model returned invalid probability <em>%v</em> for %s"
	vars := []any{p, class}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PredictionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %w: probability %v for %s",
			fn.Name(), ErrPrediction, p, class),
	}
}
