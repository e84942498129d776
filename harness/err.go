package harness

import (
	"errors"

	"github.com/ezrec/accsim/translate"
)

var f = translate.From

var (
	// Testcase errors
	ErrImageMissing = errors.New(f("image missing"))
)

// ErrTestcase indicates the testcase that failed to run.
type ErrTestcase struct {
	Name string
	Err  error
}

func (err *ErrTestcase) Error() string {
	return f("testcase %v: %v", err.Name, err.Err)
}

func (err *ErrTestcase) Unwrap() error {
	return err.Err
}
