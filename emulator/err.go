package emulator

import (
	"errors"

	"github.com/ezrec/accsim/cpu"
	"github.com/ezrec/accsim/translate"
)

var f = translate.From

var (
	// Emulator errors
	ErrStepLimit = errors.New(f("step limit reached"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc  cpu.Address
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("pc %d %v", err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
