package manifest

import (
	"errors"

	"github.com/ezrec/accsim/translate"
)

var f = translate.From

var (
	// Manifest errors
	ErrProgramKey   = errors.New(f("program key is not an address"))
	ErrProgramValue = errors.New(f("program value is not an instruction"))
	ErrMemoryKey    = errors.New(f("memory key is not an address"))
	ErrMemoryValue  = errors.New(f("memory value is not a word"))
	ErrAddressRange = errors.New(f("address out of range"))
	ErrWordRange    = errors.New(f("word out of range"))
	ErrNoTestcase   = errors.New(f("no testcase defined"))
	ErrLimitRange   = errors.New(f("limit is negative"))
)

// ErrEntry indicates the testcase and key of a bad manifest entry.
type ErrEntry struct {
	Testcase string
	Key      string
	Err      error
}

func (err *ErrEntry) Error() string {
	return f("testcase %v key %v: %v", err.Testcase, err.Key, err.Err)
}

func (err *ErrEntry) Unwrap() error {
	return err.Err
}
