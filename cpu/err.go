package cpu

import (
	"errors"

	"github.com/ezrec/accsim/translate"
)

var f = translate.From

var (
	// Instruction construction errors
	ErrOpcodeInvalid     = errors.New(f("opcode invalid"))
	ErrOperandUnexpected = errors.New(f("operand unexpected"))

	// State errors
	ErrStateInvalid = errors.New(f("state invalid"))
)

// ErrInstruction reports a rejected instruction construction.
type ErrInstruction struct {
	Op   Op
	Addr Address
	Err  error
}

func (err *ErrInstruction) Error() string {
	return f("instruction %v %d: %v", err.Op, err.Addr, err.Err)
}

func (err *ErrInstruction) Unwrap() error {
	return err.Err
}
