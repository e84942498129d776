package cpu

import (
	"fmt"
)

// Address is a direct, absolute address into the Image or Memory.
type Address uint32

// Word is a signed machine word. Arithmetic wraps.
type Word int32

// Op is an instruction operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_DAT = Op(0) // dat
	OP_LDA = Op(1) // lda
	OP_SUB = Op(2) // sub
	OP_STA = Op(3) // sta
	OP_BRZ = Op(4) // brz
	OP_BRA = Op(5) // bra
	OP_HLT = Op(6) // hlt
)

// Valid returns true if the Op is one of the defined operations.
func (op Op) Valid() bool {
	return op >= OP_DAT && op <= OP_HLT
}

// HasOperand returns true if the operation uses its address operand.
func (op Op) HasOperand() bool {
	switch op {
	case OP_LDA, OP_SUB, OP_STA, OP_BRZ, OP_BRA:
		return true
	}
	return false
}

// Instruction is a single decoded instruction.
// The zero value is a DAT placeholder.
type Instruction struct {
	op   Op
	addr Address
}

// MakeInstruction creates an instruction, checking the operation and operand.
func MakeInstruction(op Op, addr Address) (code Instruction, err error) {
	switch {
	case !op.Valid():
		err = &ErrInstruction{Op: op, Addr: addr, Err: ErrOpcodeInvalid}
	case !op.HasOperand() && addr != 0:
		err = &ErrInstruction{Op: op, Addr: addr, Err: ErrOperandUnexpected}
	default:
		code = Instruction{op: op, addr: addr}
	}

	return
}

// MakeLoad creates a load-accumulator instruction.
func MakeLoad(addr Address) Instruction {
	return Instruction{op: OP_LDA, addr: addr}
}

// MakeSubtract creates a subtract-from-accumulator instruction.
func MakeSubtract(addr Address) Instruction {
	return Instruction{op: OP_SUB, addr: addr}
}

// MakeStore creates a store-accumulator instruction.
func MakeStore(addr Address) Instruction {
	return Instruction{op: OP_STA, addr: addr}
}

// MakeBranchZero creates a branch-if-accumulator-is-zero instruction.
func MakeBranchZero(addr Address) Instruction {
	return Instruction{op: OP_BRZ, addr: addr}
}

// MakeBranch creates an unconditional branch instruction.
func MakeBranch(addr Address) Instruction {
	return Instruction{op: OP_BRA, addr: addr}
}

// MakeHalt creates a halt instruction.
func MakeHalt() Instruction {
	return Instruction{op: OP_HLT}
}

// MakeData creates a data placeholder.
func MakeData() Instruction {
	return Instruction{op: OP_DAT}
}

// Op returns the operation.
func (code Instruction) Op() Op {
	return code.op
}

// Addr returns the operand address.
func (code Instruction) Addr() Address {
	return code.addr
}

// String returns the mnemonic form, ie "lda 80" or "hlt".
func (code Instruction) String() string {
	if code.op.HasOperand() {
		return fmt.Sprintf("%v %d", code.op, code.addr)
	}
	return code.op.String()
}
