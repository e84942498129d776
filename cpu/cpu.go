package cpu

import (
	"fmt"
	"log"
)

// Cpu is the simulation context for the accumulator processor.
//
// A Cpu is not safe for concurrent use; drive one run at a time.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Pc    Address // Address of the next instruction to fetch.
	Acc   Word    // Accumulator.
	State State   // Current execution state.

	Ticks int // Executed instructions since the last reset.
}

// NewCpu creates a new processor.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Accumulator returns the current accumulator value.
func (cpu *Cpu) Accumulator() Word {
	return cpu.Acc
}

// ProgramCounter returns the current program counter.
func (cpu *Cpu) ProgramCounter() Address {
	return cpu.Pc
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 6s: %v\n", "state", cpu.State)
	text += fmt.Sprintf("% 6s: %d\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 6s: %d\n", "acc", cpu.Acc)
	text += fmt.Sprintf("% 6s: %d\n", "ticks", cpu.Ticks)

	return
}

// Reset the CPU state.
// - Clears PC and ACC.
// - Zeros the tick counter.
// - Enters the running state.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Print(f("cpu: reset"))
	}

	cpu.Pc = 0
	cpu.Acc = 0
	cpu.State = STATE_RUNNING
	cpu.Ticks = 0
}

// FetchCode fetches the instruction at the program counter.
func (cpu *Cpu) FetchCode(image *Image) (code Instruction, ok bool) {
	return image.Fetch(cpu.Pc)
}

// Tick executes a single instruction cycle, and returns the resulting state.
// Once the state is terminal, Tick does nothing.
func (cpu *Cpu) Tick(image *Image, mem Store) State {
	if cpu.State.Terminal() {
		return cpu.State
	}

	code, ok := cpu.FetchCode(image)
	if !ok {
		cpu.State = STATE_STALLED
		if cpu.Verbose {
			log.Print(f("cpu: no instruction at pc %d", cpu.Pc))
		}
		return cpu.State
	}

	// Branches overwrite the advanced PC.
	cpu.Pc++

	cpu.Execute(code, mem)
	cpu.Ticks++

	if cpu.Verbose {
		log.Print(f("cpu: %v pc %d acc %d", code, cpu.Pc, cpu.Acc))
		if cpu.State == STATE_HALTED {
			log.Print(f("cpu: halted"))
		}
	}

	return cpu.State
}

// Execute executes a single decoded instruction.
// No instruction can fail: unwritten memory reads as 0, and branch targets
// are not checked.
func (cpu *Cpu) Execute(code Instruction, mem Store) {
	switch code.Op() {
	case OP_LDA:
		cpu.Acc = mem.Get(code.Addr())
	case OP_SUB:
		cpu.Acc -= mem.Get(code.Addr())
	case OP_STA:
		mem.Set(code.Addr(), cpu.Acc)
	case OP_BRZ:
		if cpu.Acc == 0 {
			cpu.Pc = code.Addr()
		}
	case OP_BRA:
		cpu.Pc = code.Addr()
	case OP_HLT:
		cpu.State = STATE_HALTED
	case OP_DAT:
		// pass
	default:
		panic("unknown op")
	}
}

// Run resets the CPU, then executes from address 0 until halted or stalled.
// Run does not return for a program that never reaches either state.
func (cpu *Cpu) Run(image *Image, mem Store) State {
	cpu.Reset()

	for !cpu.Tick(image, mem).Terminal() {
	}

	return cpu.State
}
