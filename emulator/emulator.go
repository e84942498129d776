// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives the accumulator processor over a loaded program.
package emulator

import (
	"log"

	"github.com/ezrec/accsim/cpu"
)

// Emulator state. CPU + program image + data memory.
type Emulator struct {
	Verbose  bool        // If set, enables verbose logging.
	*cpu.Cpu             // Reference to the CPU simulation.
	Image    *cpu.Image  // Program image to execute.
	Memory   *cpu.Memory // Data memory.

	// Limit is the maximum number of instructions Run will execute.
	// Zero is unlimited.
	Limit int
}

// NewEmulator creates a new emulator, with an empty image and memory.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:    cpu.NewCpu(),
		Image:  cpu.NewImage(),
		Memory: cpu.NewMemory(),
	}

	return
}

// Reset the processor, ready to run from address 0.
// The memory is left as is.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Code returns the instruction at the program counter, if any.
func (emu *Emulator) Code() (code cpu.Instruction, ok bool) {
	return emu.Cpu.FetchCode(emu.Image)
}

// Tick performs a single tick of the emulator.
// Returns done once the processor has halted or stalled.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	// A stall executes nothing, so only a pending instruction counts.
	_, pending := emu.Code()
	if pending && emu.Limit > 0 && emu.Cpu.Ticks >= emu.Limit && !emu.Cpu.State.Terminal() {
		err = &ErrRuntime{Pc: emu.Cpu.Pc, Err: ErrStepLimit}
		return
	}

	done = emu.Cpu.Tick(emu.Image, emu.Memory).Terminal()

	return
}

// Run resets the processor, then ticks until done or an error.
func (emu *Emulator) Run() (state cpu.State, err error) {
	emu.Reset()

	var done bool
	for !done {
		done, err = emu.Tick()
		if err != nil {
			if emu.Verbose {
				log.Print(f("emulator: %v", err))
			}
			break
		}
	}

	state = emu.Cpu.State

	return
}
