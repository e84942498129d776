// Package cpu implements the accumulator processor of the simulator.
//
// The processor has a program counter (PC) and a single signed accumulator
// (ACC). Instructions are fetched from a Program Image keyed by address, and
// operate on a sparse Memory store of words. Program and data occupy two
// independent address spaces: a DAT entry in the Image only marks an address
// as occupied, it carries no value of its own.
//
// Execution ends in one of two terminal states: Halted, when a HLT
// instruction executes, or Stalled, when no instruction exists at the
// program counter. Neither is an error, and neither ends the host process.
// There is no watchdog; a program that branches forever runs forever.
package cpu
