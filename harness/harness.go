// Package harness runs programs against expected accumulator results.
package harness

import (
	"fmt"
	"io"
	"log"

	"github.com/ezrec/accsim/cpu"
	"github.com/ezrec/accsim/emulator"
)

// Testcase is a program, its initial memory, and the expected result.
type Testcase struct {
	Name     string
	Image    *cpu.Image
	Memory   *cpu.Memory // May be nil for an empty memory.
	Expected cpu.Word    // Expected final accumulator.

	// State is the expected terminal state.
	// STATE_RUNNING accepts either terminal state.
	State cpu.State

	Limit   int  // Instruction limit, or zero for none.
	Verbose bool // Trace execution.
}

// Result is the outcome of a Testcase.
type Result struct {
	Name     string
	Expected cpu.Word
	Got      cpu.Word
	State    cpu.State
	Pass     bool
	Err      error
}

// String returns the one line report of the result.
func (res Result) String() string {
	verdict := f("FAIL")
	if res.Pass {
		verdict = f("PASS")
	}

	if res.Err != nil {
		return f("%v: %v -> %v", res.Name, res.Err, verdict)
	}

	return f("%v: Expected ACC=%d, got ACC=%d (%v) -> %v", res.Name, res.Expected, res.Got, res.State, verdict)
}

// Run the testcase on a fresh processor.
// The testcase memory is modified by the run.
func (tc *Testcase) Run() (res Result) {
	res = Result{
		Name:     tc.Name,
		Expected: tc.Expected,
	}

	if tc.Image == nil {
		res.Err = &ErrTestcase{Name: tc.Name, Err: ErrImageMissing}
		return
	}

	emu := emulator.NewEmulator()
	emu.Verbose = tc.Verbose
	emu.Image = tc.Image
	emu.Limit = tc.Limit
	if tc.Memory != nil {
		emu.Memory = tc.Memory
	}

	state, err := emu.Run()
	res.Got = emu.Accumulator()
	res.State = state
	if err != nil {
		res.Err = &ErrTestcase{Name: tc.Name, Err: err}
		return
	}

	res.Pass = res.Got == tc.Expected
	if tc.State != cpu.STATE_RUNNING && tc.State != state {
		res.Pass = false
	}

	return
}

// RunTestcase runs a program on a fresh processor, logs the result, and
// returns true if the final accumulator matches expected.
func RunTestcase(image *cpu.Image, mem *cpu.Memory, expected cpu.Word, name string) (pass bool) {
	tc := &Testcase{
		Name:     name,
		Image:    image,
		Memory:   mem,
		Expected: expected,
	}

	res := tc.Run()
	log.Print(res)

	return res.Pass
}

// RunAll runs every testcase in order, and counts the failures.
func RunAll(cases []Testcase) (results []Result, failed int) {
	results = make([]Result, 0, len(cases))
	for n := range cases {
		res := cases[n].Run()
		if !res.Pass {
			failed++
		}
		results = append(results, res)
	}

	return
}

// Report writes one line per result, then a summary line.
func Report(w io.Writer, results []Result) (err error) {
	var passed int
	for _, res := range results {
		if res.Pass {
			passed++
		}
		_, err = fmt.Fprintln(w, res)
		if err != nil {
			return
		}
	}

	_, err = fmt.Fprintln(w, f("%d of %d testcases passed", passed, len(results)))

	return
}
