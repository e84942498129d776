// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package manifest loads testcases from Starlark manifest files.
//
// A manifest is a Starlark program. It builds instructions with the
// predeclared lda(), sub(), sta(), brz(), bra(), hlt() and dat() builtins,
// and declares testcases with testcase():
//
//	testcase(
//	    "countdown",
//	    program = {0: lda(80), 1: sub(10), 2: sta(80), 3: brz(5), 4: bra(0), 5: hlt()},
//	    memory = {10: 10, 80: 5000},
//	    expect = 0,
//	    state = "halted",
//	)
//
// Manifests are evaluated once, top to bottom. Top level for and if
// statements are permitted, so testcases may be generated in loops.
package manifest

import (
	"fmt"
	"log"
	"math"
	"os"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/accsim/cpu"
	"github.com/ezrec/accsim/harness"
)

// threadTestcases is the thread local key of the collected testcases.
const threadTestcases = "accsim.testcases"

// Instruction is the Starlark value of a cpu.Instruction.
type Instruction struct {
	cpu.Instruction
}

var _ starlark.Value = Instruction{}

func (si Instruction) Type() string         { return "instruction" }
func (si Instruction) Freeze()              {}
func (si Instruction) Truth() starlark.Bool { return starlark.True }

func (si Instruction) Hash() (uint32, error) {
	return uint32(si.Op())<<24 ^ uint32(si.Addr()), nil
}

// makeOp returns the builtin that constructs an instruction for op.
func makeOp(op cpu.Op) *starlark.Builtin {
	return starlark.NewBuiltin(op.String(), func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		addr := starlark.MakeInt(0)

		if op.HasOperand() {
			err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &addr)
			if err != nil {
				return nil, err
			}
		} else {
			err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0)
			if err != nil {
				return nil, err
			}
		}

		value, err := toAddress(addr)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}

		code, err := cpu.MakeInstruction(op, value)
		if err != nil {
			return nil, err
		}

		return Instruction{code}, nil
	})
}

// toAddress converts a Starlark integer to an address.
func toAddress(value starlark.Value) (addr cpu.Address, err error) {
	num, ok := value.(starlark.Int)
	if !ok {
		err = ErrAddressRange
		return
	}
	u64, ok := num.Uint64()
	if !ok || u64 > math.MaxUint32 {
		err = ErrAddressRange
		return
	}

	addr = cpu.Address(u64)
	return
}

// toWord converts a Starlark integer to a word.
func toWord(value starlark.Value) (word cpu.Word, err error) {
	num, ok := value.(starlark.Int)
	if !ok {
		err = ErrMemoryValue
		return
	}
	i64, ok := num.Int64()
	if !ok || i64 < math.MinInt32 || i64 > math.MaxInt32 {
		err = ErrWordRange
		return
	}

	word = cpu.Word(i64)
	return
}

// buildImage converts a program dictionary to an image.
func buildImage(name string, program *starlark.Dict) (image *cpu.Image, err error) {
	image = cpu.NewImage()

	for _, item := range program.Items() {
		key, value := item[0], item[1]

		if _, ok := key.(starlark.Int); !ok {
			err = &ErrEntry{Testcase: name, Key: key.String(), Err: ErrProgramKey}
			return
		}
		var addr cpu.Address
		addr, err = toAddress(key)
		if err != nil {
			err = &ErrEntry{Testcase: name, Key: key.String(), Err: err}
			return
		}

		code, ok := value.(Instruction)
		if !ok {
			err = &ErrEntry{Testcase: name, Key: key.String(), Err: ErrProgramValue}
			return
		}

		image.Set(addr, code.Instruction)
	}

	return
}

// buildMemory converts a memory dictionary to a memory store.
func buildMemory(name string, memory *starlark.Dict) (mem *cpu.Memory, err error) {
	mem = cpu.NewMemory()
	if memory == nil {
		return
	}

	for _, item := range memory.Items() {
		key, value := item[0], item[1]

		if _, ok := key.(starlark.Int); !ok {
			err = &ErrEntry{Testcase: name, Key: key.String(), Err: ErrMemoryKey}
			return
		}
		var addr cpu.Address
		addr, err = toAddress(key)
		if err != nil {
			err = &ErrEntry{Testcase: name, Key: key.String(), Err: err}
			return
		}

		var word cpu.Word
		word, err = toWord(value)
		if err != nil {
			err = &ErrEntry{Testcase: name, Key: key.String(), Err: err}
			return
		}

		mem.Load(addr, word)
	}

	return
}

// testcase is the testcase() builtin.
func testcase(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var program *starlark.Dict
	var memory *starlark.Dict
	expect := starlark.MakeInt(0)
	var state string
	var limit int

	err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name", &name,
		"program", &program,
		"memory?", &memory,
		"expect?", &expect,
		"state?", &state,
		"limit?", &limit,
	)
	if err != nil {
		return nil, err
	}

	if limit < 0 {
		return nil, &ErrEntry{Testcase: name, Key: "limit", Err: ErrLimitRange}
	}

	tc := harness.Testcase{
		Name:  name,
		Limit: limit,
	}

	tc.Image, err = buildImage(name, program)
	if err != nil {
		return nil, err
	}

	tc.Memory, err = buildMemory(name, memory)
	if err != nil {
		return nil, err
	}

	tc.Expected, err = toWord(expect)
	if err != nil {
		return nil, &ErrEntry{Testcase: name, Key: "expect", Err: err}
	}

	if len(state) != 0 {
		tc.State, err = cpu.ParseState(state)
		if err != nil {
			return nil, &ErrEntry{Testcase: name, Key: "state", Err: err}
		}
	}

	cases, _ := thread.Local(threadTestcases).(*[]harness.Testcase)
	*cases = append(*cases, tc)

	return starlark.None, nil
}

// predeclared returns the builtins available to a manifest.
func predeclared() starlark.StringDict {
	pred := starlark.StringDict{
		"testcase": starlark.NewBuiltin("testcase", testcase),
	}

	for _, op := range []cpu.Op{cpu.OP_LDA, cpu.OP_SUB, cpu.OP_STA, cpu.OP_BRZ, cpu.OP_BRA, cpu.OP_HLT, cpu.OP_DAT} {
		pred[op.String()] = makeOp(op)
	}

	return pred
}

// Load evaluates a manifest, and returns the testcases it declares.
// The src argument may be nil, a string, []byte or io.Reader; if nil, the
// manifest is read from filename.
func Load(filename string, src any) (cases []harness.Testcase, err error) {
	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("%v: %v", filename, msg)
		},
	}
	thread.SetLocal(threadTestcases, &cases)

	opts := syntax.FileOptions{
		TopLevelControl: true, // Permit top level for/if to generate testcases.
	}
	_, err = starlark.ExecFileOptions(&opts, thread, filename, src, predeclared())
	if err != nil {
		cases = nil
		return
	}

	if len(cases) == 0 {
		err = ErrNoTestcase
		return
	}

	return
}

// LoadFile reads and evaluates a manifest file.
func LoadFile(path string) (cases []harness.Testcase, err error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return
	}

	return Load(path, src)
}
