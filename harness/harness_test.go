package harness

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/accsim/cpu"
	"github.com/ezrec/accsim/emulator"
)

func countdown() (*cpu.Image, *cpu.Memory) {
	mem := cpu.NewMemory().Load(10, 10).Load(80, 5000)
	image := cpu.NewImage().
		Set(0, cpu.MakeLoad(80)).
		Set(1, cpu.MakeSubtract(10)).
		Set(2, cpu.MakeStore(80)).
		Set(3, cpu.MakeBranchZero(5)).
		Set(4, cpu.MakeBranch(0)).
		Set(5, cpu.MakeHalt()).
		Set(10, cpu.MakeData()).
		Set(80, cpu.MakeData())
	return image, mem
}

func captureLog(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})
	return &buf
}

func TestRunTestcase(t *testing.T) {
	assert := assert.New(t)

	buf := captureLog(t)

	image, mem := countdown()
	assert.True(RunTestcase(image, mem, 0, "countdown"))
	assert.Equal(cpu.Word(0), mem.Get(80))
	assert.Contains(buf.String(), "countdown: Expected ACC=0, got ACC=0 (halted) -> PASS")

	buf.Reset()
	assert.False(RunTestcase(cpu.NewImage().Set(0, cpu.MakeHalt()), cpu.NewMemory(), 1, "halt"))
	assert.Contains(buf.String(), "halt: Expected ACC=1, got ACC=0 (halted) -> FAIL")
}

func TestTestcase_Run(t *testing.T) {
	assert := assert.New(t)

	image, mem := countdown()

	table := [](struct {
		tc    Testcase
		pass  bool
		got   cpu.Word
		state cpu.State
	}){
		{Testcase{Name: "countdown", Image: image, Memory: mem.Clone(), Expected: 0, State: cpu.STATE_HALTED},
			true, 0, cpu.STATE_HALTED},
		{Testcase{Name: "countdown_any_state", Image: image, Memory: mem.Clone(), Expected: 0},
			true, 0, cpu.STATE_HALTED},
		{Testcase{Name: "countdown_wrong_state", Image: image, Memory: mem.Clone(), Expected: 0, State: cpu.STATE_STALLED},
			false, 0, cpu.STATE_HALTED},
		{Testcase{Name: "empty", Image: cpu.NewImage(), Expected: 0, State: cpu.STATE_STALLED},
			true, 0, cpu.STATE_STALLED},
		{Testcase{Name: "load_nil_memory", Image: cpu.NewImage().Set(0, cpu.MakeLoad(9))},
			true, 0, cpu.STATE_STALLED},
		{Testcase{Name: "wrong_acc", Image: cpu.NewImage().Set(0, cpu.MakeLoad(9)), Memory: cpu.NewMemory().Load(9, 4), Expected: 5},
			false, 4, cpu.STATE_STALLED},
	}

	for _, entry := range table {
		res := entry.tc.Run()
		assert.NoError(res.Err, entry.tc.Name)
		assert.Equal(entry.pass, res.Pass, entry.tc.Name)
		assert.Equal(entry.got, res.Got, entry.tc.Name)
		assert.Equal(entry.state, res.State, entry.tc.Name)
		assert.Equal(entry.tc.Name, res.Name)
	}

	assert.Equal(cpu.Word(5000), mem.Get(80))
}

func TestTestcase_RunErrors(t *testing.T) {
	assert := assert.New(t)

	tc := &Testcase{Name: "no_image"}
	res := tc.Run()
	assert.False(res.Pass)
	assert.ErrorIs(res.Err, ErrImageMissing)

	tc = &Testcase{Name: "spin", Image: cpu.NewImage().Set(0, cpu.MakeBranch(0)), Limit: 10}
	res = tc.Run()
	assert.False(res.Pass)
	assert.ErrorIs(res.Err, emulator.ErrStepLimit)
	assert.Equal(cpu.STATE_RUNNING, res.State)
	assert.True(strings.HasPrefix(res.String(), "spin: testcase spin: "))
	assert.True(strings.HasSuffix(res.String(), "-> FAIL"))
}

func TestRunAll(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	image, mem := countdown()
	cases := []Testcase{
		{Name: "countdown", Image: image, Memory: mem, Expected: 0},
		{Name: "halt", Image: cpu.NewImage().Set(0, cpu.MakeHalt()), Expected: 0},
		{Name: "bad", Image: cpu.NewImage().Set(0, cpu.MakeHalt()), Expected: 2},
	}

	results, failed := RunAll(cases)
	require.Len(results, 3)
	assert.Equal(1, failed)
	assert.True(results[0].Pass)
	assert.True(results[1].Pass)
	assert.False(results[2].Pass)

	var buf bytes.Buffer
	assert.NoError(Report(&buf, results))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(lines, 4)
	assert.Equal("countdown: Expected ACC=0, got ACC=0 (halted) -> PASS", lines[0])
	assert.Equal("bad: Expected ACC=2, got ACC=0 (halted) -> FAIL", lines[2])
	assert.Equal("2 of 3 testcases passed", lines[3])
}

func TestTestcase_RunLimitThenStall(t *testing.T) {
	assert := assert.New(t)

	tc := &Testcase{
		Name:     "fall_off",
		Image:    cpu.NewImage().Set(0, cpu.MakeLoad(1)).Set(1, cpu.MakeSubtract(2)),
		Memory:   cpu.NewMemory().Load(1, 9).Load(2, 4),
		Expected: 5,
		State:    cpu.STATE_STALLED,
		Limit:    2,
	}

	res := tc.Run()
	assert.NoError(res.Err)
	assert.True(res.Pass)
	assert.Equal(cpu.STATE_STALLED, res.State)
}
