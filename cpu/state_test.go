package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		state    State
		text     string
		terminal bool
	}){
		{STATE_RUNNING, "running", false},
		{STATE_HALTED, "halted", true},
		{STATE_STALLED, "stalled", true},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.state.String())
		assert.Equal(entry.terminal, entry.state.Terminal(), entry.text)

		state, err := ParseState(entry.text)
		assert.NoError(err, entry.text)
		assert.Equal(entry.state, state, entry.text)
	}

	assert.Equal("State(3)", State(3).String())
}

func TestParseState_Invalid(t *testing.T) {
	assert := assert.New(t)

	state, err := ParseState("faulted")
	assert.ErrorIs(err, ErrStateInvalid)
	assert.Equal(STATE_RUNNING, state)
}
