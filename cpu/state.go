package cpu

// State is the execution state of the processor.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RUNNING = State(0) // running
	STATE_HALTED  = State(1) // halted
	STATE_STALLED = State(2) // stalled
)

// Terminal returns true if no further instructions will be executed.
func (state State) Terminal() bool {
	return state == STATE_HALTED || state == STATE_STALLED
}

// ParseState returns the State named by text.
func ParseState(text string) (state State, err error) {
	for state = STATE_RUNNING; state <= STATE_STALLED; state++ {
		if state.String() == text {
			return
		}
	}

	state = STATE_RUNNING
	err = ErrStateInvalid
	return
}
