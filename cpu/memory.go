package cpu

import (
	"fmt"
	"iter"
	"maps"
	"strings"

	"github.com/ezrec/accsim/internal"
)

// Store is the data memory interface used by the processor.
type Store interface {
	// Get returns the word at addr, or 0 if it was never written.
	Get(addr Address) Word
	// Set writes the word at addr.
	Set(addr Address, value Word)
}

// Memory is a sparse data store of words.
//
// Reads of an address that was never written return 0. This is a policy of
// the store, and holds for every address in the range of Address. The zero
// value is an empty Memory ready to use.
type Memory struct {
	words map[Address]Word
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Get returns the word at addr, or 0 if it was never written.
func (mem *Memory) Get(addr Address) Word {
	value, ok := mem.words[addr]
	if !ok {
		return 0
	}
	return value
}

// Set writes the word at addr, creating the entry if needed.
func (mem *Memory) Set(addr Address, value Word) {
	if mem.words == nil {
		mem.words = make(map[Address]Word)
	}
	mem.words[addr] = value
}

// Load places an initial data word, and returns the memory for chaining.
func (mem *Memory) Load(addr Address, value Word) *Memory {
	mem.Set(addr, value)
	return mem
}

// Len returns the number of written addresses.
func (mem *Memory) Len() int {
	return len(mem.words)
}

// All iterates the written addresses in ascending order.
func (mem *Memory) All() iter.Seq2[Address, Word] {
	return internal.SortedSeq2(mem.words)
}

// Clone returns an independent copy of the memory.
func (mem *Memory) Clone() *Memory {
	return &Memory{words: maps.Clone(mem.words)}
}

// Reset forgets all written addresses.
func (mem *Memory) Reset() {
	clear(mem.words)
}

// String returns one "addr: value" line per written address.
func (mem *Memory) String() string {
	var sb strings.Builder
	for addr, value := range mem.All() {
		fmt.Fprintf(&sb, "%5d: %d\n", addr, value)
	}
	return sb.String()
}
