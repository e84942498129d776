package cpu

import (
	"fmt"
	"iter"
	"strings"

	"github.com/ezrec/accsim/internal"
)

// Image is a loaded program: a map of addresses to instructions.
//
// Each address holds at most one instruction. The processor only reads the
// Image; it must not be modified while a run is in progress.
type Image struct {
	codes map[Address]Instruction
}

// NewImage creates an empty program image.
func NewImage() *Image {
	return &Image{}
}

// Set places code at addr, replacing any instruction already there.
// Returns the image for chaining.
func (img *Image) Set(addr Address, code Instruction) *Image {
	if img.codes == nil {
		img.codes = make(map[Address]Instruction)
	}
	img.codes[addr] = code
	return img
}

// Fetch returns the instruction at addr, if any.
func (img *Image) Fetch(addr Address) (code Instruction, ok bool) {
	code, ok = img.codes[addr]
	return
}

// Len returns the number of occupied addresses.
func (img *Image) Len() int {
	return len(img.codes)
}

// All iterates the occupied addresses in ascending order.
func (img *Image) All() iter.Seq2[Address, Instruction] {
	return internal.SortedSeq2(img.codes)
}

// String returns a listing of the image.
func (img *Image) String() string {
	var sb strings.Builder
	for addr, code := range img.All() {
		fmt.Fprintf(&sb, "%5d: %v\n", addr, code)
	}
	return sb.String()
}
