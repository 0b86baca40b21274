package trace

import (
	"github.com/davecgh/go-spew/spew"

	"github.com/sixfiveohtwo/mos6502/cpu"
)

// Snapshot is a flat, fully-detached copy of CPU register state plus a RAM
// window, taken for post-mortem inspection (crash dumps, debugger
// "examine" commands, golden-file test fixtures). It never aliases live
// emulator state: every field is copied by value at the moment of capture,
// so mutating the running emulator afterward cannot change a Snapshot
// already taken.
type Snapshot struct {
	PC         uint16
	A, X, Y, S uint8
	P          uint8
	Signals    cpu.Signal
	Jammed     bool

	// Mem is a copy of whatever address window the caller asked to be
	// captured (e.g. zero page plus the stack), not necessarily the whole
	// address space.
	MemBase uint16
	Mem     []uint8
}

// Capture builds a Snapshot from c's current register state and a DMA copy
// of the mem bytes starting at base.
func Capture(c *cpu.Chip, base uint16, mem []uint8) Snapshot {
	cp := make([]uint8, len(mem))
	copy(cp, mem)
	return Snapshot{
		PC:      c.PC,
		A:       c.A,
		X:       c.X,
		Y:       c.Y,
		S:       c.S,
		P:       c.Status(),
		Signals: c.Signals(),
		Jammed:  c.Jammed(),
		MemBase: base,
		Mem:     cp,
	}
}

// Dump renders the snapshot as a human-readable struct dump, for failure
// messages in tests and debugger "info" output.
func (s Snapshot) Dump() string {
	return spew.Sdump(s)
}
