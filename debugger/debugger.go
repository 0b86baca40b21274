// Package debugger implements breakpoint management and a reset-vector
// override that stays active until cleared, wired onto a bus.Bus as a decorator device so
// neither the CPU nor the bus needs to know a debugger is attached.
package debugger

import (
	"github.com/sixfiveohtwo/mos6502/bits"
	"github.com/sixfiveohtwo/mos6502/bus"
	"github.com/sixfiveohtwo/mos6502/cpu"
	"github.com/sixfiveohtwo/mos6502/haltexpr"
	"github.com/sixfiveohtwo/mos6502/irq"
)

const (
	initialCapacity = 2
	growthFactor    = 1.5
)

// Breakpoint pairs a halt expression with whether it's currently armed.
type Breakpoint struct {
	Expr    haltexpr.Expr
	Enabled bool
}

// Debugger owns the breakpoint list and an optional reset-vector override,
// plus the RDY line it drives low when a breakpoint fires.
type Debugger struct {
	breakpoints []Breakpoint
	cap         int
	halted      int // index of the breakpoint that last halted the CPU, or -1

	rdy irq.Line

	b           *bus.Bus
	overrideDev *vectorOverride
	priorDev    bus.Device
}

// New constructs an empty Debugger attached to b. Call RDY to get the
// irq.Sender to wire into cpu.Def.RDY.
func New(b *bus.Bus) *Debugger {
	d := &Debugger{b: b, cap: initialCapacity, halted: -1}
	d.breakpoints = make([]Breakpoint, 0, initialCapacity)
	return d
}

// RDY returns the Sender the Debugger drives to stall the CPU once a
// breakpoint condition is met.
func (d *Debugger) RDY() *irq.Line { return &d.rdy }

// grow enforces the 1.5x growth factor on top of append, since Go's slice
// growth isn't contractually specified and the spec calls for a specific
// amortized-growth curve on this particular vector.
func (d *Debugger) grow() {
	if len(d.breakpoints) < d.cap {
		return
	}
	newCap := int(float64(d.cap) * growthFactor)
	if newCap <= d.cap {
		newCap = d.cap + 1
	}
	grown := make([]Breakpoint, len(d.breakpoints), newCap)
	copy(grown, d.breakpoints)
	d.breakpoints = grown
	d.cap = newCap
}

// Add appends a new, enabled breakpoint and returns its index.
func (d *Debugger) Add(e haltexpr.Expr) int {
	d.grow()
	d.breakpoints = append(d.breakpoints, Breakpoint{Expr: e, Enabled: true})
	return len(d.breakpoints) - 1
}

// At returns the breakpoint at index i.
func (d *Debugger) At(i int) Breakpoint { return d.breakpoints[i] }

// Count returns the number of breakpoints currently held (enabled or not).
func (d *Debugger) Count() int { return len(d.breakpoints) }

// Enable arms or disarms the breakpoint at index i.
func (d *Debugger) Enable(i int, enabled bool) {
	d.breakpoints[i].Enabled = enabled
}

// Remove deletes the breakpoint at index i, preserving the order of the
// rest, and fixes up the halted-at index: cleared if i was the breakpoint
// that halted, decremented if a lower index shifted it down.
func (d *Debugger) Remove(i int) {
	d.breakpoints = append(d.breakpoints[:i], d.breakpoints[i+1:]...)
	switch {
	case d.halted == i:
		d.halted = -1
	case d.halted > i:
		d.halted--
	}
}

// Clear removes every breakpoint.
func (d *Debugger) Clear() {
	d.breakpoints = d.breakpoints[:0]
	d.halted = -1
}

// Halted returns the index of the breakpoint that last halted the CPU, or
// -1 if the debugger isn't currently halted at a breakpoint.
func (d *Debugger) Halted() int { return d.halted }

// Check scans enabled breakpoints in insertion order and, on the first
// match, drives RDY low, records its index as the halted breakpoint, and
// returns true. Called once per committed instruction (not per cycle —
// address/cycle/time breakpoints are instruction-boundary conditions by
// nature; a JAM breakpoint is checked directly against c.Jammed()).
func (d *Debugger) Check(c *cpu.Chip, cyclesSoFar uint64, elapsedSeconds float64) bool {
	for i, bp := range d.breakpoints {
		if !bp.Enabled {
			continue
		}
		var hit bool
		switch bp.Expr.Cond {
		case haltexpr.CondAddr:
			hit = c.PC == bp.Expr.Address
		case haltexpr.CondCycles:
			hit = cyclesSoFar >= bp.Expr.Cycles
		case haltexpr.CondTime:
			hit = elapsedSeconds >= bp.Expr.Seconds
		case haltexpr.CondJam:
			hit = c.Jammed()
		}
		if hit {
			d.halted = i
			d.rdy.Set(true)
			return true
		}
	}
	return false
}

// Reset clears the RDY stall and the halted-at index, letting the CPU
// resume after a breakpoint hit (e.g. after a debugger single-step or
// continue command).
func (d *Debugger) Reset() {
	d.rdy.Set(false)
	d.halted = -1
}

// vectorOverride is a bus.Device decorator swapped in for the partition
// holding the reset vector: $FFFC/$FFFD always answer with a fixed address,
// and every other address is delegated to the real device underneath, for
// forcing the next reset to jump somewhere
// specific (e.g. a test ROM's entry point).
type vectorOverride struct {
	addr  uint16
	inner bus.Device // every address other than $FFFC/$FFFD goes here
}

func isResetVector(addr uint16) bool { return addr == 0xFFFC || addr == 0xFFFD }

func (v *vectorOverride) Read(addr uint16) (uint8, bool) {
	if !isResetVector(addr) {
		return v.inner.Read(addr)
	}
	lo, hi := bits.Split(v.addr)
	if addr&1 == 0 {
		return lo, true
	}
	return hi, true
}

func (v *vectorOverride) Write(addr uint16, val uint8) bool {
	if !isResetVector(addr) {
		return v.inner.Write(addr, val)
	}
	return false
}

func (v *vectorOverride) DMA(addr uint16, dest []uint8) int {
	if !isResetVector(addr) {
		return v.inner.DMA(addr, dest)
	}
	lo, hi := bits.Split(v.addr)
	pair := [2]uint8{lo, hi}
	n := copy(dest, pair[addr&1:])
	return n
}

// SetVectorOverride installs a decorator at the reset vector that always
// answers with addr, remembering the device it replaced. Only one override
// can be active; calling it again replaces the override in place (the
// originally-saved priorDev is untouched).
func (d *Debugger) SetVectorOverride(addr uint16) bool {
	if d.overrideDev != nil {
		d.overrideDev.addr = addr
		return true
	}
	dev := &vectorOverride{addr: addr}
	prev, ok := d.b.Swap(0xFFFC, dev)
	if !ok {
		return false
	}
	dev.inner = prev
	d.overrideDev = dev
	d.priorDev = prev
	return true
}

// ClearVectorOverride removes the override, restoring the original reset
// vector device. No-op if no override is active.
func (d *Debugger) ClearVectorOverride() {
	if d.overrideDev == nil {
		return
	}
	d.b.Set(0xFFFC, d.priorDev)
	d.overrideDev = nil
	d.priorDev = nil
}
