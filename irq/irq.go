// Package irq defines the basic interfaces for working with a 6502 family
// interrupt line. A source of an interrupt/ready line (IRQ/NMI/RDY/RESET)
// implements this interface, and the receiver (cpu.Chip) polls it, so
// neither side's logic is cross-coupled with the other's.
// NOTE: Even though real chips distinguish level (IRQ/RDY/RESET) from edge
// (NMI) interrupt lines, the interface here doesn't encode that distinction
// itself — it's accounted for by the consumer's own latch state machine
// (see cpu.Chip) on every clock cycle.
package irq

// Sender defines the interface for an interrupt/ready source.
type Sender interface {
	// Raised indicates whether the line is currently held active (low, in
	// real 6502 signal terms, since these are all active-low pins).
	Raised() bool
}

// Line is a simple settable Sender, used by harnesses and tests that want
// to drive a signal line directly rather than wiring up a real device.
type Line struct {
	raised bool
}

// Raised implements Sender.
func (l *Line) Raised() bool {
	return l.raised
}

// Set drives the line to the given state.
func (l *Line) Set(raised bool) {
	l.raised = raised
}
