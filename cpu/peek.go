package cpu

import "github.com/sixfiveohtwo/mos6502/decode"

// PeekResult is the outcome of previewing the instruction at an address
// without perturbing any CPU or bus state.
type PeekResult struct {
	Mode      decode.AddrMode
	InterAddr uint16 // intermediate pointer address for indirect modes
	FinalAddr uint16
	Data      uint8
	BusFault  bool
}

// Peek runs the instruction at addr to completion against a scratch copy of
// the chip's registers, in detached mode (so every bus Write becomes a
// no-op and device Read side effects are suppressed), then restores the
// real chip state exactly as it was. Used by the disassembler/debugger to
// preview effective addresses and operand values.
func (c *Chip) Peek(addr uint16) PeekResult {
	backup := *c
	defer func() { *c = backup }()

	c.detached = true
	c.busFault = false
	c.t = -1
	c.PC = addr
	c.sig.SYNC = false

	// A peek run must never be hijacked by a real pending interrupt: clear
	// every latch and servicing flag so beginInstruction always falls
	// through to the plain opcode fetch at addr.
	c.irqLatch, c.nmiLatch, c.resLatch = latchClear, latchClear, latchClear
	c.nmiPrevLine = false
	c.servicingReset, c.servicingNMI, c.servicingIRQ = false, false, false
	c.hijackedByNMI = false
	c.skipPoll = false

	c.beginInstruction()
	for c.t >= 0 && !c.jammed {
		c.stepInstruction()
		if c.jammed {
			break
		}
	}

	final := c.operAddr
	if c.entry.Mode == decode.IMM {
		final = addr + 1
	}
	if c.entry.Mode == decode.IMP || c.entry.Mode == decode.PSH || c.entry.Mode == decode.PLL {
		final = 0
	}

	return PeekResult{
		Mode:      c.entry.Mode,
		InterAddr: c.interAddr,
		FinalAddr: final,
		Data:      c.databus,
		BusFault:  c.busFault,
	}
}
