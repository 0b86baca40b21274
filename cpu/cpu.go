// Package cpu implements a cycle-accurate MOS 6502 family core: register
// file, status flags, the interrupt latch state machines for RESET/NMI/IRQ,
// every addressing-mode micro-sequence, and the full official plus
// undocumented opcode set. One call to Cycle advances the chip by exactly
// one clock pulse.
package cpu

import (
	"fmt"

	"github.com/sixfiveohtwo/mos6502/bits"
	"github.com/sixfiveohtwo/mos6502/bus"
	"github.com/sixfiveohtwo/mos6502/decode"
	"github.com/sixfiveohtwo/mos6502/irq"
)

// Type selects which family member's quirks this Chip emulates.
type Type int

// Type enumerants.
const (
	TypeNMOS    Type = iota // stock MOS 6502/6510: JMP (ind) page-wrap bug, BCD works
	TypeRicoh            // Ricoh 2A03/2A07 (NES): identical to NMOS but D flag has no decimal-mode effect
	TypeCMOS              // 65C02-class: JMP (ind) bug fixed; no other CMOS differences are modeled
)

const (
	vectorNMI   uint16 = 0xFFFA
	vectorRESET uint16 = 0xFFFC
	vectorIRQ   uint16 = 0xFFFE

	flagC uint8 = 1 << 0
	flagZ uint8 = 1 << 1
	flagI uint8 = 1 << 2
	flagD uint8 = 1 << 3
	flagB uint8 = 1 << 4
	flagU uint8 = 1 << 5 // unused, always reads 1
	flagV uint8 = 1 << 6
	flagN uint8 = 1 << 7
)

// InvalidState reports a programmer-precondition violation (a nil Bus passed
// to New, an addressing mode or instruction the dispatch has no case for).
// These are bugs in the calling
// code, not recoverable runtime conditions, so Chip methods panic with this
// type rather than returning an error.
type InvalidState struct {
	Reason string
}

// Error implements the error interface.
func (e InvalidState) Error() string {
	return fmt.Sprintf("invalid cpu state: %s", e.Reason)
}

// latchState models the three-stage level/edge detection every interrupt
// line goes through: the chip notices the line is active (Detected), the
// detection survives to an instruction boundary (Pending), and finally the
// sequencer commits to servicing it (Committed) and clears back to Clear.
type latchState int

const (
	latchClear latchState = iota
	latchDetected
	latchPending
	latchCommitted
)

// Signal is the bundle of control-line state visible to peek/snapshot
// consumers, mirroring the pins of a physical 6502.
type Signal struct {
	IRQ, NMI, RES, RDY, RW, SYNC bool
}

// Def configures a new Chip. Bus is required; the interrupt senders may be
// nil, in which case the corresponding line is treated as permanently
// inactive.
type Def struct {
	Bus  *bus.Bus
	Type Type
	IRQ  irq.Sender
	NMI  irq.Sender
	RDY  irq.Sender
	RES  irq.Sender
}

// Chip is one MOS 6502 family core.
type Chip struct {
	Bus *bus.Bus

	typ Type

	// Registers.
	PC             uint16
	A, X, Y, S     uint8
	cFlag, zFlag   bool
	iFlag, dFlag   bool
	vFlag, nFlag   bool

	// Interrupt sources.
	irqSrc, nmiSrc, rdySrc, resSrc irq.Sender

	irqLatch    latchState
	nmiLatch    latchState
	nmiPrevLine bool
	resLatch    latchState
	skipPoll    bool // set by a taken, non-page-crossing branch: its own
	// retirement is not an interrupt polling point, so the next
	// instruction boundary must defer NMI/IRQ promotion and commit by
	// one more instruction.

	// Per-instruction datapath state.
	t        int8 // -1 before the first cycle of a fetch; 0..N mid-instruction
	opc      uint8
	entry    decode.Entry
	addrinst uint16 // PC at the cycle the current opcode was fetched
	addrbus  uint16
	databus  uint8
	adl, adh, adc uint8

	operAddr    uint16
	interAddr   uint16 // intermediate pointer address, for peek's effective-address chain
	ptrLo       uint8
	pageCrossed bool
	branchTaken bool

	servicingReset bool
	servicingNMI   bool
	servicingIRQ   bool
	hijackedByNMI  bool

	busFault bool
	detached bool // true while peeking; suppresses all side effects
	jammed   bool

	sig Signal
}

// New constructs a Chip from def. The chip is not runnable until PowerOn.
func New(def Def) *Chip {
	if def.Bus == nil {
		panic(InvalidState{"cpu.New requires a non-nil Bus"})
	}
	return &Chip{
		Bus:    def.Bus,
		typ:    def.Type,
		irqSrc: def.IRQ,
		nmiSrc: def.NMI,
		rdySrc: def.RDY,
		resSrc: def.RES,
		t:      -1,
	}
}

// PowerOn resets all registers and signal latches to their documented
// power-up state and queues a reset sequence as the first thing Cycle will
// run.
func (c *Chip) PowerOn() {
	c.A, c.X, c.Y = 0, 0, 0
	c.S = 0xFD
	c.cFlag, c.zFlag, c.vFlag, c.nFlag = false, false, false, false
	c.dFlag = false
	c.iFlag = true
	c.t = -1
	c.irqLatch, c.nmiLatch, c.resLatch = latchClear, latchClear, latchPending
	c.nmiPrevLine = false
	c.busFault = false
	c.jammed = false
	c.sig = Signal{RW: true}
}

// Jammed reports whether the chip has executed a JAM opcode and is spinning
// in place; only PowerOn recovers it.
func (c *Chip) Jammed() bool { return c.jammed }

// Signals returns the current pin state, for snapshot/debugger use.
func (c *Chip) Signals() Signal { return c.sig }

func (c *Chip) status(breakFlag bool) uint8 {
	var p uint8
	if c.cFlag {
		p |= flagC
	}
	if c.zFlag {
		p |= flagZ
	}
	if c.iFlag {
		p |= flagI
	}
	if c.dFlag {
		p |= flagD
	}
	if c.vFlag {
		p |= flagV
	}
	if c.nFlag {
		p |= flagN
	}
	p |= flagU
	if breakFlag {
		p |= flagB
	}
	return p
}

func (c *Chip) setStatus(p uint8) {
	c.cFlag = p&flagC != 0
	c.zFlag = p&flagZ != 0
	c.iFlag = p&flagI != 0
	c.dFlag = p&flagD != 0
	c.vFlag = p&flagV != 0
	c.nFlag = p&flagN != 0
}

// Status returns the processor status byte as it would read from a PHP.
func (c *Chip) Status() uint8 { return c.status(true) }

// SetStatus loads all six user-visible flags from p; bits 4 and 5 are
// ignored, matching PLP/RTI semantics.
func (c *Chip) SetStatus(p uint8) { c.setStatus(p) }

func (c *Chip) setZN(v uint8) {
	c.zFlag = v == 0
	c.nFlag = v&0x80 != 0
}

// read performs a bus read, recording the datapath latches and raising the
// bus-fault latch on a miss. In detached (peek) mode the fault is raised on
// the scratch state Peek runs against, so PeekResult can report it.
func (c *Chip) read(addr uint16) uint8 {
	v, ok := c.Bus.Read(addr)
	c.addrbus = addr
	if !ok {
		c.busFault = true
		return 0xFF
	}
	c.databus = v
	return v
}

func (c *Chip) write(addr uint16, v uint8) {
	c.addrbus = addr
	c.databus = v
	if c.detached {
		return
	}
	if !c.Bus.Write(addr, v) {
		c.busFault = true
	}
}

func (c *Chip) push(v uint8) {
	c.write(0x0100|uint16(c.S), v)
	c.S--
}

func (c *Chip) pull() uint8 {
	c.S++
	return c.read(0x0100 | uint16(c.S))
}

// pollInterrupts updates the level/edge latches from the live signal lines.
// NMI is edge-triggered (latches on a high-to-low transition and holds
// until serviced); IRQ is level-triggered (latches while active, and a
// Detected or Pending latch clears immediately once the line goes
// inactive). RESET latches while active and is not cleared by the line going
// inactive; it stays set until the reset sequence runs. Detection is always
// line-only: whether a detected IRQ ever gets to fire is decided later, at
// the commit/poll point in beginInstruction, where the I flag is actually
// consulted.
func (c *Chip) pollInterrupts() {
	nmiLine := c.nmiSrc != nil && c.nmiSrc.Raised()
	if nmiLine && !c.nmiPrevLine && c.nmiLatch == latchClear {
		c.nmiLatch = latchDetected
	}
	c.nmiPrevLine = nmiLine

	irqLine := c.irqSrc != nil && c.irqSrc.Raised()
	if irqLine {
		if c.irqLatch == latchClear {
			c.irqLatch = latchDetected
		}
	} else if c.irqLatch == latchDetected || c.irqLatch == latchPending {
		c.irqLatch = latchClear
	}

	resLine := c.resSrc != nil && c.resSrc.Raised()
	if resLine && c.resLatch == latchClear {
		c.resLatch = latchDetected
	}
}

// Reset schedules a reset sequence to begin at the next instruction
// boundary check, matching the level-sensed RESET line's detect-then-commit
// latch behaviour. Useful when no RES Sender is wired into Def and a
// harness wants to force a one-shot reset directly.
func (c *Chip) Reset() {
	if c.resLatch == latchClear {
		c.resLatch = latchDetected
	}
}

// promoteLatches moves a Detected RESET latch to Pending. RESET is never
// deferred by branch polling suppression: the line is checked every cycle
// regardless of what instruction is in flight.
func (c *Chip) promoteLatches() {
	if c.resLatch == latchDetected {
		c.resLatch = latchPending
	}
}

// promoteDeferrableLatches moves Detected NMI/IRQ latches to Pending. Unlike
// RESET, this step is the actual interrupt polling point and a taken,
// non-page-crossing branch skips it for one instruction boundary (see
// skipPoll).
func (c *Chip) promoteDeferrableLatches() {
	if c.nmiLatch == latchDetected {
		c.nmiLatch = latchPending
	}
	if c.irqLatch == latchDetected {
		c.irqLatch = latchPending
	}
}

// Cycle advances the chip by exactly one clock pulse and returns the number
// of cycles consumed: 0 when an asserted RDY stalls the chip at an
// instruction boundary, 1 otherwise.
func (c *Chip) Cycle() int {
	if c.jammed {
		return 1
	}
	// A bus fault only stays visible for the cycle that raised it.
	c.busFault = false

	if c.rdySrc != nil && c.rdySrc.Raised() && c.t < 0 {
		c.sig.RDY = false
		return 0
	}
	c.sig.RDY = true

	// RESET, once committed, holds the chip at T0 with no bus activity for
	// as long as the line stays asserted; the reset sequence itself only
	// starts running once the line releases.
	if c.resLatch == latchCommitted && c.servicingReset && c.t == 0 &&
		c.resSrc != nil && c.resSrc.Raised() {
		return 1
	}

	c.pollInterrupts()

	if c.t < 0 {
		c.beginInstruction()
		return 1
	}

	c.stepInstruction()
	return 1
}

func (c *Chip) beginInstruction() {
	poll := !c.skipPoll
	c.skipPoll = false
	c.addrinst = c.PC

	c.promoteLatches()
	if poll {
		c.promoteDeferrableLatches()
	}

	if c.resLatch == latchPending {
		c.resLatch = latchCommitted
		c.servicingReset = true
		c.servicingNMI = false
		c.servicingIRQ = false
		c.hijackedByNMI = false
		c.t = 0
		c.sig.SYNC = false
		return
	}
	if poll && c.nmiLatch == latchPending {
		c.nmiLatch = latchCommitted
		c.servicingNMI = true
		c.servicingReset = false
		c.servicingIRQ = false
		c.t = 0
		c.sig.SYNC = false
		return
	}
	if poll && c.irqLatch == latchPending && !c.iFlag {
		c.irqLatch = latchCommitted
		c.servicingIRQ = true
		c.servicingReset = false
		c.servicingNMI = false
		c.t = 0
		c.sig.SYNC = false
		return
	}

	c.sig.SYNC = true
	c.opc = c.read(c.PC)
	c.PC++
	c.entry = decode.Table[c.opc]
	c.t = 0
	c.sig.SYNC = false

	// BRK's own opcode fetch looks identical to an interrupt sequence from
	// cycle 1 onward, so route it through the same machinery.
	if c.entry.Mode == decode.BRKM {
		c.servicingReset, c.servicingNMI, c.servicingIRQ = false, false, false
	}
}

// stepInstruction advances the current in-flight instruction (interrupt
// sequence, addressing-mode fetch, or opcode body) by one cycle.
func (c *Chip) stepInstruction() {
	switch {
	case c.servicingReset:
		c.stepReset()
	case c.servicingNMI, c.servicingIRQ, c.entry.Mode == decode.BRKM:
		c.stepInterruptOrBRK()
	default:
		c.stepOpcode()
	}
}

// stepReset runs the documented 7 (effectively 6 externally-visible, t 0..5
// here since fetch already consumed one) cycle power-up/reset sequence: it
// reads garbage from the stack without writing, then loads PC from the
// reset vector.
func (c *Chip) stepReset() {
	switch c.t {
	case 0, 1:
		c.read(0x0100 | uint16(c.S))
	case 2:
		c.read(0x0100 | uint16(c.S))
		c.S--
	case 3:
		c.read(0x0100 | uint16(c.S))
		c.S--
		c.iFlag = true
	case 4:
		lo := c.read(vectorRESET)
		c.adl = lo
	case 5:
		hi := c.read(vectorRESET + 1)
		c.adh = hi
		c.PC = bits.Join(c.adl, c.adh)
		c.servicingReset = false
		c.resLatch = latchClear
		c.t = -1
		return
	}
	c.t++
}

// stepInterruptOrBRK runs the shared 7-cycle BRK/IRQ/NMI sequence: push PC
// and status (with the B flag set only for a real BRK), set I, then fetch
// PC from the appropriate vector. A higher-priority latch (NMI over IRQ,
// and RESET preempting everything at beginInstruction) can hijack a BRK or
// IRQ sequence already in flight if it's detected before the vector fetch
// commits.
func (c *Chip) stepInterruptOrBRK() {
	isBRK := c.entry.Mode == decode.BRKM && !c.servicingNMI && !c.servicingIRQ
	switch c.t {
	case 0:
		if isBRK {
			c.read(c.PC)
			c.PC++
		}
	case 1:
		c.push(uint8(c.PC >> 8))
	case 2:
		c.push(uint8(c.PC & 0xFF))
	case 3:
		c.push(c.status(isBRK))
		c.iFlag = true
		// Late poll: an NMI detected up through this cycle hijacks an
		// in-flight BRK/IRQ sequence, redirecting the vector fetch. The
		// latch may still only be Detected here, since promotion to
		// Pending normally waits for the next instruction boundary.
		if (c.nmiLatch == latchDetected || c.nmiLatch == latchPending) && !c.servicingNMI {
			c.nmiLatch = latchCommitted
			c.hijackedByNMI = true
		}
	case 4:
		vec := vectorIRQ
		if c.servicingNMI || c.hijackedByNMI {
			vec = vectorNMI
		}
		c.adl = c.read(vec)
	case 5:
		vec := vectorIRQ
		if c.servicingNMI || c.hijackedByNMI {
			vec = vectorNMI
		}
		c.adh = c.read(vec + 1)
		c.PC = bits.Join(c.adl, c.adh)
		c.servicingNMI = false
		c.servicingIRQ = false
		c.hijackedByNMI = false
		if c.irqLatch == latchCommitted {
			c.irqLatch = latchClear
		}
		if c.nmiLatch == latchCommitted {
			c.nmiLatch = latchClear
		}
		c.t = -1
		return
	}
	c.t++
}

// stepOpcode drives one cycle of a normal (non-interrupt) instruction:
// addressing-mode resolution followed by the opcode body once the operand
// (or, for RMW, the read value) is ready.
func (c *Chip) stepOpcode() {
	switch c.entry.Mode {
	case decode.IMP:
		c.stepImplied()
	case decode.IMM:
		c.stepImmediate()
	case decode.ZP:
		c.stepZP()
	case decode.ZPX:
		c.stepZPIndexed(c.X)
	case decode.ZPY:
		c.stepZPIndexed(c.Y)
	case decode.ABS:
		c.stepAbs()
	case decode.ABSX:
		c.stepAbsIndexed(c.X)
	case decode.ABSY:
		c.stepAbsIndexed(c.Y)
	case decode.INDX:
		c.stepIndX()
	case decode.INDY:
		c.stepIndY()
	case decode.PSH:
		c.stepPush()
	case decode.PLL:
		c.stepPull()
	case decode.BCH:
		c.stepBranch()
	case decode.JSRM:
		c.stepJSR()
	case decode.RTSM:
		c.stepRTS()
	case decode.JABS:
		c.stepJumpAbs()
	case decode.JIND:
		c.stepJumpInd()
	case decode.RTI_:
		c.stepRTI()
	case decode.JAM_:
		c.stepJam()
	default:
		panic(InvalidState{fmt.Sprintf("unhandled addressing mode %v", c.entry.Mode)})
	}
}

func (c *Chip) retire() {
	c.t = -1
}

func (c *Chip) isRMW() bool {
	switch c.entry.Instruction {
	case decode.ASL, decode.LSR, decode.ROL, decode.ROR, decode.INC, decode.DEC,
		decode.SLO, decode.SRE, decode.RLA, decode.RRA, decode.ISC, decode.DCP:
		return true
	}
	return false
}

func (c *Chip) isStore() bool {
	switch c.entry.Instruction {
	case decode.STA, decode.STX, decode.STY, decode.SAX, decode.SHA, decode.SHX, decode.SHY, decode.TAS:
		return true
	}
	return false
}

func (c *Chip) stepImplied() {
	c.read(c.PC)
	c.execImplied()
	c.retire()
}

func (c *Chip) stepImmediate() {
	c.operAddr = c.PC
	v := c.read(c.PC)
	c.PC++
	c.execWithValue(v)
	c.retire()
}

func (c *Chip) stepZP() {
	switch c.t {
	case 0:
		c.ptrLo = c.read(c.PC)
		c.PC++
	case 1:
		c.operAddr = uint16(c.ptrLo)
		if c.isStore() {
			c.execStore()
			c.retire()
			return
		}
		v := c.read(c.operAddr)
		if c.isRMW() {
			c.databus = v
			break
		}
		c.execWithValue(v)
		c.retire()
		return
	case 2:
		c.execRMW()
		c.retire()
		return
	}
	c.t++
}

func (c *Chip) stepZPIndexed(index uint8) {
	switch c.t {
	case 0:
		c.ptrLo = c.read(c.PC)
		c.PC++
	case 1:
		c.read(uint16(c.ptrLo))
		c.ptrLo += index
	case 2:
		c.operAddr = uint16(c.ptrLo)
		if c.isStore() {
			c.execStore()
			c.retire()
			return
		}
		v := c.read(c.operAddr)
		if c.isRMW() {
			c.databus = v
			break
		}
		c.execWithValue(v)
		c.retire()
		return
	case 3:
		c.execRMW()
		c.retire()
		return
	}
	c.t++
}

func (c *Chip) stepAbs() {
	switch c.t {
	case 0:
		c.adl = c.read(c.PC)
		c.PC++
	case 1:
		c.adh = c.read(c.PC)
		c.PC++
	case 2:
		c.operAddr = bits.Join(c.adl, c.adh)
		if c.isStore() {
			c.execStore()
			c.retire()
			return
		}
		v := c.read(c.operAddr)
		if c.isRMW() {
			c.databus = v
			break
		}
		c.execWithValue(v)
		c.retire()
		return
	case 3:
		c.execRMW()
		c.retire()
		return
	}
	c.t++
}

func (c *Chip) stepAbsIndexed(index uint8) {
	switch c.t {
	case 0:
		c.adl = c.read(c.PC)
		c.PC++
	case 1:
		c.adh = c.read(c.PC)
		c.PC++
		sum := uint16(c.adl) + uint16(index)
		c.pageCrossed = sum > 0xFF
		c.operAddr = bits.Join(uint8(sum), c.adh)
	case 2:
		rmw := c.isRMW()
		store := c.isStore()
		if !c.pageCrossed && !rmw && !store {
			// LOAD instructions skip the fixup read when no page cross.
			v := c.read(c.operAddr)
			c.execWithValue(v)
			c.retire()
			return
		}
		c.read(c.operAddr) // speculative read off the un-fixed-up address
		if c.pageCrossed {
			c.operAddr += 0x0100
		}
		if store {
			c.execStore()
			c.retire()
			return
		}
	case 3:
		// A page-crossing load reads the corrected address one cycle after
		// the speculative read.
		v := c.read(c.operAddr)
		if !c.isRMW() {
			c.execWithValue(v)
			c.retire()
			return
		}
		c.databus = v
	case 4:
		c.execRMW()
		c.retire()
		return
	}
	c.t++
}

func (c *Chip) stepIndX() {
	switch c.t {
	case 0:
		c.ptrLo = c.read(c.PC)
		c.PC++
	case 1:
		c.read(uint16(c.ptrLo))
		c.ptrLo += c.X
	case 2:
		c.adl = c.read(uint16(c.ptrLo))
		c.interAddr = uint16(c.ptrLo)
	case 3:
		c.adh = c.read(uint16(c.ptrLo + 1))
		c.operAddr = bits.Join(c.adl, c.adh)
	case 4:
		if c.isStore() {
			c.execStore()
			c.retire()
			return
		}
		v := c.read(c.operAddr)
		if c.isRMW() {
			c.databus = v
			break
		}
		c.execWithValue(v)
		c.retire()
		return
	case 5:
		c.execRMW()
		c.retire()
		return
	}
	c.t++
}

func (c *Chip) stepIndY() {
	switch c.t {
	case 0:
		c.ptrLo = c.read(c.PC)
		c.PC++
	case 1:
		c.adl = c.read(uint16(c.ptrLo))
	case 2:
		c.adh = c.read(uint16(c.ptrLo + 1))
		// The pre-index base address, for peek's effective-address chain.
		c.interAddr = bits.Join(c.adl, c.adh)
		sum := uint16(c.adl) + uint16(c.Y)
		c.pageCrossed = sum > 0xFF
		c.operAddr = bits.Join(uint8(sum), c.adh)
	case 3:
		rmw := c.isRMW()
		store := c.isStore()
		if !c.pageCrossed && !rmw && !store {
			v := c.read(c.operAddr)
			c.execWithValue(v)
			c.retire()
			return
		}
		c.read(c.operAddr)
		if c.pageCrossed {
			c.operAddr += 0x0100
		}
		if store {
			c.execStore()
			c.retire()
			return
		}
		if !rmw {
			v := c.read(c.operAddr)
			c.execWithValue(v)
			c.retire()
			return
		}
	case 4:
		v := c.read(c.operAddr)
		c.databus = v
	case 5:
		c.execRMW()
		c.retire()
		return
	}
	c.t++
}

func (c *Chip) stepPush() {
	switch c.t {
	case 0:
		c.read(c.PC)
	case 1:
		if c.entry.Instruction == decode.PHP {
			c.push(c.status(true))
		} else {
			c.push(c.A)
		}
		c.retire()
		return
	}
	c.t++
}

func (c *Chip) stepPull() {
	switch c.t {
	case 0:
		c.read(c.PC)
	case 1:
		c.read(0x0100 | uint16(c.S))
	case 2:
		v := c.pull()
		if c.entry.Instruction == decode.PLP {
			c.setStatus(v)
		} else {
			c.A = v
			c.setZN(c.A)
		}
		c.retire()
		return
	}
	c.t++
}

// stepBranch evaluates the branch condition on the cycle the operand is
// fetched, then takes 0/1/2 extra cycles depending on whether the branch is
// taken and whether it crosses a page, matching real timing.
func (c *Chip) stepBranch() {
	switch c.t {
	case 0:
		disp := int8(c.read(c.PC))
		c.PC++
		// A peek run always takes the branch, so its chained address
		// reflects the taken target rather than the fall-through PC.
		c.branchTaken = c.detached || c.branchCondition()
		if !c.branchTaken {
			c.retire()
			return
		}
		target := uint16(int32(c.PC) + int32(disp))
		c.pageCrossed = (target & 0xFF00) != (c.PC & 0xFF00)
		c.operAddr = target
	case 1:
		c.read(c.PC)
		if !c.pageCrossed {
			c.PC = c.operAddr
			// Taken and no page cross: this instruction's retirement is
			// not an interrupt polling point, so NMI/IRQ commit at the
			// next boundary is deferred by one more instruction.
			c.skipPoll = true
			c.retire()
			return
		}
	case 2:
		c.PC = c.operAddr
		c.retire()
		return
	}
	c.t++
}

func (c *Chip) branchCondition() bool {
	switch c.entry.Instruction {
	case decode.BPL:
		return !c.nFlag
	case decode.BMI:
		return c.nFlag
	case decode.BVC:
		return !c.vFlag
	case decode.BVS:
		return c.vFlag
	case decode.BCC:
		return !c.cFlag
	case decode.BCS:
		return c.cFlag
	case decode.BNE:
		return !c.zFlag
	case decode.BEQ:
		return c.zFlag
	}
	return false
}

func (c *Chip) stepJSR() {
	switch c.t {
	case 0:
		c.adl = c.read(c.PC)
		c.PC++
	case 1:
		c.read(0x0100 | uint16(c.S))
	case 2:
		c.push(uint8(c.PC >> 8))
	case 3:
		c.push(uint8(c.PC & 0xFF))
	case 4:
		c.adh = c.read(c.PC)
		c.PC = bits.Join(c.adl, c.adh)
		c.operAddr = c.PC
		c.retire()
		return
	}
	c.t++
}

func (c *Chip) stepRTS() {
	switch c.t {
	case 0:
		c.read(c.PC)
	case 1:
		c.read(0x0100 | uint16(c.S))
	case 2:
		c.adl = c.pull()
	case 3:
		c.adh = c.pull()
	case 4:
		c.PC = bits.Join(c.adl, c.adh)
		c.PC++
		c.retire()
		return
	}
	c.t++
}

func (c *Chip) stepRTI() {
	switch c.t {
	case 0:
		c.read(c.PC)
	case 1:
		c.read(0x0100 | uint16(c.S))
	case 2:
		c.setStatus(c.pull())
	case 3:
		c.adl = c.pull()
	case 4:
		c.adh = c.pull()
		c.PC = bits.Join(c.adl, c.adh)
		c.retire()
		return
	}
	c.t++
}

func (c *Chip) stepJumpAbs() {
	switch c.t {
	case 0:
		c.adl = c.read(c.PC)
		c.PC++
	case 1:
		c.adh = c.read(c.PC)
		c.PC = bits.Join(c.adl, c.adh)
		c.operAddr = c.PC
		c.retire()
		return
	}
	c.t++
}

func (c *Chip) stepJumpInd() {
	switch c.t {
	case 0:
		c.adl = c.read(c.PC)
		c.PC++
	case 1:
		c.adh = c.read(c.PC)
		c.PC++
	case 2:
		ptr := bits.Join(c.adl, c.adh)
		c.ptrLo = c.read(ptr)
		c.operAddr = ptr
		c.interAddr = ptr
	case 3:
		hiAddr := c.operAddr + 1
		if c.typ != TypeCMOS && uint8(c.operAddr) == 0xFF {
			// NMOS/Ricoh bug: the high-byte fetch wraps within the same
			// page instead of crossing into the next one.
			hiAddr = (c.operAddr & 0xFF00) | uint16(uint8(c.operAddr+1))
		}
		hi := c.read(hiAddr)
		c.PC = bits.Join(c.ptrLo, hi)
		c.operAddr = c.PC
		c.retire()
		return
	}
	c.t++
}

func (c *Chip) stepJam() {
	// JAM opcodes lock the chip: one read of the opcode address on the cycle
	// after the fetch latches jammed, the instruction never retires, and
	// every later Cycle returns without touching the bus.
	c.read(c.addrinst)
	c.jammed = true
}
