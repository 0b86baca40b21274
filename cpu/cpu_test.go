package cpu

import (
	"testing"

	"github.com/sixfiveohtwo/mos6502/bus"
	"github.com/sixfiveohtwo/mos6502/irq"
)

func newTestChip(t *testing.T, mem map[uint16]uint8) (*Chip, *testBus) {
	t.Helper()
	b, err := bus.New(16, []uint16{0})
	if err != nil {
		t.Fatalf("bus.New: %v", err)
	}
	tb := &testBus{mem: mem}
	b.Set(0, tb)
	c := New(Def{Bus: b})
	return c, tb
}

// testBus is a flat 64KB memory device for CPU tests.
type testBus struct {
	mem map[uint16]uint8
}

func (b *testBus) Read(addr uint16) (uint8, bool) {
	return b.mem[addr], true
}

func (b *testBus) Write(addr uint16, v uint8) bool {
	b.mem[addr] = v
	return true
}

func (b *testBus) DMA(addr uint16, dest []uint8) int {
	n := 0
	for i := range dest {
		dest[i] = b.mem[addr+uint16(i)]
		n++
	}
	return n
}

func powerOnAt(c *Chip, tb *testBus, resetVector uint16) {
	tb.mem[0xFFFC] = uint8(resetVector & 0xFF)
	tb.mem[0xFFFD] = uint8(resetVector >> 8)
	c.PowerOn()
	// PowerOn only queues the reset; run it to completion (7 cycles).
	for i := 0; i < 7; i++ {
		c.Cycle()
	}
}

func TestResetLoadsPCFromVector(t *testing.T) {
	c, tb := newTestChip(t, map[uint16]uint8{})
	powerOnAt(c, tb, 0x8000)
	if c.PC != 0x8000 {
		t.Errorf("PC = %.4X, want 8000", c.PC)
	}
}

func TestADCImmediateSetsFlags(t *testing.T) {
	mem := map[uint16]uint8{0x8000: 0x69, 0x8001: 0x01}
	c, tb := newTestChip(t, mem)
	powerOnAt(c, tb, 0x8000)
	c.A = 0xFF
	for i := 0; i < 2; i++ {
		c.Cycle()
	}
	if c.A != 0x00 {
		t.Errorf("A = %.2X, want 00", c.A)
	}
	if !c.cFlag || !c.zFlag {
		t.Errorf("C=%v Z=%v, want both true", c.cFlag, c.zFlag)
	}
}

func TestBRKPushesAndSetsI(t *testing.T) {
	mem := map[uint16]uint8{0x8000: 0x00, 0xFFFE: 0x00, 0xFFFF: 0x90}
	c, tb := newTestChip(t, mem)
	powerOnAt(c, tb, 0x8000)
	for i := 0; i < 7; i++ {
		c.Cycle()
	}
	if c.PC != 0x9000 {
		t.Errorf("PC = %.4X, want 9000", c.PC)
	}
	if !c.iFlag {
		t.Error("I flag should be set after BRK")
	}
	pushedStatus := tb.mem[0x0100|uint16(c.S+1)]
	if pushedStatus&flagB == 0 {
		t.Error("BRK should push status with B set")
	}
}

func TestNMIHijacksBRKSequence(t *testing.T) {
	mem := map[uint16]uint8{0x8000: 0x00, 0xFFFE: 0x00, 0xFFFF: 0x90, 0xFFFA: 0x00, 0xFFFB: 0xA0}
	c, tb := newTestChip(t, mem)
	powerOnAt(c, tb, 0x8000)
	nmi := &irq.Line{}
	c.nmiSrc = nmi

	c.Cycle() // opcode fetch of BRK
	c.Cycle() // t0: BRK padding byte read
	c.Cycle() // t1: push PCH
	nmi.Set(true)
	c.Cycle() // t2: push PCL, NMI edge detected
	nmi.Set(false)
	c.Cycle() // t3: push status, late-poll sees NMI detected
	c.Cycle() // t4: adl from NMI vector
	c.Cycle() // t5: adh from NMI vector, PC loaded, sequence ends

	if c.PC != 0xA000 {
		t.Errorf("PC = %.4X, want A000 (NMI vector, hijacked from BRK)", c.PC)
	}
}

func TestJamSpinsForever(t *testing.T) {
	mem := map[uint16]uint8{0x8000: 0x02}
	c, tb := newTestChip(t, mem)
	powerOnAt(c, tb, 0x8000)
	c.Cycle() // opcode fetch
	c.Cycle() // JAM body latches the jammed state
	if !c.Jammed() {
		t.Fatal("expected chip to be jammed after opcode $02")
	}
	pcBefore := c.PC
	for i := 0; i < 10; i++ {
		c.Cycle()
	}
	if c.PC != pcBefore {
		t.Errorf("PC moved while jammed: %.4X -> %.4X", pcBefore, c.PC)
	}
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	mem := map[uint16]uint8{
		0x8000: 0x6C, 0x8001: 0xFF, 0x8002: 0x30, // JMP ($30FF)
		0x30FF: 0x00, 0x3000: 0x90, // wrong high-byte source if bug present
		0x3100: 0xAA,
	}
	c, tb := newTestChip(t, mem)
	powerOnAt(c, tb, 0x8000)
	for i := 0; i < 5; i++ {
		c.Cycle()
	}
	if c.PC != 0x9000 {
		t.Errorf("PC = %.4X, want 9000 (page-wrap bug reading high byte from $3000)", c.PC)
	}
}

func TestAbsoluteXPageCrossAddsCycle(t *testing.T) {
	// LDA $30FF,X with X=1 crosses into page $31: takes 5 cycles, not 4.
	mem := map[uint16]uint8{0x8000: 0xBD, 0x8001: 0xFF, 0x8002: 0x30, 0x3100: 0x42}
	c, tb := newTestChip(t, mem)
	powerOnAt(c, tb, 0x8000)
	c.X = 1
	for i := 0; i < 5; i++ {
		c.Cycle()
	}
	if c.A != 0x42 {
		t.Errorf("A = %.2X, want 42", c.A)
	}
}

func TestBranchPollsIRQBeforeTaken(t *testing.T) {
	// BEQ with Z set, no page cross: takes 3 cycles total (fetch + 2 body
	// cycles), landing on a NOP at the target.
	mem := map[uint16]uint8{0x8000: 0xF0, 0x8001: 0x02, 0x8004: 0xEA}
	b, _ := bus.New(16, []uint16{0})
	tb := &testBus{mem: mem}
	b.Set(0, tb)
	line := &irq.Line{}
	c := New(Def{Bus: b, IRQ: line})
	tb.mem[0xFFFE] = 0x00
	tb.mem[0xFFFF] = 0x90
	powerOnAt(c, tb, 0x8000)
	c.zFlag = true
	c.iFlag = false

	c.Cycle() // fetches BEQ
	// Raise IRQ only once BEQ is already underway: a taken, non-crossing
	// branch is not a polling point, so this must not be serviced until
	// after the following instruction.
	line.Set(true)
	c.Cycle() // stepBranch t0: evaluates condition, computes target
	c.Cycle() // stepBranch t1: takes the branch, sets skipPoll, retires
	if c.PC != 0x8004 {
		t.Errorf("PC after branch = %.4X, want 8004", c.PC)
	}
	if c.servicingIRQ {
		t.Error("IRQ serviced immediately after the branch that polled it, want deferred")
	}

	c.Cycle() // fetches NOP at 8004 (skipPoll suppresses this boundary's poll)
	c.Cycle() // executes NOP, retires
	if c.servicingIRQ {
		t.Error("IRQ serviced during the instruction following the branch, want deferred one more")
	}

	c.Cycle() // next boundary: poll is no longer suppressed, IRQ commits
	if !c.servicingIRQ {
		t.Error("IRQ not serviced at the next real polling point after the delay")
	}
}

func TestDecimalADCRicohIgnoresD(t *testing.T) {
	mem := map[uint16]uint8{0x8000: 0x69, 0x8001: 0x01}
	b, _ := bus.New(16, []uint16{0})
	tb := &testBus{mem: mem}
	b.Set(0, tb)
	c := New(Def{Bus: b, Type: TypeRicoh})
	powerOnAt(c, tb, 0x8000)
	c.A = 0x09
	c.dFlag = true
	for i := 0; i < 2; i++ {
		c.Cycle()
	}
	if c.A != 0x0A {
		t.Errorf("Ricoh ADC with D set should behave binary: A = %.2X, want 0A", c.A)
	}
}

func TestDecimalADCNMOSAdjusts(t *testing.T) {
	mem := map[uint16]uint8{0x8000: 0x69, 0x8001: 0x01}
	c, tb := newTestChip(t, mem)
	powerOnAt(c, tb, 0x8000)
	c.A = 0x09
	c.dFlag = true
	for i := 0; i < 2; i++ {
		c.Cycle()
	}
	if c.A != 0x10 {
		t.Errorf("NMOS decimal ADC: A = %.2X, want 10 (BCD 09+01)", c.A)
	}
}

func TestLAXLoadsBothRegisters(t *testing.T) {
	mem := map[uint16]uint8{0x8000: 0xA7, 0x8001: 0x10, 0x0010: 0x77}
	c, tb := newTestChip(t, mem)
	powerOnAt(c, tb, 0x8000)
	for i := 0; i < 3; i++ {
		c.Cycle()
	}
	if c.A != 0x77 || c.X != 0x77 {
		t.Errorf("A=%.2X X=%.2X, want both 77", c.A, c.X)
	}
}

func TestSLORMWCombinesShiftAndOr(t *testing.T) {
	mem := map[uint16]uint8{0x8000: 0x07, 0x8001: 0x10, 0x0010: 0x81}
	c, tb := newTestChip(t, mem)
	powerOnAt(c, tb, 0x8000)
	c.A = 0x01
	for i := 0; i < 5; i++ {
		c.Cycle()
	}
	if tb.mem[0x0010] != 0x02 {
		t.Errorf("memory = %.2X, want 02 (0x81<<1)", tb.mem[0x0010])
	}
	if c.A != 0x03 {
		t.Errorf("A = %.2X, want 03 (0x01 | 0x02)", c.A)
	}
	if !c.cFlag {
		t.Error("C should be set (bit 7 of 0x81 was 1)")
	}
}
