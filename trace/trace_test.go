package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-test/deep"

	"github.com/sixfiveohtwo/mos6502/bus"
	"github.com/sixfiveohtwo/mos6502/cpu"
)

type flatMem map[uint16]uint8

func (m flatMem) Read(addr uint16) (uint8, bool)  { return m[addr], true }
func (m flatMem) Write(addr uint16, v uint8) bool { m[addr] = v; return true }
func (m flatMem) DMA(addr uint16, dest []uint8) int {
	for i := range dest {
		dest[i] = m[addr+uint16(i)]
	}
	return len(dest)
}

func TestLogWritesLineWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	tr := New(&buf)
	tr.On(true)

	mem := flatMem{0x8000: 0xA9, 0x8001: 0x42}
	tr.Log(0x8000, 7, func(a uint16) (uint8, bool) { v, ok := mem[a]; return v, ok })

	out := buf.String()
	if !strings.Contains(out, "CYC:7") || !strings.Contains(out, "LDA") {
		t.Errorf("trace line = %q", out)
	}
}

func TestLogNoOpWhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	tr := New(&buf)
	mem := flatMem{0x8000: 0xEA}
	tr.Log(0x8000, 0, func(a uint16) (uint8, bool) { v, ok := mem[a]; return v, ok })
	if buf.Len() != 0 {
		t.Errorf("expected no output while disabled, got %q", buf.String())
	}
}

func TestSnapshotDoesNotAliasLiveState(t *testing.T) {
	b, _ := bus.New(16, []uint16{0})
	mem := flatMem{0x0000: 0x11, 0x0001: 0x22}
	b.Set(0, mem)
	c := cpu.New(cpu.Def{Bus: b})
	c.PowerOn()
	c.A = 0x55

	window := make([]uint8, 2)
	b.DMA(0, window)
	snap := Capture(c, 0, window)

	c.A = 0x99
	mem[0x0000] = 0xFF

	if snap.A != 0x55 {
		t.Errorf("snapshot.A = %.2X, mutated after capture", snap.A)
	}
	if snap.Mem[0] != 0x11 {
		t.Errorf("snapshot.Mem[0] = %.2X, mutated after capture", snap.Mem[0])
	}
}

func TestCaptureIsDeeplyReproducible(t *testing.T) {
	b, _ := bus.New(16, []uint16{0})
	mem := flatMem{0x0000: 0xAA}
	b.Set(0, mem)
	c := cpu.New(cpu.Def{Bus: b})
	c.PowerOn()

	window := make([]uint8, 1)
	b.DMA(0, window)
	first := Capture(c, 0, window)
	second := Capture(c, 0, window)

	if diff := deep.Equal(first, second); diff != nil {
		t.Errorf("two captures of unchanged state should be equal, diff: %v\n%s", diff, first.Dump())
	}
}
