// Package nes wires a cpu.Chip to a minimal NES-shaped address bus: 2KB of
// work RAM mirrored across the $0000-$1FFF window, a pluggable cartridge
// device at $8000-$FFFF, and a debugger/tracer pair attached for
// inspection. PPU/APU register emulation is out of scope here — the $2000-
// $7FFF window is left as an inert placeholder a caller can Set a real
// device into.
package nes

import (
	"github.com/sixfiveohtwo/mos6502/bus"
	"github.com/sixfiveohtwo/mos6502/cpu"
	"github.com/sixfiveohtwo/mos6502/debugger"
	"github.com/sixfiveohtwo/mos6502/trace"
)

const (
	ramSize   = 2048
	ramMirror = 0x2000
	ppuBase   = 0x2000
	cartBase  = 0x8000
)

// ram is the console's 2KB work RAM, mirrored four times across the
// $0000-$1FFF window by masking the address down to 11 bits.
type ram struct {
	mem [ramSize]uint8
}

func (r *ram) Read(addr uint16) (uint8, bool) {
	return r.mem[addr&(ramSize-1)], true
}

func (r *ram) Write(addr uint16, v uint8) bool {
	r.mem[addr&(ramSize-1)] = v
	return true
}

func (r *ram) DMA(addr uint16, dest []uint8) int {
	n := 0
	for i := range dest {
		dest[i] = r.mem[(addr+uint16(i))&(ramSize-1)]
		n++
	}
	return n
}

// Def configures a new Console.
type Def struct {
	CPUType cpu.Type
	Cart    bus.Device // plugged at $8000; nil installs bus.NullDevice
}

// Console is a complete, minimal NES CPU harness: bus + RAM + cartridge +
// CPU + debugger + tracer, wired the way a real board's address decoding
// does it.
type Console struct {
	Bus *bus.Bus
	CPU *cpu.Chip
	Dbg *debugger.Debugger
	Trc *trace.Tracer

	ram *ram
}

// New constructs a Console without powering the CPU on. Call PowerOn to
// queue the reset sequence, then pump Cycle through the 7-cycle reset
// before the first real instruction fetch happens.
func New(def Def) *Console {
	b, err := bus.New(16, []uint16{0, ppuBase, cartBase})
	if err != nil {
		panic(err)
	}

	r := &ram{}
	b.Set(0, r)
	// $2000-$7FFF (PPU/APU registers, expansion ROM) left as NullDevice;
	// callers wire a real PPU/APU device in here via Bus.Set.

	cart := def.Cart
	if cart == nil {
		cart = bus.NullDevice{}
	}
	b.Set(cartBase, cart)

	dbg := debugger.New(b)
	c := cpu.New(cpu.Def{Bus: b, Type: def.CPUType, RDY: dbg.RDY()})

	return &Console{
		Bus: b,
		CPU: c,
		Dbg: dbg,
		Trc: trace.New(discard{}),
		ram: r,
	}
}

// PowerOn resets the console's CPU.
func (n *Console) PowerOn() {
	n.CPU.PowerOn()
}

// ConnectCart swaps in a new cartridge device at $8000, returning the
// previous one (for hot-swap test harnesses; real hardware never does
// this mid-run).
func (n *Console) ConnectCart(dev bus.Device) bus.Device {
	prev, _ := n.Bus.Swap(cartBase, dev)
	return prev
}

// DisconnectCart removes the cartridge device, replacing it with
// bus.NullDevice.
func (n *Console) DisconnectCart() {
	n.Bus.Clear(cartBase)
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
