package nes

import "testing"

type romCart struct {
	mem [0x8000]uint8
}

func (c *romCart) Read(addr uint16) (uint8, bool) { return c.mem[addr-0x8000], true }
func (c *romCart) Write(uint16, uint8) bool        { return false }
func (c *romCart) DMA(addr uint16, dest []uint8) int {
	n := copy(dest, c.mem[addr-0x8000:])
	return n
}

func TestRAMMirroring(t *testing.T) {
	n := New(Def{})
	n.Bus.Write(0x0000, 0x42)
	for _, mirror := range []uint16{0x0800, 0x1000, 0x1800} {
		v, ok := n.Bus.Read(mirror)
		if !ok || v != 0x42 {
			t.Errorf("mirror at %.4X = %.2X, want 42", mirror, v)
		}
	}
}

func TestPowerOnRunsResetFromCart(t *testing.T) {
	cart := &romCart{}
	cart.mem[0x7FFC] = 0x00 // $FFFC
	cart.mem[0x7FFD] = 0x90 // $FFFD
	n := New(Def{Cart: cart})
	n.PowerOn()
	for i := 0; i < 7; i++ {
		n.CPU.Cycle()
	}
	if n.CPU.PC != 0x9000 {
		t.Errorf("PC = %.4X, want 9000", n.CPU.PC)
	}
}

func TestConnectDisconnectCart(t *testing.T) {
	n := New(Def{})
	cart := &romCart{}
	prev := n.ConnectCart(cart)
	if prev == nil {
		t.Fatal("expected a previous device")
	}
	n.DisconnectCart()
	_, ok := n.Bus.Read(0x8000)
	if ok {
		t.Error("expected miss after disconnecting cart")
	}
}
