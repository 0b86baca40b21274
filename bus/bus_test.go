package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevice struct {
	mem []uint8
}

func (f *fakeDevice) Read(addr uint16) (uint8, bool) {
	if int(addr) >= len(f.mem) {
		return 0, false
	}
	return f.mem[addr], true
}

func (f *fakeDevice) Write(addr uint16, val uint8) bool {
	if int(addr) >= len(f.mem) {
		return false
	}
	f.mem[addr] = val
	return true
}

func (f *fakeDevice) DMA(addr uint16, dest []uint8) int {
	n := copy(dest, f.mem[addr:])
	return n
}

func TestNewRejectsBadPartitions(t *testing.T) {
	_, err := New(0, []uint16{0})
	require.Error(t, err)

	_, err = New(16, nil)
	require.Error(t, err)

	_, err = New(16, []uint16{0, 0x8000, 0x4000})
	require.Error(t, err, "partitions must strictly increase")
}

func TestDispatch(t *testing.T) {
	b, err := New(16, []uint16{0, 0x2000, 0x8000})
	require.NoError(t, err)

	ram := &fakeDevice{mem: make([]uint8, 0x2000)}
	// Devices receive absolute bus addresses, so each fake is sized to cover
	// the top of its own partition.
	ppu := &fakeDevice{mem: make([]uint8, 0x8000)}
	cart := &fakeDevice{mem: make([]uint8, 0x10000)}

	require.True(t, b.Set(0x0000, ram))
	require.True(t, b.Set(0x3000, ppu))
	require.True(t, b.Set(0x8000, cart))

	assert.True(t, b.Write(0x1234, 0x42))
	got, ok := b.Read(0x1234)
	assert.True(t, ok)
	assert.Equal(t, uint8(0x42), got)

	assert.True(t, b.Write(0x4321, 0x99))
	got, ok = ppu.Read(0x4321)
	assert.True(t, ok)
	assert.Equal(t, uint8(0x99), got)

	assert.True(t, b.Write(0x8765, 0x11))
	got, ok = cart.Read(0x8765)
	assert.True(t, ok)
	assert.Equal(t, uint8(0x11), got)
}

func TestOutOfRangeFaults(t *testing.T) {
	b, err := New(8, []uint16{0})
	require.NoError(t, err)

	assert.Equal(t, uint16(0xFF), b.MaxAddr())
	_, ok := b.Read(0x100)
	assert.False(t, ok)
	assert.False(t, b.Write(0x100, 1))
	assert.False(t, b.Set(0x100, &fakeDevice{}))
}

func TestSwapAndClear(t *testing.T) {
	b, err := New(16, []uint16{0, 0xFFFA})
	require.NoError(t, err)

	inner := &fakeDevice{mem: make([]uint8, 6)}
	b.Set(0xFFFA, inner)

	decorator := &fakeDevice{mem: make([]uint8, 6)}
	prev, ok := b.Swap(0xFFFC, decorator)
	require.True(t, ok)
	assert.Equal(t, inner, prev)

	assert.True(t, b.Clear(0xFFFC))
	_, ok = b.Read(0xFFFC)
	assert.False(t, ok, "cleared partition should miss")
}

func TestDMA(t *testing.T) {
	b, err := New(16, []uint16{0})
	require.NoError(t, err)
	dev := &fakeDevice{mem: []uint8{1, 2, 3, 4, 5}}
	b.Set(0, dev)

	dest := make([]uint8, 3)
	n := b.DMA(1, dest)
	assert.Equal(t, 3, n)
	assert.Equal(t, []uint8{2, 3, 4}, dest)
}
