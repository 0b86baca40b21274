// Package bus implements the CPU's multi-device address bus: a fixed
// bit-width address space carved into an ordered, non-overlapping set of
// partitions, each owned by a pluggable Device. Dispatch is a descending
// scan of partition start addresses rather than an interval tree, since in
// practice a 6502-family bus has only a handful of static partitions (RAM,
// cart ROM banks, PPU/APU register windows).
package bus

import "fmt"

// InvalidState represents a precondition violation on the bus (bad
// bitwidth, unsorted partition starts, etc). Mirrors the teacher's
// InvalidCPUState shape so bus/cpu invariant errors look alike.
type InvalidState struct {
	Reason string
}

// Error implements the error interface.
func (e InvalidState) Error() string {
	return fmt.Sprintf("invalid bus state: %s", e.Reason)
}

// Device is the contract a bus partition's owner implements. Every
// partition starts out holding NullDevice, whose hooks all miss; Set and
// Swap store dev as given, so a nil Device is not replaced by NullDevice.
// Every hook receives the absolute bus address, not an offset into the
// partition.
type Device interface {
	// Read returns the byte at addr and whether the read hit live state.
	// The bus does not tell a device whether a read comes from a cpu.Chip
	// peek, so a read with side effects makes peek previews impure.
	Read(addr uint16) (val uint8, ok bool)
	// Write stores val at addr, returning whether the write took. A
	// cpu.Chip peek never calls Write.
	Write(addr uint16, val uint8) bool
	// DMA bulk-reads up to len(dest) bytes starting at addr into dest
	// without disturbing device state (used for snapshots/disassembly).
	// Returns the number of bytes copied.
	DMA(addr uint16, dest []uint8) int
}

// NullDevice is the zero-value Device installed in any partition that has
// no device attached: reads miss, writes fail, DMA copies nothing.
type NullDevice struct{}

// Read implements Device.
func (NullDevice) Read(uint16) (uint8, bool) { return 0, false }

// Write implements Device.
func (NullDevice) Write(uint16, uint8) bool { return false }

// DMA implements Device.
func (NullDevice) DMA(uint16, []uint8) int { return 0 }

type partition struct {
	start  uint16
	device Device
}

// Bus is an immutable-bitwidth, ordered partition table. The zero value is
// not usable; construct with New.
type Bus struct {
	maxAddr    uint16
	partitions []partition
}

// New creates a bus of the given bitwidth (1..16) with partitions starting
// at the given addresses. The first partition's start is forced to 0
// regardless of what's passed (per spec: p1 == 0 always). starts must
// already be strictly increasing after the first; New does not sort them.
func New(bitwidth int, starts []uint16) (*Bus, error) {
	if bitwidth <= 0 || bitwidth > 16 {
		return nil, InvalidState{fmt.Sprintf("bitwidth %d must be in [1,16]", bitwidth)}
	}
	if len(starts) == 0 {
		return nil, InvalidState{"at least one partition required"}
	}
	max := uint16((1 << uint(bitwidth)) - 1)
	if bitwidth == 16 {
		max = 0xFFFF
	}
	parts := make([]partition, len(starts))
	prev := int32(-1)
	for i, s := range starts {
		start := s
		if i == 0 {
			start = 0
		}
		if int32(start) <= prev {
			return nil, InvalidState{fmt.Sprintf("partition %d start %.4X does not increase on previous %.4X", i, start, prev)}
		}
		prev = int32(start)
		parts[i] = partition{start: start, device: NullDevice{}}
	}
	return &Bus{maxAddr: max, partitions: parts}, nil
}

// MaxAddr returns the highest addressable byte on this bus.
func (b *Bus) MaxAddr() uint16 {
	return b.maxAddr
}

// find returns the index of the partition owning addr: the last partition
// whose start is <= addr. A descending scan, since partition counts are
// small (typically 2-4) this beats any interval-tree bookkeeping.
func (b *Bus) find(addr uint16) int {
	for i := len(b.partitions) - 1; i > 0; i-- {
		if addr >= b.partitions[i].start {
			return i
		}
	}
	return 0
}

// Set installs dev into the partition containing addr. Returns false if
// addr exceeds MaxAddr.
func (b *Bus) Set(addr uint16, dev Device) bool {
	if addr > b.maxAddr {
		return false
	}
	b.partitions[b.find(addr)].device = dev
	return true
}

// Swap installs dev into the partition containing addr and returns the
// previously-installed device. Returns (nil, false) if addr exceeds
// MaxAddr.
func (b *Bus) Swap(addr uint16, dev Device) (Device, bool) {
	if addr > b.maxAddr {
		return nil, false
	}
	i := b.find(addr)
	prev := b.partitions[i].device
	b.partitions[i].device = dev
	return prev, true
}

// Clear removes the device from the partition containing addr, replacing
// it with NullDevice. Returns false if addr exceeds MaxAddr.
func (b *Bus) Clear(addr uint16) bool {
	return b.Set(addr, NullDevice{})
}

// Read resolves addr to its owning partition and invokes the device's Read
// hook. A missing hook (or out-of-range addr) reports a miss.
func (b *Bus) Read(addr uint16) (uint8, bool) {
	if addr > b.maxAddr {
		return 0, false
	}
	return b.partitions[b.find(addr)].device.Read(addr)
}

// Write resolves addr to its owning partition and invokes the device's
// Write hook. Out-of-range addr reports failure.
func (b *Bus) Write(addr uint16, val uint8) bool {
	if addr > b.maxAddr {
		return false
	}
	return b.partitions[b.find(addr)].device.Write(addr, val)
}

// DMA bulk-copies up to len(dest) bytes starting at addr from the owning
// partition's device, returning the number of bytes actually copied. A
// DMA spanning multiple partitions only pulls from the first partition hit
// at addr — callers needing cross-partition copies issue one DMA call per
// partition.
func (b *Bus) DMA(addr uint16, dest []uint8) int {
	if addr > b.maxAddr {
		return 0
	}
	return b.partitions[b.find(addr)].device.DMA(addr, dest)
}
