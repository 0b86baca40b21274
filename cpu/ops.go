package cpu

import "github.com/sixfiveohtwo/mos6502/decode"

// execImplied runs the body of an IMP-mode instruction: register-only
// opcodes (flag sets/clears, transfers, inc/dec X/Y) and the
// accumulator-addressed shift/rotate family (ASL A, LSR A, ROL A, ROR A).
func (c *Chip) execImplied() {
	switch c.entry.Instruction {
	case decode.CLC:
		c.cFlag = false
	case decode.SEC:
		c.cFlag = true
	case decode.CLI:
		c.iFlag = false
	case decode.SEI:
		c.iFlag = true
	case decode.CLD:
		c.dFlag = false
	case decode.SED:
		c.dFlag = true
	case decode.CLV:
		c.vFlag = false
	case decode.DEX:
		c.X--
		c.setZN(c.X)
	case decode.DEY:
		c.Y--
		c.setZN(c.Y)
	case decode.INX:
		c.X++
		c.setZN(c.X)
	case decode.INY:
		c.Y++
		c.setZN(c.Y)
	case decode.TAX:
		c.X = c.A
		c.setZN(c.X)
	case decode.TAY:
		c.Y = c.A
		c.setZN(c.Y)
	case decode.TSX:
		c.X = c.S
		c.setZN(c.X)
	case decode.TXA:
		c.A = c.X
		c.setZN(c.A)
	case decode.TXS:
		c.S = c.X
	case decode.TYA:
		c.A = c.Y
		c.setZN(c.A)
	case decode.NOP:
		// Documented no-op ($EA) and the implied-mode illegal filler NOPs.
	case decode.ASL:
		c.A = c.shiftLeft(c.A)
	case decode.LSR:
		c.A = c.shiftRight(c.A)
	case decode.ROL:
		c.A = c.rotateLeft(c.A)
	case decode.ROR:
		c.A = c.rotateRight(c.A)
	default:
		panic(InvalidState{"unhandled implied-mode instruction " + c.entry.Instruction.String()})
	}
}

// execWithValue runs the body of any read-feeding instruction (LOAD,
// compare, and ALU ops) now that v has been fetched from IMM/ZP/ABS/indexed
// addressing.
func (c *Chip) execWithValue(v uint8) {
	switch c.entry.Instruction {
	case decode.LDA:
		c.A = v
		c.setZN(c.A)
	case decode.LDX:
		c.X = v
		c.setZN(c.X)
	case decode.LDY:
		c.Y = v
		c.setZN(c.Y)
	case decode.AND:
		c.A &= v
		c.setZN(c.A)
	case decode.ORA:
		c.A |= v
		c.setZN(c.A)
	case decode.EOR:
		c.A ^= v
		c.setZN(c.A)
	case decode.ADC:
		c.A = c.addCarry(v)
	case decode.SBC, decode.USBC:
		c.A = c.sbc(v)
	case decode.BIT:
		c.zFlag = (c.A & v) == 0
		c.nFlag = v&0x80 != 0
		c.vFlag = v&0x40 != 0
	case decode.CMP:
		c.compare(c.A, v)
	case decode.CPX:
		c.compare(c.X, v)
	case decode.CPY:
		c.compare(c.Y, v)
	case decode.NOP:
		// read-and-discard illegal NOP variants
	case decode.LAX:
		c.A = v
		c.X = v
		c.setZN(c.A)
	case decode.LAS:
		v &= c.S
		c.A, c.X, c.S = v, v, v
		c.setZN(v)
	case decode.ALR:
		c.A &= v
		c.A = c.shiftRight(c.A)
	case decode.ANC:
		c.A &= v
		c.setZN(c.A)
		c.cFlag = c.nFlag
	case decode.ARR:
		c.A &= v
		result := c.rotateRight(c.A)
		c.A = result
		c.cFlag = result&0x40 != 0
		c.vFlag = (result&0x40 != 0) != (result&0x20 != 0)
	case decode.ANE:
		// ANE/XAA: unstable on real hardware (result depends on analog bus
		// capacitance); modeled with the commonly-used 0xFF magic constant.
		c.A = (c.A | 0xFF) & c.X & v
		c.setZN(c.A)
	case decode.LXA:
		c.A = (c.A | 0xFF) & v
		c.X = c.A
		c.setZN(c.A)
	case decode.SBX:
		t := c.A & c.X
		c.cFlag = t >= v
		c.X = t - v
		c.setZN(c.X)
	default:
		panic(InvalidState{"unhandled read-mode instruction " + c.entry.Instruction.String()})
	}
}

// execStore runs the body of a STORE instruction now that operAddr has been
// resolved.
func (c *Chip) execStore() {
	switch c.entry.Instruction {
	case decode.STA:
		c.write(c.operAddr, c.A)
	case decode.STX:
		c.write(c.operAddr, c.X)
	case decode.STY:
		c.write(c.operAddr, c.Y)
	case decode.SAX:
		c.write(c.operAddr, c.A&c.X)
	case decode.SHA:
		hi := uint8(c.operAddr>>8) + 1
		c.write(c.operAddr, c.A&c.X&hi)
	case decode.SHX:
		hi := uint8(c.operAddr>>8) + 1
		c.write(c.operAddr, c.X&hi)
	case decode.SHY:
		hi := uint8(c.operAddr>>8) + 1
		c.write(c.operAddr, c.Y&hi)
	case decode.TAS:
		c.S = c.A & c.X
		hi := uint8(c.operAddr>>8) + 1
		c.write(c.operAddr, c.S&hi)
	default:
		panic(InvalidState{"unhandled store-mode instruction " + c.entry.Instruction.String()})
	}
}

// execRMW runs the body of a read-modify-write instruction: c.databus holds
// the value last read from operAddr, and the result is written back before
// retiring.
func (c *Chip) execRMW() {
	v := c.databus
	switch c.entry.Instruction {
	case decode.ASL:
		v = c.shiftLeft(v)
		c.write(c.operAddr, v)
	case decode.LSR:
		v = c.shiftRight(v)
		c.write(c.operAddr, v)
	case decode.ROL:
		v = c.rotateLeft(v)
		c.write(c.operAddr, v)
	case decode.ROR:
		v = c.rotateRight(v)
		c.write(c.operAddr, v)
	case decode.INC:
		v++
		c.write(c.operAddr, v)
		c.setZN(v)
	case decode.DEC:
		v--
		c.write(c.operAddr, v)
		c.setZN(v)
	case decode.SLO:
		carry := v&0x80 != 0
		v <<= 1
		c.write(c.operAddr, v)
		c.cFlag = carry
		c.A |= v
		c.setZN(c.A)
	case decode.SRE:
		carry := v&0x01 != 0
		v >>= 1
		c.write(c.operAddr, v)
		c.cFlag = carry
		c.A ^= v
		c.setZN(c.A)
	case decode.RLA:
		v = c.rotateLeft(v)
		c.write(c.operAddr, v)
		c.A &= v
		c.setZN(c.A)
	case decode.RRA:
		v = c.rotateRight(v)
		c.write(c.operAddr, v)
		c.A = c.addCarry(v)
	case decode.ISC:
		v++
		c.write(c.operAddr, v)
		c.A = c.sbc(v)
	case decode.DCP:
		v--
		c.write(c.operAddr, v)
		c.compare(c.A, v)
	default:
		panic(InvalidState{"unhandled rmw instruction " + c.entry.Instruction.String()})
	}
}

func (c *Chip) shiftLeft(v uint8) uint8 {
	c.cFlag = v&0x80 != 0
	r := v << 1
	c.setZN(r)
	return r
}

func (c *Chip) shiftRight(v uint8) uint8 {
	c.cFlag = v&0x01 != 0
	r := v >> 1
	c.setZN(r)
	return r
}

func (c *Chip) rotateLeft(v uint8) uint8 {
	carryIn := uint8(0)
	if c.cFlag {
		carryIn = 1
	}
	c.cFlag = v&0x80 != 0
	r := (v << 1) | carryIn
	c.setZN(r)
	return r
}

func (c *Chip) rotateRight(v uint8) uint8 {
	carryIn := uint8(0)
	if c.cFlag {
		carryIn = 0x80
	}
	c.cFlag = v&0x01 != 0
	r := (v >> 1) | carryIn
	c.setZN(r)
	return r
}

func (c *Chip) compare(reg, v uint8) {
	c.cFlag = reg >= v
	diff := reg - v
	c.setZN(diff)
}

// decimalEnabled reports whether D-flag arithmetic actually decimal-adjusts
// on this chip. The Ricoh 2A03/2A07 used in the NES physically lacks the
// decimal-mode adder, so D can be set and read back but never changes
// ADC/SBC's result.
func (c *Chip) decimalEnabled() bool {
	return c.dFlag && c.typ != TypeRicoh
}

// addCarry adds v (plus carry) into the accumulator, binary or decimal
// depending on the D flag, and returns the new accumulator value. N/V are
// always computed from the binary result first, then the decimal adjustment
// (if any) only touches the digits and the carry-out.
func (c *Chip) addCarry(v uint8) uint8 {
	carryIn := uint16(0)
	if c.cFlag {
		carryIn = 1
	}
	binSum := uint16(c.A) + uint16(v) + carryIn
	result := uint8(binSum)
	c.vFlag = (^(c.A ^ v) & (c.A ^ result) & 0x80) != 0
	c.nFlag = result&0x80 != 0
	c.zFlag = result == 0
	c.cFlag = binSum > 0xFF

	if c.decimalEnabled() {
		lo := (c.A & 0x0F) + (v & 0x0F) + uint8(carryIn)
		hi := (c.A >> 4) + (v >> 4)
		if lo > 9 {
			lo += 6
			hi++
		}
		if hi > 9 {
			hi += 6
		}
		c.cFlag = hi > 0xF
		result = (hi << 4) | (lo & 0x0F)
	}
	return result
}

// sbc subtracts v (with borrow) from the accumulator. Implemented as
// addCarry(^v) for the binary path (the standard two's-complement identity), the
// decimal path instead decrements across 10s per the well-known NMOS
// decimal-subtract algorithm since the borrow-adjust isn't the simple
// complement of addition's carry-adjust.
func (c *Chip) sbc(v uint8) uint8 {
	if !c.decimalEnabled() {
		return c.addCarry(^v)
	}

	carryIn := uint16(0)
	if c.cFlag {
		carryIn = 1
	}
	binDiff := int16(c.A) - int16(v) - int16(1-carryIn)
	binResult := uint8(binDiff)
	c.vFlag = ((c.A ^ v) & (c.A ^ binResult) & 0x80) != 0
	c.nFlag = binResult&0x80 != 0
	c.zFlag = binResult == 0
	c.cFlag = binDiff >= 0

	lo := int16(c.A&0x0F) - int16(v&0x0F) - int16(1-carryIn)
	hi := int16(c.A>>4) - int16(v>>4)
	if lo < 0 {
		lo -= 6
		hi--
	}
	if hi < 0 {
		hi -= 6
	}
	return uint8(hi<<4) | uint8(lo&0x0F)
}
