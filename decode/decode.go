// Package decode provides the constant, exhaustive 256-entry opcode decode
// table: for every possible opcode byte it names the instruction, the
// addressing-mode micro-sequence that feeds it, and whether the opcode is
// an undocumented ("unofficial") one. Nothing here executes an opcode —
// cpu.Chip owns that — this package only answers "what is this byte".
package decode

import "fmt"

// Instruction enumerates every mnemonic this decode table can name,
// official and unofficial alike.
type Instruction int

// Instruction enumerants. UDF is the synthetic catch-all for any opcode
// slot the table doesn't otherwise assign (there are none left in the
// 256-entry NMOS table below, but the invariant requires the type exist).
const (
	UDF Instruction = iota

	ADC
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRKI
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA

	// Unofficial/undocumented instructions.
	ALR
	ANC
	ANE
	ARR
	DCP
	ISC
	JAM
	LAS
	LAX
	LXA
	RLA
	RRA
	SAX
	SBX
	SHA
	SHX
	SHY
	SLO
	SRE
	TAS
	USBC
)

var instructionNames = map[Instruction]string{
	UDF:  "UDF",
	ADC:  "ADC", AND: "AND", ASL: "ASL",
	BCC: "BCC", BCS: "BCS", BEQ: "BEQ", BIT: "BIT", BMI: "BMI", BNE: "BNE", BPL: "BPL",
	BRKI: "BRK", BVC: "BVC", BVS: "BVS",
	CLC: "CLC", CLD: "CLD", CLI: "CLI", CLV: "CLV", CMP: "CMP", CPX: "CPX", CPY: "CPY",
	DEC: "DEC", DEX: "DEX", DEY: "DEY",
	EOR: "EOR",
	INC: "INC", INX: "INX", INY: "INY",
	JMP: "JMP", JSR: "JSR",
	LDA: "LDA", LDX: "LDX", LDY: "LDY", LSR: "LSR",
	NOP: "NOP",
	ORA: "ORA",
	PHA: "PHA", PHP: "PHP", PLA: "PLA", PLP: "PLP",
	ROL: "ROL", ROR: "ROR", RTI: "RTI", RTS: "RTS",
	SBC: "SBC", SEC: "SEC", SED: "SED", SEI: "SEI",
	STA: "STA", STX: "STX", STY: "STY",
	TAX: "TAX", TAY: "TAY", TSX: "TSX", TXA: "TXA", TXS: "TXS", TYA: "TYA",

	ALR: "ALR", ANC: "ANC", ANE: "ANE", ARR: "ARR", DCP: "DCP", ISC: "ISC", JAM: "JAM",
	LAS: "LAS", LAX: "LAX", LXA: "LXA", RLA: "RLA", RRA: "RRA", SAX: "SAX", SBX: "SBX",
	SHA: "SHA", SHX: "SHX", SHY: "SHY", SLO: "SLO", SRE: "SRE", TAS: "TAS", USBC: "SBC",
}

// String renders the canonical three-letter mnemonic.
func (i Instruction) String() string {
	if n, ok := instructionNames[i]; ok {
		return n
	}
	return fmt.Sprintf("INST(%d)", int(i))
}

// AddrMode enumerates the addressing-mode micro-sequences an instruction
// can be fed through.
type AddrMode int

// AddrMode enumerants, matching spec.md's exhaustive list.
const (
	IMP AddrMode = iota
	IMM
	ZP
	ZPX
	ZPY
	INDX
	INDY
	ABS
	ABSX
	ABSY
	PSH  // push (PHA/PHP)
	PLL  // pull (PLA/PLP)
	BCH  // relative branch
	JSRM // jump to subroutine
	RTSM // return from subroutine
	JABS // absolute jump
	JIND // indirect jump
	BRKM // break/interrupt/reset entry
	RTI_ // return from interrupt
	JAM_ // CPU-halting illegal opcode
)

var modeNames = [...]string{
	"imp", "imm", "zp", "zp,X", "zp,Y", "(zp,X)", "(zp),Y",
	"abs", "abs,X", "abs,Y", "imp", "imp", "rel", "abs", "imp",
	"abs", "(abs)", "imp", "imp", "imp",
}

// String renders the short operand-syntax label for the mode (e.g. "zp,X").
// Datapath lines use disassemble's own mode labels, not this one.
func (m AddrMode) String() string {
	if int(m) >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("MODE(%d)", int(m))
}

// Bytes returns the instruction's total byte length (opcode + operands)
// for this addressing mode.
func (m AddrMode) Bytes() int {
	switch m {
	case ABS, ABSX, ABSY, JSRM, JABS, JIND:
		return 3
	case IMM, ZP, ZPX, ZPY, INDX, INDY, BCH:
		return 2
	default:
		return 1
	}
}

// Entry is one decoded opcode slot.
type Entry struct {
	Opcode      uint8
	Instruction Instruction
	Mode        AddrMode
	Unofficial  bool
}

// Table is the constant, exhaustive opcode decode table, indexed by
// opcode byte.
var Table = buildTable()

// JamOpcodes is the exact set of opcodes that decode to the JAM addressing
// mode (spec.md §8 decode-totality invariant).
var JamOpcodes = [...]uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2}

func e(op uint8, inst Instruction, mode AddrMode, unofficial bool) Entry {
	return Entry{Opcode: op, Instruction: inst, Mode: mode, Unofficial: unofficial}
}

func buildTable() [256]Entry {
	var t [256]Entry
	set := func(op uint8, inst Instruction, mode AddrMode, unofficial bool) {
		t[op] = e(op, inst, mode, unofficial)
	}

	jam := func(op uint8) { set(op, JAM, JAM_, true) }

	set(0x00, BRKI, BRKM, false)
	set(0x01, ORA, INDX, false)
	jam(0x02)
	set(0x03, SLO, INDX, true)
	set(0x04, NOP, ZP, true)
	set(0x05, ORA, ZP, false)
	set(0x06, ASL, ZP, false)
	set(0x07, SLO, ZP, true)
	set(0x08, PHP, PSH, false)
	set(0x09, ORA, IMM, false)
	set(0x0A, ASL, IMP, false)
	set(0x0B, ANC, IMM, true)
	set(0x0C, NOP, ABS, true)
	set(0x0D, ORA, ABS, false)
	set(0x0E, ASL, ABS, false)
	set(0x0F, SLO, ABS, true)
	set(0x10, BPL, BCH, false)
	set(0x11, ORA, INDY, false)
	jam(0x12)
	set(0x13, SLO, INDY, true)
	set(0x14, NOP, ZPX, true)
	set(0x15, ORA, ZPX, false)
	set(0x16, ASL, ZPX, false)
	set(0x17, SLO, ZPX, true)
	set(0x18, CLC, IMP, false)
	set(0x19, ORA, ABSY, false)
	set(0x1A, NOP, IMP, true)
	set(0x1B, SLO, ABSY, true)
	set(0x1C, NOP, ABSX, true)
	set(0x1D, ORA, ABSX, false)
	set(0x1E, ASL, ABSX, false)
	set(0x1F, SLO, ABSX, true)
	set(0x20, JSR, JSRM, false)
	set(0x21, AND, INDX, false)
	jam(0x22)
	set(0x23, RLA, INDX, true)
	set(0x24, BIT, ZP, false)
	set(0x25, AND, ZP, false)
	set(0x26, ROL, ZP, false)
	set(0x27, RLA, ZP, true)
	set(0x28, PLP, PLL, false)
	set(0x29, AND, IMM, false)
	set(0x2A, ROL, IMP, false)
	set(0x2B, ANC, IMM, true)
	set(0x2C, BIT, ABS, false)
	set(0x2D, AND, ABS, false)
	set(0x2E, ROL, ABS, false)
	set(0x2F, RLA, ABS, true)
	set(0x30, BMI, BCH, false)
	set(0x31, AND, INDY, false)
	jam(0x32)
	set(0x33, RLA, INDY, true)
	set(0x34, NOP, ZPX, true)
	set(0x35, AND, ZPX, false)
	set(0x36, ROL, ZPX, false)
	set(0x37, RLA, ZPX, true)
	set(0x38, SEC, IMP, false)
	set(0x39, AND, ABSY, false)
	set(0x3A, NOP, IMP, true)
	set(0x3B, RLA, ABSY, true)
	set(0x3C, NOP, ABSX, true)
	set(0x3D, AND, ABSX, false)
	set(0x3E, ROL, ABSX, false)
	set(0x3F, RLA, ABSX, true)
	set(0x40, RTI, RTI_, false)
	set(0x41, EOR, INDX, false)
	jam(0x42)
	set(0x43, SRE, INDX, true)
	set(0x44, NOP, ZP, true)
	set(0x45, EOR, ZP, false)
	set(0x46, LSR, ZP, false)
	set(0x47, SRE, ZP, true)
	set(0x48, PHA, PSH, false)
	set(0x49, EOR, IMM, false)
	set(0x4A, LSR, IMP, false)
	set(0x4B, ALR, IMM, true)
	set(0x4C, JMP, JABS, false)
	set(0x4D, EOR, ABS, false)
	set(0x4E, LSR, ABS, false)
	set(0x4F, SRE, ABS, true)
	set(0x50, BVC, BCH, false)
	set(0x51, EOR, INDY, false)
	jam(0x52)
	set(0x53, SRE, INDY, true)
	set(0x54, NOP, ZPX, true)
	set(0x55, EOR, ZPX, false)
	set(0x56, LSR, ZPX, false)
	set(0x57, SRE, ZPX, true)
	set(0x58, CLI, IMP, false)
	set(0x59, EOR, ABSY, false)
	set(0x5A, NOP, IMP, true)
	set(0x5B, SRE, ABSY, true)
	set(0x5C, NOP, ABSX, true)
	set(0x5D, EOR, ABSX, false)
	set(0x5E, LSR, ABSX, false)
	set(0x5F, SRE, ABSX, true)
	set(0x60, RTS, RTSM, false)
	set(0x61, ADC, INDX, false)
	jam(0x62)
	set(0x63, RRA, INDX, true)
	set(0x64, NOP, ZP, true)
	set(0x65, ADC, ZP, false)
	set(0x66, ROR, ZP, false)
	set(0x67, RRA, ZP, true)
	set(0x68, PLA, PLL, false)
	set(0x69, ADC, IMM, false)
	set(0x6A, ROR, IMP, false)
	set(0x6B, ARR, IMM, true)
	set(0x6C, JMP, JIND, false)
	set(0x6D, ADC, ABS, false)
	set(0x6E, ROR, ABS, false)
	set(0x6F, RRA, ABS, true)
	set(0x70, BVS, BCH, false)
	set(0x71, ADC, INDY, false)
	jam(0x72)
	set(0x73, RRA, INDY, true)
	set(0x74, NOP, ZPX, true)
	set(0x75, ADC, ZPX, false)
	set(0x76, ROR, ZPX, false)
	set(0x77, RRA, ZPX, true)
	set(0x78, SEI, IMP, false)
	set(0x79, ADC, ABSY, false)
	set(0x7A, NOP, IMP, true)
	set(0x7B, RRA, ABSY, true)
	set(0x7C, NOP, ABSX, true)
	set(0x7D, ADC, ABSX, false)
	set(0x7E, ROR, ABSX, false)
	set(0x7F, RRA, ABSX, true)
	set(0x80, NOP, IMM, true)
	set(0x81, STA, INDX, false)
	set(0x82, NOP, IMM, true)
	set(0x83, SAX, INDX, true)
	set(0x84, STY, ZP, false)
	set(0x85, STA, ZP, false)
	set(0x86, STX, ZP, false)
	set(0x87, SAX, ZP, true)
	set(0x88, DEY, IMP, false)
	set(0x89, NOP, IMM, true)
	set(0x8A, TXA, IMP, false)
	set(0x8B, ANE, IMM, true)
	set(0x8C, STY, ABS, false)
	set(0x8D, STA, ABS, false)
	set(0x8E, STX, ABS, false)
	set(0x8F, SAX, ABS, true)
	set(0x90, BCC, BCH, false)
	set(0x91, STA, INDY, false)
	jam(0x92)
	set(0x93, SHA, INDY, true)
	set(0x94, STY, ZPX, false)
	set(0x95, STA, ZPX, false)
	set(0x96, STX, ZPY, false)
	set(0x97, SAX, ZPY, true)
	set(0x98, TYA, IMP, false)
	set(0x99, STA, ABSY, false)
	set(0x9A, TXS, IMP, false)
	set(0x9B, TAS, ABSY, true)
	set(0x9C, SHY, ABSX, true)
	set(0x9D, STA, ABSX, false)
	set(0x9E, SHX, ABSY, true)
	set(0x9F, SHA, ABSY, true)
	set(0xA0, LDY, IMM, false)
	set(0xA1, LDA, INDX, false)
	set(0xA2, LDX, IMM, false)
	set(0xA3, LAX, INDX, true)
	set(0xA4, LDY, ZP, false)
	set(0xA5, LDA, ZP, false)
	set(0xA6, LDX, ZP, false)
	set(0xA7, LAX, ZP, true)
	set(0xA8, TAY, IMP, false)
	set(0xA9, LDA, IMM, false)
	set(0xAA, TAX, IMP, false)
	set(0xAB, LXA, IMM, true)
	set(0xAC, LDY, ABS, false)
	set(0xAD, LDA, ABS, false)
	set(0xAE, LDX, ABS, false)
	set(0xAF, LAX, ABS, true)
	set(0xB0, BCS, BCH, false)
	set(0xB1, LDA, INDY, false)
	jam(0xB2)
	set(0xB3, LAX, INDY, true)
	set(0xB4, LDY, ZPX, false)
	set(0xB5, LDA, ZPX, false)
	set(0xB6, LDX, ZPY, false)
	set(0xB7, LAX, ZPY, true)
	set(0xB8, CLV, IMP, false)
	set(0xB9, LDA, ABSY, false)
	set(0xBA, TSX, IMP, false)
	set(0xBB, LAS, ABSY, true)
	set(0xBC, LDY, ABSX, false)
	set(0xBD, LDA, ABSX, false)
	set(0xBE, LDX, ABSY, false)
	set(0xBF, LAX, ABSY, true)
	set(0xC0, CPY, IMM, false)
	set(0xC1, CMP, INDX, false)
	set(0xC2, NOP, IMM, true)
	set(0xC3, DCP, INDX, true)
	set(0xC4, CPY, ZP, false)
	set(0xC5, CMP, ZP, false)
	set(0xC6, DEC, ZP, false)
	set(0xC7, DCP, ZP, true)
	set(0xC8, INY, IMP, false)
	set(0xC9, CMP, IMM, false)
	set(0xCA, DEX, IMP, false)
	set(0xCB, SBX, IMM, true)
	set(0xCC, CPY, ABS, false)
	set(0xCD, CMP, ABS, false)
	set(0xCE, DEC, ABS, false)
	set(0xCF, DCP, ABS, true)
	set(0xD0, BNE, BCH, false)
	set(0xD1, CMP, INDY, false)
	jam(0xD2)
	set(0xD3, DCP, INDY, true)
	set(0xD4, NOP, ZPX, true)
	set(0xD5, CMP, ZPX, false)
	set(0xD6, DEC, ZPX, false)
	set(0xD7, DCP, ZPX, true)
	set(0xD8, CLD, IMP, false)
	set(0xD9, CMP, ABSY, false)
	set(0xDA, NOP, IMP, true)
	set(0xDB, DCP, ABSY, true)
	set(0xDC, NOP, ABSX, true)
	set(0xDD, CMP, ABSX, false)
	set(0xDE, DEC, ABSX, false)
	set(0xDF, DCP, ABSX, true)
	set(0xE0, CPX, IMM, false)
	set(0xE1, SBC, INDX, false)
	set(0xE2, NOP, IMM, true)
	set(0xE3, ISC, INDX, true)
	set(0xE4, CPX, ZP, false)
	set(0xE5, SBC, ZP, false)
	set(0xE6, INC, ZP, false)
	set(0xE7, ISC, ZP, true)
	set(0xE8, INX, IMP, false)
	set(0xE9, SBC, IMM, false)
	set(0xEA, NOP, IMP, false)
	set(0xEB, USBC, IMM, true)
	set(0xEC, CPX, ABS, false)
	set(0xED, SBC, ABS, false)
	set(0xEE, INC, ABS, false)
	set(0xEF, ISC, ABS, true)
	set(0xF0, BEQ, BCH, false)
	set(0xF1, SBC, INDY, false)
	jam(0xF2)
	set(0xF3, ISC, INDY, true)
	set(0xF4, NOP, ZPX, true)
	set(0xF5, SBC, ZPX, false)
	set(0xF6, INC, ZPX, false)
	set(0xF7, ISC, ZPX, true)
	set(0xF8, SED, IMP, false)
	set(0xF9, SBC, ABSY, false)
	set(0xFA, NOP, IMP, true)
	set(0xFB, ISC, ABSY, true)
	set(0xFC, NOP, ABSX, true)
	set(0xFD, SBC, ABSX, false)
	set(0xFE, INC, ABSX, false)
	set(0xFF, ISC, ABSX, true)

	return t
}
