// Package disassemble renders three kinds of human-readable trace line from
// decoded opcode state: a classic instruction listing line, a per-cycle
// datapath line showing the internal address/data latches, and a peek line
// that renders the effective-address chain a debugger's memory-preview walk
// followed to get to a final value.
package disassemble

import (
	"fmt"

	"github.com/sixfiveohtwo/mos6502/bits"
	"github.com/sixfiveohtwo/mos6502/decode"
)

// ErrCode distinguishes the ways rendering can fail.
type ErrCode int

// ErrCode enumerants.
const (
	ErrNone        ErrCode = iota
	ErrEOF                 // ran off the end of the supplied bytes mid-operand
	ErrFmt                 // no operand format for the opcode's addressing mode
	ErrInvAddrMode         // no datapath mode-label for this addressing mode
)

// Error reports a disassembly failure with the opcode and PC involved.
type Error struct {
	Code ErrCode
	PC   uint16
	Op   uint8
}

// Error implements the error interface.
func (e Error) Error() string {
	switch e.Code {
	case ErrEOF:
		return fmt.Sprintf("disassemble: truncated operand for opcode %.2X at $%.4X", e.Op, e.PC)
	case ErrFmt:
		return fmt.Sprintf("disassemble: no render template for opcode %.2X at $%.4X", e.Op, e.PC)
	case ErrInvAddrMode:
		return fmt.Sprintf("disassemble: no datapath mode label for opcode %.2X at $%.4X", e.Op, e.PC)
	default:
		return "disassemble: no error"
	}
}

// PeekFunc reads a single byte without side effects, for use while
// disassembling (must never perturb device state — implementations backed
// by bus.Bus should only call Read on devices in detached/peek mode).
type PeekFunc func(addr uint16) (uint8, bool)

// Inst renders the classic instruction-listing line for the opcode at pc:
// "$C000  4C 00 80  JMP $8000". Returns the line and the instruction's
// total byte length (1-3).
func Inst(pc uint16, peek PeekFunc) (string, int, error) {
	op, ok := peek(pc)
	if !ok {
		return "", 0, Error{Code: ErrEOF, PC: pc, Op: 0}
	}
	entry := decode.Table[op]
	size := entry.Mode.Bytes()

	raw := make([]uint8, size)
	raw[0] = op
	for i := 1; i < size; i++ {
		b, ok := peek(pc + uint16(i))
		if !ok {
			return "", 0, Error{Code: ErrEOF, PC: pc, Op: op}
		}
		raw[i] = b
	}

	operand, err := formatOperand(entry, pc, raw)
	if err != nil {
		return "", 0, err
	}

	hexBytes := ""
	for i := 0; i < 3; i++ {
		if i < size {
			hexBytes += fmt.Sprintf("%.2X ", raw[i])
		} else {
			hexBytes += "   "
		}
	}

	mnemonic := entry.Instruction.String()
	if entry.Unofficial {
		mnemonic = "*" + mnemonic
	} else {
		mnemonic = " " + mnemonic
	}

	line := fmt.Sprintf("$%.4X  %s%s%s", pc, hexBytes, mnemonic, operand)
	return line, size, nil
}

func formatOperand(entry decode.Entry, pc uint16, raw []uint8) (string, error) {
	switch entry.Mode {
	case decode.IMP:
		return "", nil
	case decode.PSH, decode.PLL, decode.RTSM, decode.RTI_:
		return "", nil
	case decode.BRKM:
		return "", nil
	case decode.IMM:
		return fmt.Sprintf(" #$%.2X", raw[1]), nil
	case decode.ZP:
		return fmt.Sprintf(" $%.2X", raw[1]), nil
	case decode.ZPX:
		return fmt.Sprintf(" $%.2X,X", raw[1]), nil
	case decode.ZPY:
		return fmt.Sprintf(" $%.2X,Y", raw[1]), nil
	case decode.INDX:
		return fmt.Sprintf(" ($%.2X,X)", raw[1]), nil
	case decode.INDY:
		return fmt.Sprintf(" ($%.2X),Y", raw[1]), nil
	case decode.ABS:
		return fmt.Sprintf(" $%.4X", bits.Join(raw[1], raw[2])), nil
	case decode.ABSX:
		return fmt.Sprintf(" $%.4X,X", bits.Join(raw[1], raw[2])), nil
	case decode.ABSY:
		return fmt.Sprintf(" $%.4X,Y", bits.Join(raw[1], raw[2])), nil
	case decode.JABS, decode.JSRM:
		return fmt.Sprintf(" $%.4X", bits.Join(raw[1], raw[2])), nil
	case decode.JIND:
		return fmt.Sprintf(" ($%.4X)", bits.Join(raw[1], raw[2])), nil
	case decode.BCH:
		// Relative displacement is signed, relative to the address of the
		// byte following the two-byte branch instruction.
		disp := int8(raw[1])
		target := uint16(int32(pc) + 2 + int32(disp))
		return fmt.Sprintf(" $%.4X", target), nil
	case decode.JAM_:
		return "", nil
	default:
		return "", Error{Code: ErrFmt, PC: pc, Op: raw[0]}
	}
}

// modeLabel names the addressing mode shown on a datapath line's opcode-
// fetch (cycle 0) row.
func modeLabel(mode decode.AddrMode) (string, bool) {
	switch mode {
	case decode.IMP:
		return "imp", true
	case decode.IMM:
		return "imm", true
	case decode.ZP:
		return "zp", true
	case decode.ZPX:
		return "zpx", true
	case decode.ZPY:
		return "zpy", true
	case decode.ABS:
		return "abs", true
	case decode.ABSX:
		return "absx", true
	case decode.ABSY:
		return "absy", true
	case decode.INDX:
		return "indx", true
	case decode.INDY:
		return "indy", true
	case decode.PSH:
		return "psh", true
	case decode.PLL:
		return "pll", true
	case decode.BCH:
		return "bch", true
	case decode.JSRM:
		return "jsr", true
	case decode.RTSM:
		return "rts", true
	case decode.JABS:
		return "jabs", true
	case decode.JIND:
		return "jind", true
	case decode.BRKM:
		return "brk", true
	case decode.RTI_:
		return "rti", true
	case decode.JAM_:
		return "jam", true
	default:
		return "", false
	}
}

// Datapath renders a single-cycle trace line for the instruction at pc:
// cycle 0 (the opcode fetch) prints the mnemonic and its mode label; every
// later cycle prints the mnemonic and its formatted operand, except a
// branch/push/pull's final cycle, which by then has no new operand to show
// and prints just the mnemonic with a trailing space. raw holds the
// instruction's already-fetched bytes (opcode plus operand, sized to the
// mode's byte count).
func Datapath(entry decode.Entry, cycle int8, final bool, pc uint16, raw []uint8) (string, error) {
	size := entry.Mode.Bytes()
	if len(raw) < size {
		return "", Error{Code: ErrEOF, PC: pc, Op: raw[0]}
	}

	mnemonic := entry.Instruction.String()
	if entry.Unofficial {
		mnemonic = "*" + mnemonic
	}

	if cycle == 0 {
		label, ok := modeLabel(entry.Mode)
		if !ok {
			return "", Error{Code: ErrInvAddrMode, PC: pc, Op: raw[0]}
		}
		return fmt.Sprintf("%s %s", mnemonic, label), nil
	}

	switch entry.Mode {
	case decode.BCH, decode.PSH, decode.PLL:
		if final {
			return mnemonic + " ", nil
		}
	}

	operand, err := formatOperand(entry, pc, raw)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s", mnemonic, operand), nil
}

// InterruptKind names which interrupt sequence, if any, a peek line is
// rendering the vector fetch for.
type InterruptKind int

// InterruptKind enumerants.
const (
	InterruptNone InterruptKind = iota
	InterruptIRQ
	InterruptNMI
	InterruptRES
)

// String implements fmt.Stringer.
func (k InterruptKind) String() string {
	switch k {
	case InterruptIRQ:
		return "IRQ"
	case InterruptNMI:
		return "NMI"
	case InterruptRES:
		return "RES"
	default:
		return ""
	}
}

// PeekChain renders the effective-address chain a debugger's memory preview
// followed to resolve mode's operand at an address previewed by cpu.Peek,
// with one fixed format per addressing mode (e.g. "@ 15 > 3000 = 99" for
// (zp,X)); modes without a chain render empty. kind selects the
// interrupt-vector rendering instead, for a peek of a decoded interrupt
// sequence's vector fetch; resOverride marks that vector as an active
// RESET override.
func PeekChain(mode decode.AddrMode, kind InterruptKind, resOverride bool, interaddr, finaladdr uint16, data uint8, busfault bool) string {
	if kind != InterruptNone {
		marker := ">"
		if resOverride {
			marker = "!"
		}
		return fmt.Sprintf("(%s) %s%.4X", kind, marker, finaladdr)
	}

	var chain string
	switch mode {
	case decode.IMM:
		chain = ""
	case decode.ZP:
		chain = fmt.Sprintf("= %.2X", data)
	case decode.ZPX, decode.ZPY:
		chain = fmt.Sprintf("@ %.2X = %.2X", uint8(finaladdr), data)
	case decode.INDX:
		chain = fmt.Sprintf("@ %.2X > %.4X = %.2X", uint8(interaddr), finaladdr, data)
	case decode.INDY:
		chain = fmt.Sprintf("> %.4X @ %.4X = %.2X", interaddr, finaladdr, data)
	case decode.ABSX, decode.ABSY:
		chain = fmt.Sprintf("@ %.4X = %.2X", finaladdr, data)
	case decode.JIND:
		chain = fmt.Sprintf("> %.4X", finaladdr)
	case decode.BCH:
		chain = fmt.Sprintf("@ %.4X", finaladdr)
	default:
		chain = ""
	}

	if busfault {
		if chain == "" {
			return "FAULT"
		}
		return chain + " FAULT"
	}
	return chain
}
