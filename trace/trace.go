// Package trace implements execution tracing (one line per committed
// instruction, in the classic "nestest" log style) and immutable snapshots
// of CPU register state plus a copied memory window for post-mortem
// inspection.
package trace

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sixfiveohtwo/mos6502/cpu"
	"github.com/sixfiveohtwo/mos6502/disassemble"
)

// Tracer writes one line to its sink every time On is true and a new
// instruction is committed. Disabled by default; call On(true) to start
// logging. A write failure is sticky and retrievable via Err rather than
// panicking the emulator mid-run.
type Tracer struct {
	w       *bufio.Writer
	enabled bool
	lineNo  uint64
	err     error
}

// New wraps w as a trace sink.
func New(w io.Writer) *Tracer {
	return &Tracer{w: bufio.NewWriter(w)}
}

// On enables or disables tracing.
func (t *Tracer) On(enabled bool) { t.enabled = enabled }

// Enabled reports whether tracing is currently active.
func (t *Tracer) Enabled() bool { return t.enabled }

// Err returns the first write error the tracer encountered, if any.
// Tracing failures never stop or alter CPU execution; callers check Err
// when they care whether the log is trustworthy.
func (t *Tracer) Err() error { return t.err }

// PeekFunc adapts a bus/cpu read for the disassembler.
type PeekFunc = disassemble.PeekFunc

// Log emits one trace line for the instruction about to execute at pc,
// including the cycle count at the moment of fetch (matching Aldo-style
// traces, which stamp the pre-fetch cycle count rather than the post-fetch
// one). No-op if tracing is off.
func (t *Tracer) Log(pc uint16, cyclesSoFar uint64, peek PeekFunc) {
	if !t.enabled {
		return
	}
	line, _, err := disassemble.Inst(pc, peek)
	if err != nil {
		line = fmt.Sprintf("$%.4X  ??  <disassembly error: %v>", pc, err)
	}
	t.lineNo++
	_, werr := fmt.Fprintf(t.w, "%d: CYC:%d %s\n", t.lineNo, cyclesSoFar, line)
	if werr != nil && t.err == nil {
		t.err = werr
	}
	if ferr := t.w.Flush(); ferr != nil && t.err == nil {
		t.err = ferr
	}
}

// LogRegisters renders c's register state as the nestest-style
// "A:00 X:00 Y:00 P:24 SP:FD" suffix and returns it; it writes nothing.
// Separate from Log so callers that don't have direct Chip access (e.g. a
// debugger operating on a Snapshot) can still produce a register-free line.
func LogRegisters(c *cpu.Chip) string {
	return fmt.Sprintf("A:%.2X X:%.2X Y:%.2X P:%.2X SP:%.2X",
		c.A, c.X, c.Y, c.Status(), c.S)
}
