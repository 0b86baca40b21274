// Package clock paces the emulator against wall-clock time: it converts an
// elapsed frame time into a budget of cycles the caller is allowed to run,
// the same fixed-Hz accumulator approach used by frame-locked emulators to
// avoid drifting ahead of or behind real time.
package clock

import "time"

const msPerSec = 1000.0

// Clock accumulates a running cycle budget from wall-clock frame deltas.
// Construct with New; a zero Clock has a rate of 0 and never grants any
// budget.
type Clock struct {
	start, previous, current time.Time

	cycles uint64
	frames uint64
	ticks  uint64

	runtimeMs    float64
	timeBudgetMs float64

	budget int64
	rate   int32 // target cycles per second
}

// New constructs a Clock targeting ratePerSec cycles per second (e.g. the
// NTSC NES's ~1.789773 MHz CPU clock, rounded to an integer rate).
func New(ratePerSec int32) *Clock {
	return &Clock{rate: ratePerSec}
}

// Start anchors the clock's epoch at now. Call once before the first
// TickStart.
func (c *Clock) Start(now time.Time) {
	c.start = now
	c.previous = now
	c.current = now
}

// TickStart folds the elapsed time since the last tick into the cycle
// budget and returns the number of cycles now available to run. If
// resetBudget is true, any leftover budget is discarded and this tick's
// elapsed time is not added to it (used after an intentional pause, e.g.
// single-stepping in a debugger, so the emulator doesn't try to "catch up"
// in a burst); runtime still advances.
func (c *Clock) TickStart(now time.Time, resetBudget bool) int64 {
	c.current = now
	frameTimeMs := float64(c.current.Sub(c.previous)) / float64(time.Millisecond)
	c.runtimeMs += frameTimeMs

	if resetBudget {
		c.budget = 0
		c.timeBudgetMs = 0
	} else {
		c.timeBudgetMs += frameTimeMs
		if c.timeBudgetMs > msPerSec {
			c.timeBudgetMs = msPerSec
		}

		msPerCycle := msPerSec / float64(c.rate)
		newCycles := int64(c.timeBudgetMs / msPerCycle)
		c.budget += newCycles
		c.timeBudgetMs -= float64(newCycles) * msPerCycle
	}

	c.ticks++
	return c.budget
}

// TickEnd records that n cycles of the budget were consumed this frame and
// advances the frame counter.
func (c *Clock) TickEnd(n int64) {
	c.budget -= n
	if c.budget < 0 {
		c.budget = 0
	}
	c.cycles += uint64(n)
	c.previous = c.current
	c.frames++
}

// Cycles returns the total number of cycles consumed since Start.
func (c *Clock) Cycles() uint64 { return c.cycles }

// Frames returns the number of TickEnd calls since Start.
func (c *Clock) Frames() uint64 { return c.frames }

// Runtime returns total elapsed wall-clock milliseconds since Start.
func (c *Clock) Runtime() float64 { return c.runtimeMs }

// Rate returns the configured target cycles-per-second.
func (c *Clock) Rate() int32 { return c.rate }
