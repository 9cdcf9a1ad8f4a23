package pkg

import (
	"fmt"
	"time"
)

// Clock is one player's countdown. It does not tick on its own; the frame
// loop charges elapsed wall time to whichever clock belongs to the side to
// move.
type Clock struct {
	Duration  time.Duration
	Remaining time.Duration
	Increment time.Duration
	Paused    bool
}

func (cl *Clock) String() string {
	rem := cl.Remaining
	if rem < 0 {
		rem = 0
	}
	return fmt.Sprintf("%d:%02d", int(rem.Minutes()), int(rem.Seconds())%60)
}

func NewClock(duration, increment time.Duration) *Clock {
	return &Clock{
		Duration:  duration,
		Remaining: duration,
		Increment: increment,
		Paused:    true,
	}
}

// Elapse subtracts d from the remaining time unless the clock is paused
func (cl *Clock) Elapse(d time.Duration) {
	if cl.Paused || d <= 0 {
		return
	}
	cl.Remaining -= d
}

// Tick is called when the owner completes a move
func (cl *Clock) Tick() {
	cl.Remaining += cl.Increment
}

func (cl *Clock) Pause() {
	cl.Paused = true
}

func (cl *Clock) Resume() {
	cl.Paused = false
}

func (cl *Clock) Reset() {
	cl.Remaining = cl.Duration
	cl.Paused = true
}

// Set changes the time control and refills the clock. Whether the clock
// is running is left alone.
func (cl *Clock) Set(tc TimeControl) {
	cl.Duration = tc.Base
	cl.Increment = tc.Increment
	cl.Remaining = tc.Base
}

func (cl *Clock) Expired() bool {
	return cl.Remaining <= 0
}
