package timer

import (
	"time"
)

// Delay is a reusable one-shot timer for the scheduler's load and travel pauses.
type Delay struct {
	t *time.Timer
}

func NewDelay() *Delay {
	t := time.NewTimer(time.Hour)
	t.Stop()
	return &Delay{t: t}
}

// Wait blocks for duration. A non-positive duration returns immediately.
func (d *Delay) Wait(duration time.Duration) {
	if duration <= 0 {
		return
	}
	resetTimer(d.t, duration)
	<-d.t.C
}

// Stops the timer and resets it.
func resetTimer(t *time.Timer, duration time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(duration)
}
