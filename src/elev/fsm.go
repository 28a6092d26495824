// Contains the scheduler worker implementing the LOOK policy for the single car.
package elev

import (
	"log/slog"
	"time"

	"petvator/src/timer"
	"petvator/src/types"
)

// run is the scheduler worker. It exits only after a stop request once the car is empty.
func (e *Elevator) run(done chan<- struct{}) {
	defer close(done)
	delay := timer.NewDelay()
	var pause time.Duration

	for {
		delay.Wait(pause)
		pause = 0

		e.mu.Lock()
		st := &e.state

		if st.Deactivating && len(st.Manifest) == 0 {
			st.Behaviour = types.Offline
			st.WorkToDo = false
			e.report(tick{Behaviour: st.Behaviour, Floor: st.Floor, Dir: st.Dir})
			slog.Info("Elevator offline", "floor", st.Floor, "serviced", st.TotalServiced)
			e.mu.Unlock()
			return
		}

		unloading := canUnload(st)
		boarding := !st.Deactivating && canBoard(st, st.Floor)
		if unloading || boarding {
			pause = e.load(st, unloading, boarding)
			e.mu.Unlock()
			continue
		}

		if hasPending(st) {
			pause = e.move(st)
			e.mu.Unlock()
			continue
		}

		st.Behaviour = types.Idle
		st.WorkToDo = false
		e.report(tick{Behaviour: st.Behaviour, Floor: st.Floor, Dir: st.Dir})
		slog.Debug("Idle, waiting for work", "floor", st.Floor)
		e.mu.Unlock()

		e.waitForWork()
	}
}

// load unloads first to free capacity, then boards in FIFO order.
func (e *Elevator) load(st *ElevState, unloading, boarding bool) time.Duration {
	st.Behaviour = types.Loading
	tk := tick{Behaviour: st.Behaviour, Floor: st.Floor, Dir: st.Dir}
	if unloading {
		tk.Unloaded = unload(st)
	}
	if boarding {
		tk.Boarded = board(st)
	}
	e.report(tk)
	slog.Debug("Loading",
		"floor", st.Floor,
		"unloaded", len(tk.Unloaded),
		"boarded", len(tk.Boarded),
		"weight", st.Weight)
	return e.cfg.LoadDuration
}

// move advances one floor, reversing only when nothing needs service ahead.
func (e *Elevator) move(st *ElevState) time.Duration {
	reversed := false
	if !hasRequestsAhead(st, st.Dir) {
		st.Dir = -st.Dir
		reversed = true
	}
	st.Behaviour = types.BehaviourFor(st.Dir)
	st.Floor += int(st.Dir)
	e.report(tick{Behaviour: st.Behaviour, Floor: st.Floor, Dir: st.Dir, Reversed: reversed})
	slog.Debug("Moving", "floor", st.Floor, "direction", st.Dir, "reversed", reversed)
	return e.cfg.TravelDuration
}

// waitForWork blocks until a request or stop has been flagged. Wake-ups that
// find neither flag set are treated as spurious and waited out again.
func (e *Elevator) waitForWork() {
	for {
		e.mu.Lock()
		ready := e.state.WorkToDo || e.state.Deactivating
		e.mu.Unlock()
		if ready {
			return
		}
		<-e.wake
	}
}

// signal wakes the worker without blocking. Must be called with mu held.
func (e *Elevator) signal() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *Elevator) report(tk tick) {
	if e.onTick != nil {
		e.onTick(&e.state, tk)
	}
}
