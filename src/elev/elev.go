package elev

import (
	"context"
	"fmt"
	"log/slog"

	"petvator/src/config"
	"petvator/src/types"
)

// New creates an offline elevator parked at the ground floor.
func New(cfg config.Config) *Elevator {
	elevator := &Elevator{
		cfg:  cfg,
		wake: make(chan struct{}, 1),
		state: ElevState{
			Floor:     config.GroundFloor,
			Dir:       types.MD_Up,
			Behaviour: types.Offline,
		},
	}
	slog.Debug("Elevator initialized", "loadDuration", cfg.LoadDuration, "travelDuration", cfg.TravelDuration)
	return elevator
}

// Start activates an offline elevator and launches the scheduler worker.
// Requests queued while offline are picked up immediately.
func (e *Elevator) Start() error {
	e.mu.Lock()
	st := &e.state
	if st.Behaviour != types.Offline {
		e.mu.Unlock()
		return types.ErrAlreadyActive
	}

	st.Floor = config.GroundFloor
	st.Dir = types.MD_Up
	st.Manifest = nil
	st.Weight = 0
	st.Deactivating = false
	st.Behaviour = types.Idle
	st.WorkToDo = hasPending(st)
	closed := e.closed
	done := make(chan struct{})
	if !closed {
		e.done = done
	}
	e.mu.Unlock()

	if closed {
		e.mu.Lock()
		e.state.Behaviour = types.Offline
		e.mu.Unlock()
		slog.Error("Elevator worker not started", "reason", "shut down")
		return fmt.Errorf("%w: elevator is shut down", types.ErrWorkerStart)
	}

	go e.run(done)

	slog.Info("Elevator started")
	return nil
}

// IssueRequest queues a pet at startFloor bound for destFloor. While offline the
// request waits until the next Start.
func (e *Elevator) IssueRequest(startFloor, destFloor int, petType types.PetType) error {
	switch {
	case !types.ValidFloor(startFloor):
		slog.Warn("Rejected request", "reason", "start floor out of range", "start", startFloor)
		return fmt.Errorf("%w: start floor %d out of range", types.ErrInvalidRequest, startFloor)
	case !types.ValidFloor(destFloor):
		slog.Warn("Rejected request", "reason", "destination out of range", "dest", destFloor)
		return fmt.Errorf("%w: destination floor %d out of range", types.ErrInvalidRequest, destFloor)
	case startFloor == destFloor:
		slog.Warn("Rejected request", "reason", "same floor", "floor", startFloor)
		return fmt.Errorf("%w: start and destination are both floor %d", types.ErrInvalidRequest, startFloor)
	case !petType.Valid():
		slog.Warn("Rejected request", "reason", "unknown pet type", "type", int(petType))
		return fmt.Errorf("%w: unknown pet type %d", types.ErrInvalidRequest, int(petType))
	}

	pet := types.Pet{Type: petType, DestFloor: destFloor}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.enqueue(startFloor, pet)
	if e.state.Behaviour != types.Offline {
		e.state.WorkToDo = true
		e.signal()
	}
	slog.Debug("Request queued", "floor", startFloor, "pet", pet, "waiting", e.state.TotalWaiting)
	return nil
}

// Stop begins deactivation. Boarding ends at once; the worker keeps delivering
// onboard pets and then goes offline on its own. Stop does not wait for that.
func (e *Elevator) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Deactivating {
		return types.ErrAlreadyStopping
	}
	e.state.Deactivating = true
	e.signal()
	slog.Info("Elevator stopping", "onboard", len(e.state.Manifest))
	return nil
}

// Shutdown tears the elevator down for good. It stops the car if running, blocks
// until the worker has gone offline (or ctx ends), then discards every pet.
// Later Start calls fail with ErrWorkerStart.
func (e *Elevator) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	e.closed = true
	if e.state.Behaviour != types.Offline && !e.state.Deactivating {
		e.state.Deactivating = true
		e.signal()
	}
	done := e.done
	e.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return fmt.Errorf("waiting for elevator to go offline: %w", ctx.Err())
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.state.Waiting {
		e.state.Waiting[i] = FloorQueue{}
	}
	e.state.TotalWaiting = 0
	e.state.Manifest = nil
	e.state.Weight = 0
	slog.Info("Elevator shut down", "serviced", e.state.TotalServiced)
	return nil
}
