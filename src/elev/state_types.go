// State types are kept together so the scheduler, policy and control operations share one view.
package elev

import (
	"sync"

	"petvator/src/config"
	"petvator/src/types"
)

// ElevState is everything guarded by Elevator.mu.
type ElevState struct {
	Floor         int
	Dir           types.MotorDirection
	Behaviour     types.ElevBehaviour
	Manifest      []types.Pet // boarding order
	Weight        int
	Waiting       [config.NumFloors]FloorQueue
	TotalWaiting  int
	TotalServiced int
	Deactivating  bool
	WorkToDo      bool
}

// FloorQueue is the FIFO of pets waiting on one floor. Count always equals len(Pets).
type FloorQueue struct {
	Pets  []types.Pet
	Count int
}

// Controller is what the dispatch layer holds to drive an elevator.
type Controller interface {
	Start() error
	IssueRequest(startFloor, destFloor int, petType types.PetType) error
	Stop() error
	Status() string
}

// Elevator owns the shared state and the single scheduler worker.
type Elevator struct {
	cfg config.Config

	mu     sync.Mutex
	state  ElevState
	closed bool
	done   chan struct{} // closed when the current worker has exited
	wake   chan struct{}

	onTick func(st *ElevState, tk tick) // called under mu after every decision
}

// tick describes one scheduler decision.
type tick struct {
	Behaviour types.ElevBehaviour
	Floor     int
	Dir       types.MotorDirection
	Reversed  bool
	Unloaded  []types.Pet
	Boarded   []types.Pet
}

var _ Controller = (*Elevator)(nil)
