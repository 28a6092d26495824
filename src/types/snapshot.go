package types

import "petvator/src/config"

// Snapshot is a copy of the whole elevator state taken at one instant under the lock.
type Snapshot struct {
	Behaviour     ElevBehaviour
	Floor         int
	Dir           MotorDirection
	Weight        int
	Deactivating  bool
	Manifest      []Pet
	Waiting       [config.NumFloors][]Pet
	TotalWaiting  int
	TotalServiced int
}

// WaitingAt returns the queue of a 1-based floor.
func (s Snapshot) WaitingAt(floor int) []Pet {
	return s.Waiting[floor-config.GroundFloor]
}
