package elev

import (
	"petvator/src/config"
	"petvator/src/types"
)

func (st *ElevState) queue(floor int) *FloorQueue {
	return &st.Waiting[floor-config.GroundFloor]
}

// enqueue appends a pet to the back of the floor's queue.
func (st *ElevState) enqueue(floor int, pet types.Pet) {
	q := st.queue(floor)
	q.Pets = append(q.Pets, pet)
	q.Count++
	st.TotalWaiting++
}

// dequeueIfAdmissible pops the head of the floor's queue only if it can board.
func (st *ElevState) dequeueIfAdmissible(floor int) (types.Pet, bool) {
	if !canBoard(st, floor) {
		return types.Pet{}, false
	}
	q := st.queue(floor)
	pet := q.Pets[0]
	q.Pets[0] = types.Pet{}
	q.Pets = q.Pets[1:]
	q.Count--
	st.TotalWaiting--
	return pet, true
}

// needsService reports whether anyone waits at floor (ignored while deactivating)
// or any onboard pet is destined for it.
func needsService(st *ElevState, floor int) bool {
	if !st.Deactivating && st.queue(floor).Count > 0 {
		return true
	}
	return hasDestination(st, floor)
}

func hasDestination(st *ElevState, floor int) bool {
	for _, pet := range st.Manifest {
		if pet.DestFloor == floor {
			return true
		}
	}
	return false
}

func hasPending(st *ElevState) bool {
	for floor := config.GroundFloor; floor < config.GroundFloor+config.NumFloors; floor++ {
		if needsService(st, floor) {
			return true
		}
	}
	return false
}

// hasRequestsAhead scans the floors strictly beyond the current one in dir.
// The current floor is not included: it is resolved by the loading check first.
func hasRequestsAhead(st *ElevState, dir types.MotorDirection) bool {
	for floor := st.Floor + int(dir); types.ValidFloor(floor); floor += int(dir) {
		if needsService(st, floor) {
			return true
		}
	}
	return false
}

func canUnload(st *ElevState) bool {
	return hasDestination(st, st.Floor)
}

// canBoard checks capacity and weight against the head of the queue only.
func canBoard(st *ElevState, floor int) bool {
	q := st.queue(floor)
	if q.Count == 0 {
		return false
	}
	head := q.Pets[0]
	return len(st.Manifest) < config.MaxPets && st.Weight+head.Type.Weight() <= config.MaxWeight
}

// unload drops every onboard pet destined for the current floor.
func unload(st *ElevState) []types.Pet {
	var delivered []types.Pet
	kept := st.Manifest[:0]
	for _, pet := range st.Manifest {
		if pet.DestFloor == st.Floor {
			delivered = append(delivered, pet)
			st.Weight -= pet.Type.Weight()
			st.TotalServiced++
			continue
		}
		kept = append(kept, pet)
	}
	clear(st.Manifest[len(kept):])
	st.Manifest = kept
	return delivered
}

// board takes pets from the current floor in FIFO order until the head no longer fits.
func board(st *ElevState) []types.Pet {
	var boarded []types.Pet
	for {
		pet, ok := st.dequeueIfAdmissible(st.Floor)
		if !ok {
			return boarded
		}
		st.Manifest = append(st.Manifest, pet)
		st.Weight += pet.Type.Weight()
		boarded = append(boarded, pet)
	}
}
