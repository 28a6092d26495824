package types

import (
	"fmt"

	"petvator/src/config"
)

type MotorDirection int

const (
	MD_Up   MotorDirection = 1
	MD_Down MotorDirection = -1
)

func (dir MotorDirection) String() string {
	if dir == MD_Down {
		return "down"
	}
	return "up"
}

// ElevBehaviour is the car-wide lifecycle state. Only the scheduler loop changes it,
// except for the rollback when the worker fails to start.
type ElevBehaviour int

const (
	Offline ElevBehaviour = iota
	Idle
	Up
	Down
	Loading
)

func (b ElevBehaviour) String() string {
	switch b {
	case Offline:
		return "OFFLINE"
	case Idle:
		return "IDLE"
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Loading:
		return "LOADING"
	}
	return fmt.Sprintf("ElevBehaviour(%d)", int(b))
}

// BehaviourFor returns the moving state matching dir.
func BehaviourFor(dir MotorDirection) ElevBehaviour {
	if dir == MD_Down {
		return Down
	}
	return Up
}

type PetType int

const (
	Cat PetType = iota
	Pug
	Hare
	Dog
)

var petWeights = [...]int{Cat: 3, Pug: 14, Hare: 10, Dog: 16}
var petLetters = [...]byte{Cat: 'C', Pug: 'P', Hare: 'H', Dog: 'D'}

func (p PetType) Valid() bool {
	return p >= Cat && p <= Dog
}

// Weight in lbs. Panics on an unknown type; validate first.
func (p PetType) Weight() int {
	return petWeights[p]
}

func (p PetType) Letter() byte {
	return petLetters[p]
}

// Pet is one pickup/delivery unit.
type Pet struct {
	Type      PetType
	DestFloor int
}

func (p Pet) String() string {
	return fmt.Sprintf("%c%d", p.Type.Letter(), p.DestFloor)
}

func ValidFloor(floor int) bool {
	return floor >= config.GroundFloor && floor < config.GroundFloor+config.NumFloors
}
