package elev

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tiendc/go-deepcopy"

	"petvator/src/config"
	"petvator/src/types"
)

// Snapshot deep-copies the whole state under the lock so callers can read it freely.
func (e *Elevator) Snapshot() (types.Snapshot, error) {
	clone := new(ElevState)
	e.mu.Lock()
	err := deepcopy.Copy(clone, &e.state)
	e.mu.Unlock()
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("copy elevator state: %w", err)
	}

	snap := types.Snapshot{
		Behaviour:     clone.Behaviour,
		Floor:         clone.Floor,
		Dir:           clone.Dir,
		Weight:        clone.Weight,
		Deactivating:  clone.Deactivating,
		Manifest:      clone.Manifest,
		TotalWaiting:  clone.TotalWaiting,
		TotalServiced: clone.TotalServiced,
	}
	for i, q := range clone.Waiting {
		snap.Waiting[i] = q.Pets
	}
	return snap, nil
}

// Status renders a snapshot in the fixed report layout.
func (e *Elevator) Status() string {
	snap, err := e.Snapshot()
	if err != nil {
		slog.Error("Status unavailable", "err", err)
		return fmt.Sprintf("Elevator status unavailable: %v\n", err)
	}
	return FormatStatus(snap)
}

func FormatStatus(snap types.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Elevator state: %s\n", snap.Behaviour)
	fmt.Fprintf(&b, "Current floor: %d\n", snap.Floor)
	fmt.Fprintf(&b, "Current load: %d lbs\n", snap.Weight)

	b.WriteString("Elevator status:")
	if len(snap.Manifest) == 0 {
		b.WriteString(" (empty)")
	}
	writePets(&b, snap.Manifest)
	b.WriteString("\n")

	for floor := config.GroundFloor + config.NumFloors - 1; floor >= config.GroundFloor; floor-- {
		marker := ' '
		if floor == snap.Floor {
			marker = '*'
		}
		waiting := snap.WaitingAt(floor)
		fmt.Fprintf(&b, "[%c] Floor %d: %d", marker, floor, len(waiting))
		writePets(&b, waiting)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Number of pets: %d\n", len(snap.Manifest))
	fmt.Fprintf(&b, "Number of pets waiting: %d\n", snap.TotalWaiting)
	fmt.Fprintf(&b, "Number of pets serviced: %d\n", snap.TotalServiced)
	return b.String()
}

func writePets(b *strings.Builder, pets []types.Pet) {
	for _, pet := range pets {
		b.WriteByte(' ')
		b.WriteString(pet.String())
	}
}
