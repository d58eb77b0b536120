// Package fsm defines the vehicle's behavior states and their stable
// on-wire encoding. It is deliberately tiny and dependency-free so that
// light, motor, radio, behavior and vehicle can all import it without
// creating cycles.
package fsm

import "fmt"

// StateKind enumerates the five behavior states of the vehicle. The
// numeric values are the on-wire encoding used by radio.PeerReport and
// must not be renumbered.
type StateKind uint8

const (
	Idle StateKind = iota
	Coward
	Aggressive
	Love
	Explorer
)

// NumStates is the size of the transition matrix and every per-state
// array (probabilities, min-dwell durations, behavior table).
const NumStates = 5

// Valid reports whether k is one of the five defined states.
func (k StateKind) Valid() bool {
	return k < NumStates
}

func (k StateKind) String() string {
	switch k {
	case Idle:
		return "Idle"
	case Coward:
		return "Coward"
	case Aggressive:
		return "Aggressive"
	case Love:
		return "Love"
	case Explorer:
		return "Explorer"
	default:
		return fmt.Sprintf("StateKind(%d)", uint8(k))
	}
}
