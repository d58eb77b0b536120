// Package behavior implements the five Braitenberg locomotion laws and
// the per-state dwell gate that decides when a transition is requested.
package behavior

import (
	"time"

	"phototaxis.dev/fsm"
	"phototaxis.dev/light"
	"phototaxis.dev/motor"
)

// Context is the narrow surface a Behavior needs from its owning
// vehicle.Context. It deliberately exposes nothing about the transition
// matrix, peer influence, or reward bookkeeping — those stay entirely
// inside vehicle.
type Context interface {
	CurrentLight() light.LightReading
	Motors() motor.Driver
	ElapsedInState() time.Duration
	MinDwell(fsm.StateKind) time.Duration
	RequestTransition()
}

// Behavior is one state's locomotion law plus its lifecycle hooks. All
// five variants are stateless; a single shared value can be reused
// across any number of vehicles.
type Behavior interface {
	Kind() fsm.StateKind
	Enter(ctx Context)
	Execute(ctx Context)
	Exit(ctx Context)
}

// k is the proportional gain shared by every motor law.
const k = 1.0

// Table is the behavior set indexed by fsm.StateKind.
type Table [fsm.NumStates]Behavior

// NewTable returns the fixed five-variant table.
func NewTable() Table {
	return Table{
		fsm.Idle:       IdleBehavior{},
		fsm.Coward:     CowardBehavior{},
		fsm.Aggressive: AggressiveBehavior{},
		fsm.Love:       LoveBehavior{},
		fsm.Explorer:   ExplorerBehavior{},
	}
}

// checkDwell requests a transition once the current state has been held
// for at least its minimum dwell duration. Every variant's Execute ends
// by calling this; behavior differs only in the motor law run before it.
func checkDwell(ctx Context, kind fsm.StateKind) {
	if ctx.ElapsedInState() >= ctx.MinDwell(kind) {
		ctx.RequestTransition()
	}
}
