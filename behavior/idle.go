package behavior

import (
	"phototaxis.dev/fsm"
	"phototaxis.dev/motor"
)

// IdleBehavior is the resting state: motors stopped, no locomotion law.
type IdleBehavior struct{}

func (IdleBehavior) Kind() fsm.StateKind { return fsm.Idle }

func (IdleBehavior) Enter(ctx Context) {
	ctx.Motors().Apply(motor.Stop, motor.Stop, 0, 0)
}

func (b IdleBehavior) Execute(ctx Context) {
	checkDwell(ctx, b.Kind())
}

func (IdleBehavior) Exit(ctx Context) {
	ctx.Motors().Apply(motor.Stop, motor.Stop, 0, 0)
}
