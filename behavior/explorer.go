package behavior

import (
	"phototaxis.dev/fsm"
	"phototaxis.dev/motor"
)

// ExplorerBehavior is parallel-wired and inhibitory: each wheel slows as
// the *same-side* sensor's light grows, so the vehicle seeks darkness
// and moves faster the darker it gets.
type ExplorerBehavior struct{}

func (ExplorerBehavior) Kind() fsm.StateKind { return fsm.Explorer }

func (ExplorerBehavior) Enter(ctx Context) {
	ctx.Motors().Apply(motor.Stop, motor.Stop, 0, 0)
}

func (b ExplorerBehavior) Execute(ctx Context) {
	l := ctx.CurrentLight()
	dutyL := motor.Clamp(1 - l.Left*k)
	dutyR := motor.Clamp(1 - l.Right*k)
	ctx.Motors().Apply(motor.Forward, motor.Forward, dutyL, dutyR)
	checkDwell(ctx, b.Kind())
}

func (ExplorerBehavior) Exit(ctx Context) {
	ctx.Motors().Apply(motor.Stop, motor.Stop, 0, 0)
}
