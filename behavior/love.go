package behavior

import (
	"phototaxis.dev/fsm"
	"phototaxis.dev/motor"
)

// LoveBehavior is cross-wired and inhibitory: each wheel slows as the
// *opposite* sensor's light grows, so the vehicle approaches a light
// source but eases off as it nears it.
type LoveBehavior struct{}

func (LoveBehavior) Kind() fsm.StateKind { return fsm.Love }

func (LoveBehavior) Enter(ctx Context) {
	ctx.Motors().Apply(motor.Stop, motor.Stop, 0, 0)
}

func (b LoveBehavior) Execute(ctx Context) {
	l := ctx.CurrentLight()
	dutyL := motor.Clamp(1 - l.Right*k)
	dutyR := motor.Clamp(1 - l.Left*k)
	ctx.Motors().Apply(motor.Forward, motor.Forward, dutyL, dutyR)
	checkDwell(ctx, b.Kind())
}

func (LoveBehavior) Exit(ctx Context) {
	ctx.Motors().Apply(motor.Stop, motor.Stop, 0, 0)
}
