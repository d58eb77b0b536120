package behavior

import (
	"phototaxis.dev/fsm"
	"phototaxis.dev/motor"
)

// AggressiveBehavior is cross-wired and proportional: each wheel speeds
// up with the *opposite* sensor's light, driving the vehicle to
// accelerate toward a light source.
type AggressiveBehavior struct{}

func (AggressiveBehavior) Kind() fsm.StateKind { return fsm.Aggressive }

func (AggressiveBehavior) Enter(ctx Context) {
	ctx.Motors().Apply(motor.Stop, motor.Stop, 0, 0)
}

func (b AggressiveBehavior) Execute(ctx Context) {
	l := ctx.CurrentLight()
	dutyL := motor.Clamp(l.Right * k)
	dutyR := motor.Clamp(l.Left * k)
	ctx.Motors().Apply(motor.Forward, motor.Forward, dutyL, dutyR)
	checkDwell(ctx, b.Kind())
}

func (AggressiveBehavior) Exit(ctx Context) {
	ctx.Motors().Apply(motor.Stop, motor.Stop, 0, 0)
}
