package behavior

import (
	"phototaxis.dev/fsm"
	"phototaxis.dev/motor"
)

// CowardBehavior is parallel-wired and proportional: each wheel speeds
// up with the *same-side* sensor's light. Despite its name, this is not
// canonical Braitenberg "run from light" wiring — see the Coward law
// decision in DESIGN.md. The formula below is reproduced exactly as
// found, not as commented.
type CowardBehavior struct{}

func (CowardBehavior) Kind() fsm.StateKind { return fsm.Coward }

func (CowardBehavior) Enter(ctx Context) {
	ctx.Motors().Apply(motor.Stop, motor.Stop, 0, 0)
}

func (b CowardBehavior) Execute(ctx Context) {
	l := ctx.CurrentLight()
	dutyL := motor.Clamp(l.Left * k)
	dutyR := motor.Clamp(l.Right * k)
	ctx.Motors().Apply(motor.Forward, motor.Forward, dutyL, dutyR)
	checkDwell(ctx, b.Kind())
}

func (CowardBehavior) Exit(ctx Context) {
	ctx.Motors().Apply(motor.Stop, motor.Stop, 0, 0)
}
