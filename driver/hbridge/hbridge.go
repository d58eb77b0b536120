// Package hbridge implements motor.Driver over two periph.io GPIO
// direction-pin pairs and two driver/softpwm.Channels.
package hbridge

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/host/v3"

	"phototaxis.dev/driver/softpwm"
	"phototaxis.dev/motor"
)

// outPin is the narrow slice of gpio.PinOut that direction control
// needs, letting tests exercise the truth table with a plain fake.
type outPin interface {
	Out(l gpio.Level) error
}

// Driver commands a pair of DC motors through an H-bridge: two
// direction pins per wheel plus a bit-banged PWM channel for speed.
type Driver struct {
	leftIn1, leftIn2   outPin
	rightIn3, rightIn4 outPin
	leftPWM, rightPWM  *softpwm.Channel
}

// Open configures the four direction pins as outputs and starts a
// softpwm.Channel on each of the two PWM pins.
func Open(leftIn1, leftIn2, leftPWMPin, rightIn3, rightIn4, rightPWMPin gpio.PinIO) (*Driver, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("hbridge: %w", err)
	}
	for _, pin := range []gpio.PinIO{leftIn1, leftIn2, rightIn3, rightIn4} {
		if err := pin.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("hbridge: %w", err)
		}
	}
	leftPWM, err := softpwm.Open(leftPWMPin)
	if err != nil {
		return nil, fmt.Errorf("hbridge: %w", err)
	}
	rightPWM, err := softpwm.Open(rightPWMPin)
	if err != nil {
		return nil, fmt.Errorf("hbridge: %w", err)
	}
	return &Driver{
		leftIn1: leftIn1, leftIn2: leftIn2,
		rightIn3: rightIn3, rightIn4: rightIn4,
		leftPWM: leftPWM, rightPWM: rightPWM,
	}, nil
}

// Apply implements motor.Driver: direction pins select Forward/Reverse/
// Stop, and each wheel's speed is a separate PWM duty cycle. The two
// wheels are mounted mirrored, so the right wheel's direction pins are
// wired the inverse of the left's for the same commanded direction.
func (d *Driver) Apply(dirL, dirR motor.Direction, dutyL, dutyR float64) {
	setLeftDirection(d.leftIn1, d.leftIn2, dirL)
	setRightDirection(d.rightIn3, d.rightIn4, dirR)
	d.leftPWM.SetDuty(motor.Clamp(dutyL))
	d.rightPWM.SetDuty(motor.Clamp(dutyR))
}

// setLeftDirection drives in1/in2 as (1,0) for Forward, (0,1) for Reverse.
func setLeftDirection(in1, in2 outPin, dir motor.Direction) {
	switch dir {
	case motor.Forward:
		in1.Out(gpio.High)
		in2.Out(gpio.Low)
	case motor.Reverse:
		in1.Out(gpio.Low)
		in2.Out(gpio.High)
	default: // motor.Stop and any unrecognized value
		in1.Out(gpio.Low)
		in2.Out(gpio.Low)
	}
}

// setRightDirection drives in3/in4 the mirror image of the left wheel:
// (0,1) for Forward, (1,0) for Reverse.
func setRightDirection(in3, in4 outPin, dir motor.Direction) {
	switch dir {
	case motor.Forward:
		in3.Out(gpio.Low)
		in4.Out(gpio.High)
	case motor.Reverse:
		in3.Out(gpio.High)
		in4.Out(gpio.Low)
	default: // motor.Stop and any unrecognized value
		in3.Out(gpio.Low)
		in4.Out(gpio.Low)
	}
}

// Close stops both PWM channels.
func (d *Driver) Close() {
	d.leftPWM.Close()
	d.rightPWM.Close()
}
