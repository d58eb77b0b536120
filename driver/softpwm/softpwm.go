// Package softpwm implements a generic bit-banged PWM channel: a
// goroutine toggles a GPIO output pin at a fixed period, honoring an
// atomically updated duty cycle.
package softpwm

import (
	"math"
	"sync/atomic"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Period is the fixed carrier period, matching motor.PWMPeriod.
const Period = 50 * time.Microsecond

// Channel drives one GPIO pin as a bit-banged PWM output.
type Channel struct {
	pin    gpio.PinOut
	duty   atomic.Uint64 // math.Float64bits of the current [0,1] duty
	stopCh chan struct{}
}

// Open configures pin as an output at zero duty and starts its toggling
// goroutine.
func Open(pin gpio.PinIO) (*Channel, error) {
	if err := pin.Out(gpio.Low); err != nil {
		return nil, err
	}
	c := &Channel{pin: pin, stopCh: make(chan struct{})}
	c.duty.Store(math.Float64bits(0))
	go c.run()
	return c, nil
}

// SetDuty updates the commanded duty cycle. Safe to call concurrently
// with the toggling goroutine.
func (c *Channel) SetDuty(duty float64) {
	if duty < 0 {
		duty = 0
	} else if duty > 1 {
		duty = 1
	}
	c.duty.Store(math.Float64bits(duty))
}

// Close stops the toggling goroutine and drives the pin low.
func (c *Channel) Close() {
	close(c.stopCh)
	c.pin.Out(gpio.Low)
}

func (c *Channel) run() {
	for {
		duty := math.Float64frombits(c.duty.Load())
		high := time.Duration(duty * float64(Period))
		low := Period - high

		if high > 0 {
			c.pin.Out(gpio.High)
			if !c.sleep(high) {
				return
			}
		}
		if low > 0 {
			c.pin.Out(gpio.Low)
			if !c.sleep(low) {
				return
			}
		}
	}
}

// sleep waits for d, or returns false immediately if the channel has
// been closed.
func (c *Channel) sleep(d time.Duration) bool {
	select {
	case <-c.stopCh:
		return false
	case <-time.After(d):
		return true
	}
}
