package main

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// systemClock implements vehicle.Clock over the real wall clock.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// gpioLEDs implements vehicle.LEDs over two discrete GPIO output pins.
type gpioLEDs struct {
	green, red gpio.PinIO
}

func (l *gpioLEDs) init() error {
	if err := l.green.Out(gpio.Low); err != nil {
		return fmt.Errorf("vehicle: led: %w", err)
	}
	if err := l.red.Out(gpio.Low); err != nil {
		return fmt.Errorf("vehicle: led: %w", err)
	}
	return nil
}

func (l *gpioLEDs) Set(green, red bool) {
	l.green.Out(gpio.Level(green))
	l.red.Out(gpio.Level(red))
}
