// command simulate runs two vehicles against an in-process light
// environment and a loopback radio link, with no hardware required.
// It's a manual exploration tool and smoke target; the package-level
// tests exercise the learner's semantics directly.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"sync"
	"time"

	"phototaxis.dev/motor"
	"phototaxis.dev/radio"
	"phototaxis.dev/scheduler"
	"phototaxis.dev/telemetry"
	"phototaxis.dev/vehicle"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
		os.Exit(2)
	}
}

func run() error {
	duration := flag.Duration("duration", 30*time.Second, "how long to run the simulation")
	flag.Parse()

	start := time.Now()
	env1 := &environment{start: start, phase: 0}
	env2 := &environment{start: start, phase: math.Pi}

	loopbackAtoB := make(chan []byte, radio.Capacity)
	loopbackBtoA := make(chan []byte, radio.Capacity)

	devA := &loopbackDevice{in: loopbackBtoA, out: loopbackAtoB}
	devB := &loopbackDevice{in: loopbackAtoB, out: loopbackBtoA}

	svcA := radio.NewService(devA)
	svcB := radio.NewService(devB)

	clock := simClock{}
	rngA := vehicle.NewRNG(1)
	rngB := vehicle.NewRNG(2)

	recFile, err := os.Create("simulate-trace.cbor")
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}
	defer recFile.Close()
	rec := telemetry.NewRecorder(recFile)

	ledsA := &loggingLEDs{name: "vehicle-1"}
	ledsB := &loggingLEDs{name: "vehicle-2"}

	vA := vehicle.New(env1.left(), env1.right(), &tracingDriver{name: "vehicle-1"}, ledsA, svcA, clock, rngA, vehicle.DefaultConfig())
	vB := vehicle.New(env2.left(), env2.right(), &tracingDriver{name: "vehicle-2"}, ledsB, svcB, clock, rngB, vehicle.DefaultConfig())

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	var wg sync.WaitGroup
	errc := make(chan error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := scheduler.Run(ctx, vA, svcA, scheduler.Config{Debug: true}); err != nil && ctx.Err() == nil {
			errc <- fmt.Errorf("vehicle-1: %w", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := scheduler.Run(ctx, vB, svcB, scheduler.Config{Debug: true}); err != nil && ctx.Err() == nil {
			errc <- fmt.Errorf("vehicle-2: %w", err)
		}
	}()

	go func() {
		ticker := time.NewTicker(scheduler.Period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rec.Record(telemetry.Event{
					Time:       time.Now(),
					State:      vA.Current(),
					LightLeft:  vA.CurrentLight().Left,
					LightRight: vA.CurrentLight().Right,
				})
			}
		}
	}()

	wg.Wait()
	select {
	case err := <-errc:
		return err
	default:
	}
	log.Println("simulate: done, trace written to simulate-trace.cbor")
	return nil
}

// environment models one vehicle's illumination as two independent,
// out-of-phase sine waves, standing in for a physical light source
// moving relative to a pair of photoresistors. It needs no real
// physics: it only has to vary continuously and unpredictably enough
// to exercise the learner.
type environment struct {
	start time.Time
	phase float64
}

func (e *environment) left() *envSensor  { return &envSensor{env: e, offset: 0} }
func (e *environment) right() *envSensor { return &envSensor{env: e, offset: math.Pi / 3} }

type envSensor struct {
	env    *environment
	offset float64
}

func (s *envSensor) Read() float64 {
	t := time.Since(s.env.start).Seconds()
	v := math.Sin(t*0.3+s.env.phase+s.offset)
	return (v + 1) / 2 // rescale [-1,1] to [0,1]
}

// loopbackDevice implements radio.Device over a pair of byte-slice
// channels, standing in for the RF/serial link between two vehicles.
type loopbackDevice struct {
	in  <-chan []byte
	out chan<- []byte
}

func (d *loopbackDevice) Readable() (bool, error) {
	return len(d.in) > 0, nil
}

func (d *loopbackDevice) Read(buf []byte) (int, error) {
	select {
	case frame := <-d.in:
		return copy(buf, frame), nil
	default:
		return 0, nil
	}
}

func (d *loopbackDevice) Write(buf []byte) (int, error) {
	frame := make([]byte, len(buf))
	copy(frame, buf)
	select {
	case d.out <- frame:
		return len(buf), nil
	default:
		return 0, fmt.Errorf("simulate: loopback channel full")
	}
}

// simClock advances with real time; the simulation has no need to
// accelerate the clock since it already runs faster than real hardware.
type simClock struct{}

func (simClock) Now() time.Time { return time.Now() }

// tracingDriver implements motor.Driver by logging every command.
type tracingDriver struct{ name string }

func (d *tracingDriver) Apply(dirL, dirR motor.Direction, dutyL, dutyR float64) {
	log.Printf("%s: motors dirL=%v dutyL=%.2f dirR=%v dutyR=%.2f", d.name, dirL, dutyL, dirR, dutyR)
}

// loggingLEDs implements vehicle.LEDs by logging state changes.
type loggingLEDs struct {
	name       string
	green, red bool
}

func (l *loggingLEDs) Set(green, red bool) {
	if l.green == green && l.red == red {
		return
	}
	l.green, l.red = green, red
	log.Printf("%s: leds green=%v red=%v", l.name, green, red)
}
