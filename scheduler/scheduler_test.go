package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"phototaxis.dev/light"
	"phototaxis.dev/motor"
	"phototaxis.dev/radio"
	"phototaxis.dev/vehicle"
)

type constSensor float64

func (c constSensor) Read() float64 { return float64(c) }

type nullDriver struct{}

func (nullDriver) Apply(motor.Direction, motor.Direction, float64, float64) {}

type nullLEDs struct{}

func (nullLEDs) Set(bool, bool) {}

type realtimeClock struct{}

func (realtimeClock) Now() time.Time { return time.Now() }

type fixedRNG struct{ v float64 }

func (r fixedRNG) NextUnitFloat() float64 { return r.v }

type nullDevice struct{}

func (nullDevice) Readable() (bool, error)       { return false, nil }
func (nullDevice) Read(buf []byte) (int, error)  { return 0, nil }
func (nullDevice) Write(buf []byte) (int, error) { return len(buf), nil }

type failingDevice struct{}

func (failingDevice) Readable() (bool, error)       { return false, errors.New("link down") }
func (failingDevice) Read(buf []byte) (int, error)  { return 0, nil }
func (failingDevice) Write(buf []byte) (int, error) { return 0, nil }

func TestRunStopsOnContextCancel(t *testing.T) {
	svc := radio.NewService(nullDevice{})
	v := vehicle.New(constSensor(0.5), constSensor(0.5), nullDriver{}, nullLEDs{}, svc, realtimeClock{}, fixedRNG{v: 0.9}, vehicle.DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, v, svc, Config{}) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestRunSurfacesRadioTaskError(t *testing.T) {
	svc := radio.NewService(failingDevice{})
	v := vehicle.New(constSensor(0.5), constSensor(0.5), nullDriver{}, nullLEDs{}, svc, realtimeClock{}, fixedRNG{v: 0.9}, vehicle.DefaultConfig())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := Run(ctx, v, svc, Config{})
	if err == nil {
		t.Fatal("expected Run to surface the radio task's error")
	}
}

var _ light.Sensor = constSensor(0)
