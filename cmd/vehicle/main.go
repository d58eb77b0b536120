// command vehicle runs one Braitenberg vehicle on a Raspberry Pi,
// driving its motors and LEDs from two photoresistors and a paired
// radio link.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"phototaxis.dev/driver/entropy"
	"phototaxis.dev/driver/hbridge"
	"phototaxis.dev/driver/ldr"
	"phototaxis.dev/driver/nrf24"
	"phototaxis.dev/driver/serialradio"
	"phototaxis.dev/radio"
	"phototaxis.dev/scheduler"
	"phototaxis.dev/vehicle"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "vehicle: %v\n", err)
		os.Exit(2)
	}
}

func run() error {
	role := flag.String("role", "1", "which vehicle of the pair this is: 1 or 2")
	transport := flag.String("transport", "nrf24", "radio transport: nrf24 or serial")
	serialDev := flag.String("serial-device", "/dev/ttyUSB0", "serial device, when -transport=serial")
	debug := flag.Bool("debug", false, "enable verbose per-tick logging")
	flag.Parse()

	var vehicleRole nrf24.Role
	switch *role {
	case "1":
		vehicleRole = nrf24.Vehicle1
	case "2":
		vehicleRole = nrf24.Vehicle2
	default:
		return fmt.Errorf("vehicle: unknown -role %q, want 1 or 2", *role)
	}

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("vehicle: %w", err)
	}

	bus, err := ldr.OpenBus("")
	if err != nil {
		return err
	}
	defer bus.Close()
	left := ldr.NewSensor(bus, 0)
	right := ldr.NewSensor(bus, 1)

	leftIn1 := gpioreg.ByName("GPIO17")
	leftIn2 := gpioreg.ByName("GPIO27")
	leftPWM := gpioreg.ByName("GPIO18")
	rightIn3 := gpioreg.ByName("GPIO22")
	rightIn4 := gpioreg.ByName("GPIO23")
	rightPWM := gpioreg.ByName("GPIO13")
	driver, err := hbridge.Open(leftIn1, leftIn2, leftPWM, rightIn3, rightIn4, rightPWM)
	if err != nil {
		return err
	}
	defer driver.Close()

	leds := &gpioLEDs{
		green: gpioreg.ByName("GPIO5"),
		red:   gpioreg.ByName("GPIO6"),
	}
	if err := leds.init(); err != nil {
		return err
	}

	var dev radio.Device
	switch *transport {
	case "nrf24":
		ce := gpioreg.ByName("GPIO25")
		d, err := nrf24.Open("", ce, 76, vehicleRole)
		if err != nil {
			return err
		}
		defer d.Close()
		dev = d
	case "serial":
		d, err := serialradio.Open(*serialDev, 115200)
		if err != nil {
			return err
		}
		defer d.Close()
		dev = d
	default:
		return fmt.Errorf("vehicle: unknown -transport %q, want nrf24 or serial", *transport)
	}
	svc := radio.NewService(dev)

	seed, err := entropy.Read16(bus)
	if err != nil {
		return err
	}
	rng := vehicle.NewRNG(seed)

	v := vehicle.New(left, right, driver, leds, svc, systemClock{}, rng, vehicle.DefaultConfig())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	return scheduler.Run(ctx, v, svc, scheduler.Config{Debug: *debug})
}
