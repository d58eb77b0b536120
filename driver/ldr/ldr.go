// Package ldr implements a two-channel light.Sensor backed by an
// MCP3008-class 10-bit SPI ADC.
package ldr

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// maxCode is the full-scale 10-bit ADC reading.
const maxCode = 1023

// Bus owns the shared SPI connection to the ADC. driver/entropy reads
// one extra channel over the same Bus.
type Bus struct {
	conn spi.Conn
	port spi.PortCloser
}

// OpenBus connects to the ADC over SPI. The 3.0V reference
// configuration is a board-level concern; this driver only scales raw
// codes assuming that reference is in effect.
func OpenBus(spiName string) (*Bus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("ldr: %w", err)
	}
	p, err := spireg.Open(spiName)
	if err != nil {
		return nil, fmt.Errorf("ldr: %w", err)
	}
	c, err := p.Connect(1*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("ldr: %w", err)
	}
	return &Bus{conn: c, port: p}, nil
}

// Close releases the SPI port.
func (b *Bus) Close() error {
	return b.port.Close()
}

// ReadRaw performs one single-ended conversion on the given 0-7 input
// channel per the MCP3008 command protocol, returning the raw 10-bit
// code. driver/entropy uses this directly to read its reserved channel
// without going through a Sensor.
func (b *Bus) ReadRaw(channel int) (int, error) {
	tx := []byte{
		0x01,
		byte(0x80 | (channel << 4)),
		0x00,
	}
	rx := make([]byte, len(tx))
	if err := b.conn.Tx(tx, rx); err != nil {
		return 0, fmt.Errorf("ldr: %w", err)
	}
	return int(rx[1]&0x03)<<8 | int(rx[2]), nil
}

// Sensor is a light.Sensor bound to one (bus, channel) pair.
type Sensor struct {
	bus     *Bus
	channel int
}

// NewSensor binds a Sensor to the given ADC input channel.
func NewSensor(bus *Bus, channel int) *Sensor {
	return &Sensor{bus: bus, channel: channel}
}

// Read implements light.Sensor: it returns the raw ADC code scaled to
// [0,1]. A transport error is reported as 0 rather than propagated,
// since light.Sensor.Read has no error return; callers monitoring link
// health should inspect the Bus separately.
func (s *Sensor) Read() float64 {
	code, err := s.bus.ReadRaw(s.channel)
	if err != nil {
		return 0
	}
	return float64(code) / maxCode
}
