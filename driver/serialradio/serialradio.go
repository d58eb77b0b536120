// Package serialradio implements an alternate radio.Device transport
// over a UART, for pairing two vehicles on a bench without RF hardware.
package serialradio

import (
	"fmt"

	"github.com/tarm/serial"

	"phototaxis.dev/radio"
)

// Device implements radio.Device over a serial.Port: each frame is
// exactly radio.Size bytes, with no framing byte needed since every
// read/write on this transport already trades in fixed-size frames.
type Device struct {
	port *serial.Port

	pending []byte // bytes read by Readable but not yet consumed by Read
}

// Open opens the named serial device at baud and wraps it as a
// radio.Device.
func Open(name string, baud int) (*Device, error) {
	port, err := serial.OpenPort(&serial.Config{Name: name, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("serialradio: %w", err)
	}
	return &Device{port: port}, nil
}

// Close releases the underlying serial port.
func (d *Device) Close() error {
	return d.port.Close()
}

// Readable polls the port for whatever bytes are currently available
// and buffers them until a full frame has accumulated. Open's caller
// must set serial.Config.ReadTimeout to a small value so this never
// blocks the radio task for long.
func (d *Device) Readable() (bool, error) {
	buf := make([]byte, 1)
	n, err := d.port.Read(buf)
	if err != nil {
		return false, fmt.Errorf("serialradio: %w", err)
	}
	if n == 0 {
		return false, nil
	}
	d.pending = append(d.pending, buf[:n]...)
	return len(d.pending) >= radio.Size, nil
}

// Read returns the previously buffered frame detected by Readable.
func (d *Device) Read(buf []byte) (int, error) {
	n := copy(buf, d.pending[:radio.Size])
	d.pending = d.pending[radio.Size:]
	return n, nil
}

// Write sends buf over the serial port.
func (d *Device) Write(buf []byte) (int, error) {
	n, err := d.port.Write(buf)
	if err != nil {
		return n, fmt.Errorf("serialradio: %w", err)
	}
	return n, nil
}
