// Package nrf24 implements a radio.Device driver for an nRF24L01+-class
// 2.4GHz transceiver over SPI plus a chip-enable GPIO line.
//
// Register map and SPI command bytes: retrieved nRF24 reference driver.
package nrf24

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Register addresses.
const (
	regConfig    = 0x00
	regEnAA      = 0x01
	regEnRxAddr  = 0x02
	regSetupAW   = 0x03
	regSetupRetr = 0x04
	regRFCh      = 0x05
	regRFSetup   = 0x06
	regStatus    = 0x07
	regRxAddrP0  = 0x0A
	regTxAddr    = 0x10
	regRxPWP0    = 0x11
)

// SPI command bytes.
const (
	cmdRRegister   = 0x00
	cmdWRegister   = 0x20
	cmdRRxPayload  = 0x61
	cmdWTxPayload  = 0xA0
	cmdFlushTX     = 0xE1
	cmdFlushRX     = 0xE2
	cmdNop         = 0xFF
)

// CONFIG bits.
const (
	cfgPrimRX = 1 << 0
	cfgPwrUp  = 1 << 1
	cfgEnCRC  = 1 << 3
)

// STATUS bits.
const (
	statusRxDR = 1 << 6
	statusTxDS = 1 << 5
)

// PayloadSize is the fixed per-frame transfer size.
const PayloadSize = 32

// Role selects which of the pair's two fixed addresses this device
// transmits to and listens on.
type Role int

const (
	Vehicle1 Role = iota
	Vehicle2
)

var (
	vehicle1Addr = [5]byte{0x11, 0x11, 0x11, 0x11, 0x11}
	vehicle2Addr = [5]byte{0x00, 0x00, 0x00, 0x00, 0x00}
)

// Device drives an nRF24L01+ as a radio.Device: half-duplex, fixed
// 32-byte payloads, auto-acknowledge disabled, always parked in receive
// mode except for the brief window needed to transmit.
type Device struct {
	conn spi.Conn
	port spi.PortCloser
	ce   gpio.PinOut

	scratch [1 + PayloadSize]byte
}

// Open configures the transceiver: transmit/receive addresses set
// (mutually inverse between the two vehicles in a pair), transfer size
// fixed at PayloadSize, auto-acknowledge disabled, device placed in
// receive mode.
func Open(spiName string, ce gpio.PinOut, channel uint8, role Role) (*Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("nrf24: %w", err)
	}
	p, err := spireg.Open(spiName)
	if err != nil {
		return nil, fmt.Errorf("nrf24: %w", err)
	}
	c, err := p.Connect(8*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("nrf24: %w", err)
	}
	if err := ce.Out(gpio.Low); err != nil {
		p.Close()
		return nil, fmt.Errorf("nrf24: chip enable: %w", err)
	}

	d := &Device{conn: c, port: p, ce: ce}

	rxAddr, txAddr := vehicle1Addr, vehicle2Addr
	if role == Vehicle2 {
		rxAddr, txAddr = vehicle2Addr, vehicle1Addr
	}

	d.writeRegister(regConfig, 0) // power down while configuring
	d.writeRegister(regEnAA, 0)   // auto-acknowledge disabled
	d.writeRegister(regRFCh, channel)
	d.writeRegister(regRFSetup, 0x0E) // 2Mbps, 0dBm
	d.writeRegister(regEnRxAddr, 0x01)
	d.writeRegisterN(regRxAddrP0, rxAddr[:])
	d.writeRegisterN(regTxAddr, txAddr[:])
	d.writeRegister(regRxPWP0, PayloadSize)
	d.writeRegister(regSetupAW, 0x03) // 5-byte addresses

	d.writeRegister(regConfig, cfgEnCRC|cfgPwrUp|cfgPrimRX)
	time.Sleep(5 * time.Millisecond) // power-up settling time
	if err := d.ce.Out(gpio.High); err != nil {
		d.Close()
		return nil, fmt.Errorf("nrf24: chip enable: %w", err)
	}

	return d, nil
}

// Close releases the underlying SPI port.
func (d *Device) Close() error {
	d.ce.Out(gpio.Low)
	return d.port.Close()
}

// Readable reports whether the RX FIFO holds a full payload.
func (d *Device) Readable() (bool, error) {
	status, err := d.readRegister(regStatus)
	if err != nil {
		return false, fmt.Errorf("nrf24: %w", err)
	}
	return status&statusRxDR != 0, nil
}

// Read drains one PayloadSize frame from the RX FIFO into buf.
func (d *Device) Read(buf []byte) (int, error) {
	if len(buf) < PayloadSize {
		return 0, fmt.Errorf("nrf24: read buffer too small: %d < %d", len(buf), PayloadSize)
	}
	tx := d.scratch[:1+PayloadSize]
	rx := make([]byte, len(tx))
	tx[0] = cmdRRxPayload
	for i := 1; i < len(tx); i++ {
		tx[i] = cmdNop
	}
	if err := d.conn.Tx(tx, rx); err != nil {
		return 0, fmt.Errorf("nrf24: %w", err)
	}
	copy(buf, rx[1:])
	d.writeRegister(regStatus, statusRxDR)
	return PayloadSize, nil
}

// Write transmits one PayloadSize frame, briefly dropping out of
// receive mode to pulse the CE line. It always accepts the frame
// whole: short payloads are not supported by this transceiver's FIFO.
func (d *Device) Write(buf []byte) (int, error) {
	if len(buf) != PayloadSize {
		return 0, fmt.Errorf("nrf24: write must be exactly %d bytes, got %d", PayloadSize, len(buf))
	}
	if err := d.ce.Out(gpio.Low); err != nil {
		return 0, fmt.Errorf("nrf24: %w", err)
	}
	d.writeRegister(regConfig, cfgEnCRC|cfgPwrUp) // PRIM_RX=0: TX mode
	d.flushTX()

	tx := d.scratch[:1+PayloadSize]
	tx[0] = cmdWTxPayload
	copy(tx[1:], buf)
	if err := d.conn.Tx(tx, nil); err != nil {
		return 0, fmt.Errorf("nrf24: %w", err)
	}

	if err := d.ce.Out(gpio.High); err != nil {
		return 0, fmt.Errorf("nrf24: %w", err)
	}
	time.Sleep(150 * time.Microsecond) // minimum CE-high pulse width
	if err := d.ce.Out(gpio.Low); err != nil {
		return 0, fmt.Errorf("nrf24: %w", err)
	}

	d.writeRegister(regStatus, statusTxDS)
	d.writeRegister(regConfig, cfgEnCRC|cfgPwrUp|cfgPrimRX) // back to RX mode
	if err := d.ce.Out(gpio.High); err != nil {
		return 0, fmt.Errorf("nrf24: %w", err)
	}
	return PayloadSize, nil
}

func (d *Device) flushTX() {
	var rx [1]byte
	d.conn.Tx([]byte{cmdFlushTX}, rx[:])
}

func (d *Device) writeRegister(reg, val byte) {
	var rx [2]byte
	d.conn.Tx([]byte{cmdWRegister | reg, val}, rx[:])
}

func (d *Device) writeRegisterN(reg byte, data []byte) {
	tx := make([]byte, 1+len(data))
	tx[0] = cmdWRegister | reg
	copy(tx[1:], data)
	rx := make([]byte, len(tx))
	d.conn.Tx(tx, rx)
}

func (d *Device) readRegister(reg byte) (byte, error) {
	tx := []byte{cmdRRegister | reg, cmdNop}
	rx := make([]byte, len(tx))
	if err := d.conn.Tx(tx, rx); err != nil {
		return 0, err
	}
	return rx[1], nil
}
