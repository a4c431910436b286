// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm9ds1

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Device selects one of the two sub-devices sharing the bus: the
// accel/gyro core or the magnetometer. They have separate chip-select
// lines in SPI mode and separate bus addresses in I2C mode.
type Device int

const (
	DeviceAG Device = iota
	DeviceMag
)

func (d Device) String() string {
	if d == DeviceMag {
		return "mag"
	}
	return "accel/gyro"
}

// Transport frames logical register accesses for one bus kind. All
// calls are synchronous and blocking; failures surface as *BusError.
// A Transport exclusively owns its peripheral handle and must not be
// shared between driver instances.
type Transport interface {
	Write(dev Device, reg byte, data ...byte) error
	Read(dev Device, reg byte, buf []byte) error
}

// SPI framing bits in the address byte.
const (
	spiRead  = 0x80 // R/W bit, high for reads
	spiMSBit = 0x40 // mag MS bit: auto-increment the address on bursts
)

// Maximum SPI clock for the LSM9DS1 is 10 MHz; 8 MHz leaves margin on
// long leads.
const spiFrequency = 8 * physic.MegaHertz

// SPITransport drives the sensor over 4-wire SPI with one chip-select
// line per sub-device. The select line is asserted low for the duration
// of each transaction and released on every exit path, so a failed
// transfer never leaves the bus held.
type SPITransport struct {
	conn  spi.Conn
	csAG  gpio.PinOut
	csMag gpio.PinOut
}

// NewSPI connects the port at SPI mode 0, 8 bits, and returns a
// transport using csAG and csMag as the per-sub-device select lines.
// Both lines are driven high (deselected) before the first transaction.
func NewSPI(p spi.Port, csAG, csMag gpio.PinOut) (*SPITransport, error) {
	c, err := p.Connect(spiFrequency, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	t := &SPITransport{conn: c, csAG: csAG, csMag: csMag}
	if err := csAG.Out(gpio.High); err != nil {
		return nil, err
	}
	if err := csMag.Out(gpio.High); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *SPITransport) cs(dev Device) gpio.PinOut {
	if dev == DeviceMag {
		return t.csMag
	}
	return t.csAG
}

func (t *SPITransport) Write(dev Device, reg byte, data ...byte) error {
	cs := t.cs(dev)
	if err := cs.Out(gpio.Low); err != nil {
		return &BusError{Op: "write", Device: dev, Register: reg, Err: err}
	}
	defer cs.Out(gpio.High)

	tx := append([]byte{reg &^ spiRead}, data...)
	if err := t.conn.Tx(tx, nil); err != nil {
		return &BusError{Op: "write", Device: dev, Register: reg, Err: err}
	}
	return nil
}

func (t *SPITransport) Read(dev Device, reg byte, buf []byte) error {
	addr := reg | spiRead
	if dev == DeviceMag {
		// The mag only auto-increments bursts when the MS bit is set.
		addr |= spiMSBit
	}
	cs := t.cs(dev)
	if err := cs.Out(gpio.Low); err != nil {
		return &BusError{Op: "read", Device: dev, Register: reg, Err: err}
	}
	defer cs.Out(gpio.High)

	// Full-duplex: clock out the address byte plus one dummy byte per
	// data byte, the response arrives offset by one.
	tx := make([]byte, len(buf)+1)
	tx[0] = addr
	rx := make([]byte, len(buf)+1)
	if err := t.conn.Tx(tx, rx); err != nil {
		return &BusError{Op: "read", Device: dev, Register: reg, Err: err}
	}
	copy(buf, rx[1:])
	return nil
}

// I2CTransport drives the sensor over the addressed bus, with the two
// sub-devices at separate addresses. Burst auto-increment on the AG
// core relies on IF_ADD_INC in CTRL_REG8, which the driver sets during
// configuration.
type I2CTransport struct {
	ag  i2c.Dev
	mag i2c.Dev
}

// NewI2C returns a transport addressing the accel/gyro core at agAddr
// and the magnetometer at magAddr. Zero addresses select the defaults
// (0x6B and 0x1E).
func NewI2C(bus i2c.Bus, agAddr, magAddr uint16) *I2CTransport {
	if agAddr == 0 {
		agAddr = DefaultAddrAG
	}
	if magAddr == 0 {
		magAddr = DefaultAddrMag
	}
	return &I2CTransport{
		ag:  i2c.Dev{Addr: agAddr, Bus: bus},
		mag: i2c.Dev{Addr: magAddr, Bus: bus},
	}
}

func (t *I2CTransport) dev(dev Device) *i2c.Dev {
	if dev == DeviceMag {
		return &t.mag
	}
	return &t.ag
}

func (t *I2CTransport) Write(dev Device, reg byte, data ...byte) error {
	d := t.dev(dev)
	if err := d.Tx(append([]byte{reg}, data...), nil); err != nil {
		return &BusError{Op: "write", Device: dev, Register: reg, Err: err}
	}
	return nil
}

func (t *I2CTransport) Read(dev Device, reg byte, buf []byte) error {
	// Register pointer write, then a repeated-start read.
	d := t.dev(dev)
	if err := d.Tx([]byte{reg}, buf); err != nil {
		return &BusError{Op: "read", Device: dev, Register: reg, Err: err}
	}
	return nil
}
