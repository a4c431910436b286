// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package lsm9ds1 drives the ST LSM9DS1 iNEMO inertial module: a
// 3-axis accelerometer and 3-axis gyroscope sharing one core, plus a
// 3-axis magnetometer as a second sub-device on the same bus. The
// driver works over either 4-wire SPI with two chip-select lines or
// an addressed bus, behind the Transport interface.
//
// Each of the three sensors is driven through the same lifecycle:
// configure (write the control registers), enable (turn the sensor
// on), then read. Reads before enable fail with *SequenceError.
package lsm9ds1

import "encoding/binary"

// Temperature conversion: 16 LSB per degree C, zero offset at 25 C.
const (
	tempScale = 16.0
	tempBias  = 25.0
)

// Status register data-ready bits.
const (
	statusAccelReady = 0x01
	statusGyroReady  = 0x02
	statusTempReady  = 0x04
	statusMagReady   = 0x01 // STATUS_REG_M XDA
)

// Dev is a handle to one LSM9DS1. It is not safe for concurrent use;
// callers that share a Dev across goroutines must serialize access
// themselves.
type Dev struct {
	tr Transport

	accel AccelSettings
	gyro  GyroSettings
	mag   MagSettings

	accelState State
	gyroState  State
	magState   State
}

// New returns an unconfigured device on the given transport. No bus
// traffic happens until the first Configure or presence check.
func New(tr Transport) *Dev {
	return &Dev{
		tr:    tr,
		accel: DefaultAccelSettings(),
		gyro:  DefaultGyroSettings(),
		mag:   DefaultMagSettings(),
	}
}

// AccelGyroPresent reads the accel/gyro WHO_AM_I register and reports
// whether the expected identity came back.
func (d *Dev) AccelGyroPresent() (bool, error) {
	var buf [1]byte
	if err := d.tr.Read(DeviceAG, regWhoAmI, buf[:]); err != nil {
		return false, err
	}
	return buf[0] == whoAmIAG, nil
}

// MagPresent reads the magnetometer WHO_AM_I register and reports
// whether the expected identity came back.
func (d *Dev) MagPresent() (bool, error) {
	var buf [1]byte
	if err := d.tr.Read(DeviceMag, regWhoAmIM, buf[:]); err != nil {
		return false, err
	}
	return buf[0] == whoAmIMag, nil
}

// ConfigureAccel writes the accelerometer control registers. The
// settings are only stored once every register write succeeded, so a
// bus failure leaves the previous configuration in effect.
func (d *Dev) ConfigureAccel(s AccelSettings) error {
	if err := d.tr.Write(DeviceAG, regCtrlReg8, ctrlReg8IfAddInc); err != nil {
		return err
	}
	if err := d.tr.Write(DeviceAG, regCtrlReg6XL, s.ctrlReg6XL()); err != nil {
		return err
	}
	if err := d.tr.Write(DeviceAG, regCtrlReg7XL, s.ctrlReg7XL()); err != nil {
		return err
	}
	d.accel = s
	if d.accelState < Configured {
		d.accelState = Configured
	}
	return nil
}

// EnableAccel turns on the configured axes. Idempotent: enabling an
// already enabled accelerometer rewrites the same register value.
func (d *Dev) EnableAccel() error {
	if d.accelState < Configured {
		return &SequenceError{Attempted: "EnableAccel", State: d.accelState, Required: Configured}
	}
	if err := d.tr.Write(DeviceAG, regCtrlReg5XL, d.accel.ctrlReg5XL()); err != nil {
		return err
	}
	d.accelState = Enabled
	return nil
}

// ConfigureGyro writes the gyroscope control registers.
func (d *Dev) ConfigureGyro(s GyroSettings) error {
	if err := d.tr.Write(DeviceAG, regCtrlReg8, ctrlReg8IfAddInc); err != nil {
		return err
	}
	if err := d.tr.Write(DeviceAG, regCtrlReg1G, s.ctrlReg1G()); err != nil {
		return err
	}
	if err := d.tr.Write(DeviceAG, regCtrlReg2G, s.ctrlReg2G()); err != nil {
		return err
	}
	if err := d.tr.Write(DeviceAG, regCtrlReg3G, s.ctrlReg3G()); err != nil {
		return err
	}
	if err := d.tr.Write(DeviceAG, regOrientCfgG, s.orientCfgG()); err != nil {
		return err
	}
	d.gyro = s
	if d.gyroState < Configured {
		d.gyroState = Configured
	}
	return nil
}

// EnableGyro turns on the configured axes.
func (d *Dev) EnableGyro() error {
	if d.gyroState < Configured {
		return &SequenceError{Attempted: "EnableGyro", State: d.gyroState, Required: Configured}
	}
	if err := d.tr.Write(DeviceAG, regCtrlReg4, d.gyro.ctrlReg4()); err != nil {
		return err
	}
	d.gyroState = Enabled
	return nil
}

// ConfigureMag writes the magnetometer control registers, except the
// operating-mode register which EnableMag owns. The device stays
// powered down until EnableMag.
func (d *Dev) ConfigureMag(s MagSettings) error {
	if err := d.tr.Write(DeviceMag, regCtrlReg1M, s.ctrlReg1M()); err != nil {
		return err
	}
	if err := d.tr.Write(DeviceMag, regCtrlReg2M, s.ctrlReg2M()); err != nil {
		return err
	}
	if err := d.tr.Write(DeviceMag, regCtrlReg4M, s.ctrlReg4M()); err != nil {
		return err
	}
	if err := d.tr.Write(DeviceMag, regCtrlReg5M, s.ctrlReg5M()); err != nil {
		return err
	}
	d.mag = s
	if d.magState < Configured {
		d.magState = Configured
	}
	return nil
}

// EnableMag writes the operating mode, taking the magnetometer out of
// power-down into whatever Mode the settings selected.
func (d *Dev) EnableMag() error {
	if d.magState < Configured {
		return &SequenceError{Attempted: "EnableMag", State: d.magState, Required: Configured}
	}
	if err := d.tr.Write(DeviceMag, regCtrlReg3M, d.mag.ctrlReg3M()); err != nil {
		return err
	}
	d.magState = Enabled
	return nil
}

// SetAccelScale rewrites CTRL_REG6_XL with a new full-scale range,
// keeping the rest of the stored settings.
func (d *Dev) SetAccelScale(s AccelScale) error {
	if d.accelState < Configured {
		return &SequenceError{Attempted: "SetAccelScale", State: d.accelState, Required: Configured}
	}
	next := d.accel
	next.Scale = s
	if err := d.tr.Write(DeviceAG, regCtrlReg6XL, next.ctrlReg6XL()); err != nil {
		return err
	}
	d.accel = next
	return nil
}

// SetAccelODR rewrites CTRL_REG6_XL with a new output data rate.
func (d *Dev) SetAccelODR(o AccelODR) error {
	if d.accelState < Configured {
		return &SequenceError{Attempted: "SetAccelODR", State: d.accelState, Required: Configured}
	}
	next := d.accel
	next.ODR = o
	if err := d.tr.Write(DeviceAG, regCtrlReg6XL, next.ctrlReg6XL()); err != nil {
		return err
	}
	d.accel = next
	return nil
}

// SetGyroScale rewrites CTRL_REG1_G with a new full-scale range.
func (d *Dev) SetGyroScale(s GyroScale) error {
	if d.gyroState < Configured {
		return &SequenceError{Attempted: "SetGyroScale", State: d.gyroState, Required: Configured}
	}
	next := d.gyro
	next.Scale = s
	if err := d.tr.Write(DeviceAG, regCtrlReg1G, next.ctrlReg1G()); err != nil {
		return err
	}
	d.gyro = next
	return nil
}

// SetGyroODR rewrites CTRL_REG1_G with a new output data rate.
func (d *Dev) SetGyroODR(o GyroODR) error {
	if d.gyroState < Configured {
		return &SequenceError{Attempted: "SetGyroODR", State: d.gyroState, Required: Configured}
	}
	next := d.gyro
	next.ODR = o
	if err := d.tr.Write(DeviceAG, regCtrlReg1G, next.ctrlReg1G()); err != nil {
		return err
	}
	d.gyro = next
	return nil
}

// SetMagScale rewrites CTRL_REG2_M with a new full-scale range.
func (d *Dev) SetMagScale(s MagScale) error {
	if d.magState < Configured {
		return &SequenceError{Attempted: "SetMagScale", State: d.magState, Required: Configured}
	}
	next := d.mag
	next.Scale = s
	if err := d.tr.Write(DeviceMag, regCtrlReg2M, next.ctrlReg2M()); err != nil {
		return err
	}
	d.mag = next
	return nil
}

// SetMagODR rewrites CTRL_REG1_M with a new output data rate.
func (d *Dev) SetMagODR(o MagODR) error {
	if d.magState < Configured {
		return &SequenceError{Attempted: "SetMagODR", State: d.magState, Required: Configured}
	}
	next := d.mag
	next.ODR = o
	if err := d.tr.Write(DeviceMag, regCtrlReg1M, next.ctrlReg1M()); err != nil {
		return err
	}
	d.mag = next
	return nil
}

// AccelSettings returns the currently applied accelerometer settings.
func (d *Dev) AccelSettings() AccelSettings { return d.accel }

// GyroSettings returns the currently applied gyroscope settings.
func (d *Dev) GyroSettings() GyroSettings { return d.gyro }

// MagSettings returns the currently applied magnetometer settings.
func (d *Dev) MagSettings() MagSettings { return d.mag }

// AccelState returns the accelerometer lifecycle state.
func (d *Dev) AccelState() State { return d.accelState }

// GyroState returns the gyroscope lifecycle state.
func (d *Dev) GyroState() State { return d.gyroState }

// MagState returns the magnetometer lifecycle state.
func (d *Dev) MagState() State { return d.magState }

// readVector bursts the six output bytes starting at reg and decodes
// them as three little-endian signed 16-bit values.
func (d *Dev) readVector(dev Device, reg byte) (x, y, z int16, err error) {
	var buf [6]byte
	if err = d.tr.Read(dev, reg, buf[:]); err != nil {
		return 0, 0, 0, err
	}
	x = int16(binary.LittleEndian.Uint16(buf[0:2]))
	y = int16(binary.LittleEndian.Uint16(buf[2:4]))
	z = int16(binary.LittleEndian.Uint16(buf[4:6]))
	return x, y, z, nil
}

// ReadAccelRaw returns one accelerometer sample in LSB counts.
func (d *Dev) ReadAccelRaw() (x, y, z int16, err error) {
	if d.accelState < Enabled {
		return 0, 0, 0, &SequenceError{Attempted: "ReadAccelRaw", State: d.accelState, Required: Enabled}
	}
	return d.readVector(DeviceAG, regOutXLXL)
}

// ReadAccel returns one accelerometer sample in g.
func (d *Dev) ReadAccel() (x, y, z float32, err error) {
	rx, ry, rz, err := d.ReadAccelRaw()
	if err != nil {
		return 0, 0, 0, err
	}
	s := d.accel.Scale.Sensitivity()
	return float32(rx) * s, float32(ry) * s, float32(rz) * s, nil
}

// ReadGyroRaw returns one gyroscope sample in LSB counts.
func (d *Dev) ReadGyroRaw() (x, y, z int16, err error) {
	if d.gyroState < Enabled {
		return 0, 0, 0, &SequenceError{Attempted: "ReadGyroRaw", State: d.gyroState, Required: Enabled}
	}
	return d.readVector(DeviceAG, regOutXLG)
}

// ReadGyro returns one gyroscope sample in degrees per second.
func (d *Dev) ReadGyro() (x, y, z float32, err error) {
	rx, ry, rz, err := d.ReadGyroRaw()
	if err != nil {
		return 0, 0, 0, err
	}
	s := d.gyro.Scale.Sensitivity()
	return float32(rx) * s, float32(ry) * s, float32(rz) * s, nil
}

// ReadMagRaw returns one magnetometer sample in LSB counts.
func (d *Dev) ReadMagRaw() (x, y, z int16, err error) {
	if d.magState < Enabled {
		return 0, 0, 0, &SequenceError{Attempted: "ReadMagRaw", State: d.magState, Required: Enabled}
	}
	return d.readVector(DeviceMag, regOutXLM)
}

// ReadMag returns one magnetometer sample in gauss.
func (d *Dev) ReadMag() (x, y, z float32, err error) {
	rx, ry, rz, err := d.ReadMagRaw()
	if err != nil {
		return 0, 0, 0, err
	}
	s := d.mag.Scale.Sensitivity()
	return float32(rx) * s, float32(ry) * s, float32(rz) * s, nil
}

// ReadTemperatureRaw returns the die temperature in LSB counts. The
// temperature sensor runs whenever the accel or gyro does, so at least
// one of the two must be enabled.
func (d *Dev) ReadTemperatureRaw() (int16, error) {
	if d.accelState < Enabled && d.gyroState < Enabled {
		return 0, &SequenceError{Attempted: "ReadTemperatureRaw", State: d.accelState, Required: Enabled}
	}
	var buf [2]byte
	if err := d.tr.Read(DeviceAG, regOutTempL, buf[:]); err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(buf[:])), nil
}

// ReadTemperature returns the die temperature in degrees Celsius.
func (d *Dev) ReadTemperature() (float32, error) {
	raw, err := d.ReadTemperatureRaw()
	if err != nil {
		return 0, err
	}
	return float32(raw)/tempScale + tempBias, nil
}

// AccelAvailable reports whether a new accelerometer sample is ready.
func (d *Dev) AccelAvailable() (bool, error) {
	return d.statusBit(DeviceAG, regStatusReg, statusAccelReady)
}

// GyroAvailable reports whether a new gyroscope sample is ready.
func (d *Dev) GyroAvailable() (bool, error) {
	return d.statusBit(DeviceAG, regStatusReg, statusGyroReady)
}

// TempAvailable reports whether a new temperature sample is ready.
func (d *Dev) TempAvailable() (bool, error) {
	return d.statusBit(DeviceAG, regStatusReg, statusTempReady)
}

// MagAvailable reports whether a new magnetometer sample is ready.
func (d *Dev) MagAvailable() (bool, error) {
	return d.statusBit(DeviceMag, regStatusRegM, statusMagReady)
}

func (d *Dev) statusBit(dev Device, reg, mask byte) (bool, error) {
	var buf [1]byte
	if err := d.tr.Read(dev, reg, buf[:]); err != nil {
		return false, err
	}
	return buf[0]&mask != 0, nil
}

// ReadRegister exposes a raw register read for diagnostics tooling.
func (d *Dev) ReadRegister(dev Device, reg byte) (byte, error) {
	var buf [1]byte
	if err := d.tr.Read(dev, reg, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// WriteRegister exposes a raw register write for diagnostics tooling.
// It bypasses the settings records; a subsequent Configure call will
// overwrite whatever was poked in.
func (d *Dev) WriteRegister(dev Device, reg, value byte) error {
	return d.tr.Write(dev, reg, value)
}
