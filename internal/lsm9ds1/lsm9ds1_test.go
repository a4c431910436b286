// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm9ds1

import (
	"errors"
	"testing"
)

// fakeTransport backs each sub-device with a 256-byte register file.
type fakeTransport struct {
	regs      [2][256]byte
	writes    []fakeWrite
	failWrite map[byte]error
	failRead  map[byte]error
}

type fakeWrite struct {
	dev  Device
	reg  byte
	data []byte
}

func newFakeTransport() *fakeTransport {
	t := &fakeTransport{
		failWrite: map[byte]error{},
		failRead:  map[byte]error{},
	}
	t.regs[DeviceAG][regWhoAmI] = whoAmIAG
	t.regs[DeviceMag][regWhoAmIM] = whoAmIMag
	return t
}

func (t *fakeTransport) Write(dev Device, reg byte, data ...byte) error {
	if err := t.failWrite[reg]; err != nil {
		return &BusError{Op: "write", Device: dev, Register: reg, Err: err}
	}
	t.writes = append(t.writes, fakeWrite{dev: dev, reg: reg, data: append([]byte(nil), data...)})
	for i, b := range data {
		t.regs[dev][int(reg)+i] = b
	}
	return nil
}

func (t *fakeTransport) Read(dev Device, reg byte, buf []byte) error {
	if err := t.failRead[reg]; err != nil {
		return &BusError{Op: "read", Device: dev, Register: reg, Err: err}
	}
	copy(buf, t.regs[dev][reg:])
	return nil
}

func (t *fakeTransport) setVector(dev Device, reg byte, x, y, z int16) {
	for i, v := range []int16{x, y, z} {
		t.regs[dev][int(reg)+2*i] = byte(v)
		t.regs[dev][int(reg)+2*i+1] = byte(v >> 8)
	}
}

func configuredDev(t *testing.T) (*Dev, *fakeTransport) {
	t.Helper()
	tr := newFakeTransport()
	d := New(tr)
	if err := d.ConfigureAccel(DefaultAccelSettings()); err != nil {
		t.Fatalf("ConfigureAccel: %v", err)
	}
	if err := d.ConfigureGyro(DefaultGyroSettings()); err != nil {
		t.Fatalf("ConfigureGyro: %v", err)
	}
	if err := d.ConfigureMag(DefaultMagSettings()); err != nil {
		t.Fatalf("ConfigureMag: %v", err)
	}
	return d, tr
}

func enabledDev(t *testing.T) (*Dev, *fakeTransport) {
	t.Helper()
	d, tr := configuredDev(t)
	if err := d.EnableAccel(); err != nil {
		t.Fatalf("EnableAccel: %v", err)
	}
	if err := d.EnableGyro(); err != nil {
		t.Fatalf("EnableGyro: %v", err)
	}
	if err := d.EnableMag(); err != nil {
		t.Fatalf("EnableMag: %v", err)
	}
	return d, tr
}

func TestPresence(t *testing.T) {
	tr := newFakeTransport()
	d := New(tr)
	ok, err := d.AccelGyroPresent()
	if err != nil || !ok {
		t.Errorf("AccelGyroPresent = %v, %v", ok, err)
	}
	ok, err = d.MagPresent()
	if err != nil || !ok {
		t.Errorf("MagPresent = %v, %v", ok, err)
	}
	tr.regs[DeviceAG][regWhoAmI] = 0x00
	ok, err = d.AccelGyroPresent()
	if err != nil || ok {
		t.Errorf("AccelGyroPresent with wrong identity = %v, %v", ok, err)
	}
}

func TestReadBeforeConfigure(t *testing.T) {
	d := New(newFakeTransport())
	_, _, _, err := d.ReadAccel()
	var se *SequenceError
	if !errors.As(err, &se) {
		t.Fatalf("error %T, want *SequenceError", err)
	}
	if se.Required != Enabled || se.State != Unconfigured {
		t.Errorf("SequenceError = %+v", se)
	}
}

func TestReadBeforeEnable(t *testing.T) {
	d, _ := configuredDev(t)
	var se *SequenceError
	if _, _, _, err := d.ReadGyroRaw(); !errors.As(err, &se) {
		t.Errorf("ReadGyroRaw after configure: %v, want *SequenceError", err)
	}
	if _, _, _, err := d.ReadMagRaw(); !errors.As(err, &se) {
		t.Errorf("ReadMagRaw after configure: %v, want *SequenceError", err)
	}
	if _, err := d.ReadTemperature(); !errors.As(err, &se) {
		t.Errorf("ReadTemperature after configure: %v, want *SequenceError", err)
	}
}

func TestEnableBeforeConfigure(t *testing.T) {
	d := New(newFakeTransport())
	var se *SequenceError
	if err := d.EnableAccel(); !errors.As(err, &se) {
		t.Errorf("EnableAccel: %v, want *SequenceError", err)
	}
	if err := d.EnableMag(); !errors.As(err, &se) {
		t.Errorf("EnableMag: %v, want *SequenceError", err)
	}
}

func TestConfigureWritesRegisters(t *testing.T) {
	tr := newFakeTransport()
	d := New(tr)
	if err := d.ConfigureAccel(DefaultAccelSettings()); err != nil {
		t.Fatalf("ConfigureAccel: %v", err)
	}
	if got := tr.regs[DeviceAG][regCtrlReg8]; got != ctrlReg8IfAddInc {
		t.Errorf("CTRL_REG8 = 0x%02X, want 0x%02X", got, ctrlReg8IfAddInc)
	}
	if got := tr.regs[DeviceAG][regCtrlReg6XL]; got != 0x60 {
		t.Errorf("CTRL_REG6_XL = 0x%02X, want 0x60", got)
	}
	// Axis enables are owned by EnableAccel, not Configure.
	if got := tr.regs[DeviceAG][regCtrlReg5XL]; got != 0x00 {
		t.Errorf("CTRL_REG5_XL written during configure: 0x%02X", got)
	}
	if err := d.EnableAccel(); err != nil {
		t.Fatalf("EnableAccel: %v", err)
	}
	if got := tr.regs[DeviceAG][regCtrlReg5XL]; got != 0x38 {
		t.Errorf("CTRL_REG5_XL = 0x%02X, want 0x38", got)
	}
}

func TestConfigureMagLeavesModeAlone(t *testing.T) {
	tr := newFakeTransport()
	d := New(tr)
	if err := d.ConfigureMag(DefaultMagSettings()); err != nil {
		t.Fatalf("ConfigureMag: %v", err)
	}
	for _, w := range tr.writes {
		if w.dev == DeviceMag && w.reg == regCtrlReg3M {
			t.Fatal("configure wrote the operating-mode register")
		}
	}
	if err := d.EnableMag(); err != nil {
		t.Fatalf("EnableMag: %v", err)
	}
	if got := tr.regs[DeviceMag][regCtrlReg3M]; got != 0x04 {
		t.Errorf("CTRL_REG3_M = 0x%02X, want 0x04", got)
	}
}

func TestEnableIdempotent(t *testing.T) {
	d, tr := enabledDev(t)
	before := len(tr.writes)
	if err := d.EnableAccel(); err != nil {
		t.Fatalf("second EnableAccel: %v", err)
	}
	if d.AccelState() != Enabled {
		t.Errorf("state %v after re-enable", d.AccelState())
	}
	// Re-enable rewrites the same value, one more write, same contents.
	if len(tr.writes) != before+1 {
		t.Fatalf("got %d extra writes, want 1", len(tr.writes)-before)
	}
	w := tr.writes[before]
	if w.reg != regCtrlReg5XL || w.data[0] != 0x38 {
		t.Errorf("re-enable wrote reg 0x%02X = 0x%02X", w.reg, w.data[0])
	}
}

func TestFailedEnableKeepsState(t *testing.T) {
	d, tr := configuredDev(t)
	cause := errors.New("nack")
	tr.failWrite[regCtrlReg4] = cause

	err := d.EnableGyro()
	if !errors.Is(err, cause) {
		t.Fatalf("EnableGyro: %v", err)
	}
	if d.GyroState() != Configured {
		t.Errorf("state advanced to %v on failed enable", d.GyroState())
	}
}

func TestFailedConfigureKeepsSettings(t *testing.T) {
	d, tr := enabledDev(t)
	tr.failWrite[regCtrlReg6XL] = errors.New("nack")

	s := DefaultAccelSettings()
	s.Scale = AccelScale16G
	if err := d.ConfigureAccel(s); err == nil {
		t.Fatal("expected error")
	}
	if d.AccelSettings().Scale != AccelScale2G {
		t.Errorf("settings mutated on failed configure")
	}
	// Conversions keep using the old sensitivity.
	tr.setVector(DeviceAG, regOutXLXL, 1, 0, 0)
	x, _, _, err := d.ReadAccel()
	if err != nil {
		t.Fatalf("ReadAccel: %v", err)
	}
	if x != 0.000061 {
		t.Errorf("x = %v, want 0.000061", x)
	}
}

func TestAccelConversion(t *testing.T) {
	d, tr := enabledDev(t)
	tr.setVector(DeviceAG, regOutXLXL, 0, 1, -1)

	x, y, z, err := d.ReadAccel()
	if err != nil {
		t.Fatalf("ReadAccel: %v", err)
	}
	if x != 0 || y != 0.000061 || z != -0.000061 {
		t.Errorf("got (%v, %v, %v), want (0, 0.000061, -0.000061)", x, y, z)
	}
}

func TestGyroConversionAfterScaleChange(t *testing.T) {
	d, tr := enabledDev(t)
	if err := d.SetGyroScale(GyroScale2000DPS); err != nil {
		t.Fatalf("SetGyroScale: %v", err)
	}
	if got := tr.regs[DeviceAG][regCtrlReg1G]; got != 0xD8 {
		t.Errorf("CTRL_REG1_G = 0x%02X, want 0xD8", got)
	}
	tr.setVector(DeviceAG, regOutXLG, 100, -100, 0)
	x, y, _, err := d.ReadGyro()
	if err != nil {
		t.Fatalf("ReadGyro: %v", err)
	}
	if x != 7.0 || y != -7.0 {
		t.Errorf("got (%v, %v), want (7, -7)", x, y)
	}
}

func TestMagConversion(t *testing.T) {
	d, tr := enabledDev(t)
	tr.setVector(DeviceMag, regOutXLM, 1000, 0, -1000)

	x, _, z, err := d.ReadMag()
	if err != nil {
		t.Fatalf("ReadMag: %v", err)
	}
	if x != 0.14 || z != -0.14 {
		t.Errorf("got (%v, %v), want (0.14, -0.14)", x, z)
	}
}

func TestTemperatureConversion(t *testing.T) {
	d, tr := enabledDev(t)
	// +32 LSB is +2 degrees over the 25 C bias.
	tr.regs[DeviceAG][regOutTempL] = 32
	tr.regs[DeviceAG][regOutTempH] = 0

	c, err := d.ReadTemperature()
	if err != nil {
		t.Fatalf("ReadTemperature: %v", err)
	}
	if c != 27.0 {
		t.Errorf("temperature %v, want 27", c)
	}
	// Negative raw values below the bias.
	tr.regs[DeviceAG][regOutTempL] = byte(-160 & 0xFF)
	tr.regs[DeviceAG][regOutTempH] = 0xFF
	c, err = d.ReadTemperature()
	if err != nil {
		t.Fatalf("ReadTemperature: %v", err)
	}
	if c != 15.0 {
		t.Errorf("temperature %v, want 15", c)
	}
}

func TestTemperatureNeedsAccelOrGyro(t *testing.T) {
	d, _ := configuredDev(t)
	if err := d.EnableGyro(); err != nil {
		t.Fatalf("EnableGyro: %v", err)
	}
	// Gyro alone keeps the temperature sensor running.
	if _, err := d.ReadTemperature(); err != nil {
		t.Errorf("ReadTemperature with only gyro enabled: %v", err)
	}
}

func TestSettersRequireConfigured(t *testing.T) {
	d := New(newFakeTransport())
	var se *SequenceError
	if err := d.SetAccelScale(AccelScale8G); !errors.As(err, &se) {
		t.Errorf("SetAccelScale: %v, want *SequenceError", err)
	}
	if err := d.SetMagODR(MagODR80Hz); !errors.As(err, &se) {
		t.Errorf("SetMagODR: %v, want *SequenceError", err)
	}
}

func TestSetAccelODRKeepsScale(t *testing.T) {
	d, tr := enabledDev(t)
	if err := d.SetAccelScale(AccelScale8G); err != nil {
		t.Fatalf("SetAccelScale: %v", err)
	}
	if err := d.SetAccelODR(AccelODR952Hz); err != nil {
		t.Fatalf("SetAccelODR: %v", err)
	}
	// 952 Hz with the ±8 g bits still set.
	if got := tr.regs[DeviceAG][regCtrlReg6XL]; got != 0xD8 {
		t.Errorf("CTRL_REG6_XL = 0x%02X, want 0xD8", got)
	}
	if d.AccelSettings().Scale != AccelScale8G {
		t.Errorf("scale lost across ODR change")
	}
}

func TestStatusFlags(t *testing.T) {
	d, tr := enabledDev(t)
	tr.regs[DeviceAG][regStatusReg] = statusAccelReady | statusTempReady
	tr.regs[DeviceMag][regStatusRegM] = statusMagReady

	if ok, _ := d.AccelAvailable(); !ok {
		t.Error("AccelAvailable = false")
	}
	if ok, _ := d.GyroAvailable(); ok {
		t.Error("GyroAvailable = true")
	}
	if ok, _ := d.TempAvailable(); !ok {
		t.Error("TempAvailable = false")
	}
	if ok, _ := d.MagAvailable(); !ok {
		t.Error("MagAvailable = false")
	}
}

func TestRawRegisterAccess(t *testing.T) {
	d, tr := enabledDev(t)
	if err := d.WriteRegister(DeviceAG, regOrientCfgG, 0x2A); err != nil {
		t.Fatalf("WriteRegister: %v", err)
	}
	if got := tr.regs[DeviceAG][regOrientCfgG]; got != 0x2A {
		t.Errorf("register = 0x%02X, want 0x2A", got)
	}
	v, err := d.ReadRegister(DeviceAG, regOrientCfgG)
	if err != nil {
		t.Fatalf("ReadRegister: %v", err)
	}
	if v != 0x2A {
		t.Errorf("ReadRegister = 0x%02X, want 0x2A", v)
	}
}
