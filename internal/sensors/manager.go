// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"
	"sync"

	imu_raw "github.com/relabs-tech/lsm9ds1_computer/internal/imu"
	"github.com/relabs-tech/lsm9ds1_computer/internal/lsm9ds1"
)

// IMUManager serializes all access to the single LSM9DS1. The driver
// handle is not safe for concurrent use, so the producer loop and the
// register debug WebSocket both go through this mutex.
type IMUManager struct {
	mu  sync.Mutex
	src *imuSource
}

var (
	imuManager     *IMUManager
	imuManagerOnce sync.Once
)

// GetIMUManager returns the process-wide IMU manager.
func GetIMUManager() *IMUManager {
	imuManagerOnce.Do(func() {
		imuManager = &IMUManager{}
	})
	return imuManager
}

// ensureSource lazily initializes the hardware. Called with mu held.
func (m *IMUManager) ensureSource() error {
	if m.src != nil {
		return nil
	}
	src, err := newIMUSource()
	if err != nil {
		return err
	}
	m.src = src
	return nil
}

// ReadRaw reads one raw sample in LSB counts.
func (m *IMUManager) ReadRaw() (imu_raw.IMURaw, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureSource(); err != nil {
		return imu_raw.IMURaw{}, err
	}
	return m.src.ReadRaw()
}

// ReadSample reads one sample converted to physical units.
func (m *IMUManager) ReadSample() (imu_raw.IMUSample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureSource(); err != nil {
		return imu_raw.IMUSample{}, err
	}
	return m.src.ReadSample()
}

// device maps the wire-protocol device name to the driver's device
// selector. Accepts "ag" and "mag".
func device(name string) (lsm9ds1.Device, error) {
	switch name {
	case "ag", "":
		return lsm9ds1.DeviceAG, nil
	case "mag":
		return lsm9ds1.DeviceMag, nil
	}
	return 0, fmt.Errorf("unknown device %q (use \"ag\" or \"mag\")", name)
}

// ReadRegister reads a single register from the named sub-device.
func (m *IMUManager) ReadRegister(deviceName string, addr byte) (byte, error) {
	dev, err := device(deviceName)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureSource(); err != nil {
		return 0, err
	}
	return m.src.dev.ReadRegister(dev, addr)
}

// WriteRegister writes a single register on the named sub-device. Range
// policy is enforced by the caller.
func (m *IMUManager) WriteRegister(deviceName string, addr, value byte) error {
	dev, err := device(deviceName)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureSource(); err != nil {
		return err
	}
	return m.src.dev.WriteRegister(dev, addr, value)
}

// ReadAllRegisters reads every register listed in the sub-device's
// register map.
func (m *IMUManager) ReadAllRegisters(deviceName string) (map[byte]byte, error) {
	dev, err := device(deviceName)
	if err != nil {
		return nil, err
	}
	var infos []RegisterInfo
	if dev == lsm9ds1.DeviceMag {
		infos = getMagRegisterMap()
	} else {
		infos = getAGRegisterMap()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureSource(); err != nil {
		return nil, err
	}

	out := make(map[byte]byte, len(infos))
	for _, info := range infos {
		var addr byte
		if _, err := fmt.Sscanf(info.Address, "0x%X", &addr); err != nil {
			continue
		}
		v, err := m.src.dev.ReadRegister(dev, addr)
		if err != nil {
			return nil, fmt.Errorf("register 0x%02X: %w", addr, err)
		}
		out[addr] = v
	}
	return out, nil
}

// Reinitialize tears down the driver state and runs the full bring-up
// again, reapplying the configured ranges and rates.
func (m *IMUManager) Reinitialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.src = nil
	return m.ensureSource()
}

// GetRegisterMap returns the accel/gyro register metadata.
func (m *IMUManager) GetRegisterMap() []RegisterInfo {
	return getAGRegisterMap()
}

// GetMagRegisterMap returns the magnetometer register metadata.
func (m *IMUManager) GetMagRegisterMap() []RegisterInfo {
	return getMagRegisterMap()
}
