// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"
	"log"

	"github.com/relabs-tech/lsm9ds1_computer/internal/config"
	imu_raw "github.com/relabs-tech/lsm9ds1_computer/internal/imu"
	"github.com/relabs-tech/lsm9ds1_computer/internal/lsm9ds1"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// IMURawReader defines the interface for reading raw IMU data.
type IMURawReader interface {
	ReadRaw() (imu_raw.IMURaw, error)
}

type imuSource struct {
	bus string // "spi" or "i2c", for logging and sample tagging
	dev *lsm9ds1.Dev
}

// NewIMUSource initializes the LSM9DS1 on the bus selected by the
// configuration and brings all three sensors up to enabled.
func NewIMUSource() (IMURawReader, error) {
	src, err := newIMUSource()
	if err != nil {
		return nil, err
	}
	return src, nil
}

// newIMUSource is the shared initialization path; the manager keeps the
// concrete type for register-level access.
func newIMUSource() (*imuSource, error) {
	cfg := config.Get()

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("IMU: periph host init: %w", err)
	}

	tr, err := newTransport(cfg)
	if err != nil {
		return nil, err
	}

	dev := lsm9ds1.New(tr)

	// Identity checks before touching any control register.
	if ok, err := dev.AccelGyroPresent(); err != nil {
		return nil, fmt.Errorf("IMU: accel/gyro WHO_AM_I: %w", err)
	} else if !ok {
		return nil, fmt.Errorf("IMU: accel/gyro not found on %s bus", cfg.IMUBus)
	}
	if ok, err := dev.MagPresent(); err != nil {
		return nil, fmt.Errorf("IMU: magnetometer WHO_AM_I: %w", err)
	} else if !ok {
		return nil, fmt.Errorf("IMU: magnetometer not found on %s bus", cfg.IMUBus)
	}
	log.Printf("IMU: LSM9DS1 detected on %s bus", cfg.IMUBus)

	if err := configureDevice(dev, cfg); err != nil {
		return nil, err
	}

	return &imuSource{bus: cfg.IMUBus, dev: dev}, nil
}

// newTransport builds the SPI or I2C transport from the configuration.
func newTransport(cfg *config.Config) (lsm9ds1.Transport, error) {
	switch cfg.IMUBus {
	case "spi":
		port, err := spireg.Open(cfg.IMUSPIDevice)
		if err != nil {
			return nil, fmt.Errorf("IMU: SPI port (%s): %w", cfg.IMUSPIDevice, err)
		}
		csAG := gpioreg.ByName(cfg.IMUCSAGPin)
		if csAG == nil {
			return nil, fmt.Errorf("IMU: CS pin %q not found", cfg.IMUCSAGPin)
		}
		csMag := gpioreg.ByName(cfg.IMUCSMagPin)
		if csMag == nil {
			return nil, fmt.Errorf("IMU: CS pin %q not found", cfg.IMUCSMagPin)
		}
		tr, err := lsm9ds1.NewSPI(port, csAG, csMag)
		if err != nil {
			return nil, fmt.Errorf("IMU: SPI transport: %w", err)
		}
		return tr, nil
	case "i2c":
		bus, err := i2creg.Open(cfg.IMUI2CBus)
		if err != nil {
			return nil, fmt.Errorf("IMU: I2C bus (%s): %w", cfg.IMUI2CBus, err)
		}
		return lsm9ds1.NewI2C(bus, cfg.IMUI2CAGAddr, cfg.IMUI2CMagAddr), nil
	default:
		return nil, fmt.Errorf("IMU: unsupported bus %q", cfg.IMUBus)
	}
}

// configureDevice applies the configured ranges and rates and enables
// all three sensors.
func configureDevice(dev *lsm9ds1.Dev, cfg *config.Config) error {
	accel := lsm9ds1.DefaultAccelSettings()
	accel.Scale = accelScaleFromRange(cfg.IMUAccelRange)
	if odr, ok := accelODRFromHz(cfg.IMUAccelODR); ok {
		accel.ODR = odr
	}
	if err := dev.ConfigureAccel(accel); err != nil {
		return fmt.Errorf("IMU: configure accel: %w", err)
	}
	if err := dev.EnableAccel(); err != nil {
		return fmt.Errorf("IMU: enable accel: %w", err)
	}
	log.Printf("IMU: accelerometer enabled (±%dg, %d Hz)", cfg.IMUAccelRange, cfg.IMUAccelODR)

	gyro := lsm9ds1.DefaultGyroSettings()
	gyro.Scale = gyroScaleFromRange(cfg.IMUGyroRange)
	if odr, ok := gyroODRFromHz(cfg.IMUGyroODR); ok {
		gyro.ODR = odr
	}
	if err := dev.ConfigureGyro(gyro); err != nil {
		return fmt.Errorf("IMU: configure gyro: %w", err)
	}
	if err := dev.EnableGyro(); err != nil {
		return fmt.Errorf("IMU: enable gyro: %w", err)
	}
	log.Printf("IMU: gyroscope enabled (±%d°/s, %d Hz)", cfg.IMUGyroRange, cfg.IMUGyroODR)

	mag := lsm9ds1.DefaultMagSettings()
	mag.Scale = magScaleFromRange(cfg.IMUMagRange)
	if odr, ok := magODRFromHz(cfg.IMUMagODR); ok {
		mag.ODR = odr
	}
	if err := dev.ConfigureMag(mag); err != nil {
		return fmt.Errorf("IMU: configure mag: %w", err)
	}
	if err := dev.EnableMag(); err != nil {
		return fmt.Errorf("IMU: enable mag: %w", err)
	}
	log.Printf("IMU: magnetometer enabled (±%d gauss, %d Hz)", cfg.IMUMagRange, cfg.IMUMagODR)

	return nil
}

// Range and ODR mappings from config values (physical units) to driver
// settings. The config layer has already validated the sets, so the
// defaults here only cover the zero value (key not present).

func accelScaleFromRange(r int) lsm9ds1.AccelScale {
	switch r {
	case 4:
		return lsm9ds1.AccelScale4G
	case 8:
		return lsm9ds1.AccelScale8G
	case 16:
		return lsm9ds1.AccelScale16G
	default:
		return lsm9ds1.AccelScale2G
	}
}

func gyroScaleFromRange(r int) lsm9ds1.GyroScale {
	switch r {
	case 500:
		return lsm9ds1.GyroScale500DPS
	case 2000:
		return lsm9ds1.GyroScale2000DPS
	default:
		return lsm9ds1.GyroScale245DPS
	}
}

func magScaleFromRange(r int) lsm9ds1.MagScale {
	switch r {
	case 8:
		return lsm9ds1.MagScale8G
	case 12:
		return lsm9ds1.MagScale12G
	case 16:
		return lsm9ds1.MagScale16G
	default:
		return lsm9ds1.MagScale4G
	}
}

func accelODRFromHz(hz int) (lsm9ds1.AccelODR, bool) {
	switch hz {
	case 10:
		return lsm9ds1.AccelODR10Hz, true
	case 50:
		return lsm9ds1.AccelODR50Hz, true
	case 119:
		return lsm9ds1.AccelODR119Hz, true
	case 238:
		return lsm9ds1.AccelODR238Hz, true
	case 476:
		return lsm9ds1.AccelODR476Hz, true
	case 952:
		return lsm9ds1.AccelODR952Hz, true
	}
	return 0, false
}

func gyroODRFromHz(hz int) (lsm9ds1.GyroODR, bool) {
	switch hz {
	case 15:
		return lsm9ds1.GyroODR14_9Hz, true
	case 60:
		return lsm9ds1.GyroODR59_5Hz, true
	case 119:
		return lsm9ds1.GyroODR119Hz, true
	case 238:
		return lsm9ds1.GyroODR238Hz, true
	case 476:
		return lsm9ds1.GyroODR476Hz, true
	case 952:
		return lsm9ds1.GyroODR952Hz, true
	}
	return 0, false
}

func magODRFromHz(hz int) (lsm9ds1.MagODR, bool) {
	switch hz {
	case 5:
		return lsm9ds1.MagODR5Hz, true
	case 10:
		return lsm9ds1.MagODR10Hz, true
	case 20:
		return lsm9ds1.MagODR20Hz, true
	case 40:
		return lsm9ds1.MagODR40Hz, true
	case 80:
		return lsm9ds1.MagODR80Hz, true
	}
	return 0, false
}

// ReadRaw reads accelerometer, gyroscope, magnetometer and temperature
// data in LSB counts.
func (s *imuSource) ReadRaw() (imu_raw.IMURaw, error) {
	ax, ay, az, err := s.dev.ReadAccelRaw()
	if err != nil {
		return imu_raw.IMURaw{}, fmt.Errorf("IMU accel: %w", err)
	}
	gx, gy, gz, err := s.dev.ReadGyroRaw()
	if err != nil {
		return imu_raw.IMURaw{}, fmt.Errorf("IMU gyro: %w", err)
	}
	mx, my, mz, err := s.dev.ReadMagRaw()
	if err != nil {
		return imu_raw.IMURaw{}, fmt.Errorf("IMU mag: %w", err)
	}
	temp, err := s.dev.ReadTemperatureRaw()
	if err != nil {
		return imu_raw.IMURaw{}, fmt.Errorf("IMU temperature: %w", err)
	}

	return imu_raw.IMURaw{
		Source: s.bus,
		Ax:     ax,
		Ay:     ay,
		Az:     az,
		Gx:     gx,
		Gy:     gy,
		Gz:     gz,
		Mx:     mx,
		My:     my,
		Mz:     mz,
		Temp:   temp,
	}, nil
}

// ReadSample reads one sample converted to physical units.
func (s *imuSource) ReadSample() (imu_raw.IMUSample, error) {
	ax, ay, az, err := s.dev.ReadAccel()
	if err != nil {
		return imu_raw.IMUSample{}, fmt.Errorf("IMU accel: %w", err)
	}
	gx, gy, gz, err := s.dev.ReadGyro()
	if err != nil {
		return imu_raw.IMUSample{}, fmt.Errorf("IMU gyro: %w", err)
	}
	mx, my, mz, err := s.dev.ReadMag()
	if err != nil {
		return imu_raw.IMUSample{}, fmt.Errorf("IMU mag: %w", err)
	}
	temp, err := s.dev.ReadTemperature()
	if err != nil {
		return imu_raw.IMUSample{}, fmt.Errorf("IMU temperature: %w", err)
	}

	return imu_raw.IMUSample{
		Source: s.bus,
		Ax:     float64(ax),
		Ay:     float64(ay),
		Az:     float64(az),
		Gx:     float64(gx),
		Gy:     float64(gy),
		Gz:     float64(gz),
		Mx:     float64(mx),
		My:     float64(my),
		Mz:     float64(mz),
		TempC:  float64(temp),
	}, nil
}
