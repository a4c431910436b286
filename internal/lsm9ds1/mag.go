// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm9ds1

// MagScale selects the magnetometer full-scale range (FS_M).
type MagScale byte

const (
	MagScale4G  MagScale = 0b00
	MagScale8G  MagScale = 0b01
	MagScale12G MagScale = 0b10
	MagScale16G MagScale = 0b11
)

func (s MagScale) bits() byte { return byte(s) << 5 }

// Sensitivity returns the magnetic sensitivity for the scale, in gauss
// per LSB.
func (s MagScale) Sensitivity() float32 {
	switch s {
	case MagScale8G:
		return 0.00029
	case MagScale12G:
		return 0.00043
	case MagScale16G:
		return 0.00058
	default:
		return 0.00014
	}
}

// MagODR selects the magnetometer output data rate.
type MagODR byte

const (
	MagODR0_625Hz MagODR = 0b000
	MagODR1_25Hz  MagODR = 0b001
	MagODR2_5Hz   MagODR = 0b010
	MagODR5Hz     MagODR = 0b011
	MagODR10Hz    MagODR = 0b100
	MagODR20Hz    MagODR = 0b101
	MagODR40Hz    MagODR = 0b110
	MagODR80Hz    MagODR = 0b111
)

func (o MagODR) bits() byte { return byte(o) << 2 }

// MagPerformance selects the operative mode versus power trade-off for
// an axis pair.
type MagPerformance byte

const (
	MagPerformanceLow       MagPerformance = 0b00
	MagPerformanceMedium    MagPerformance = 0b01
	MagPerformanceHigh      MagPerformance = 0b10
	MagPerformanceUltraHigh MagPerformance = 0b11
)

// MagMode selects the magnetometer operating mode. PowerDown is what
// the chip boots in; Continuous is what Enable puts it in by default.
type MagMode byte

const (
	MagModeContinuous MagMode = 0b00
	MagModeSingle     MagMode = 0b01
	MagModePowerDown  MagMode = 0b11
)

func (m MagMode) bits() byte { return byte(m) }

// MagSettings is the magnetometer configuration record.
type MagSettings struct {
	// TempComp enables the internal temperature compensation.
	TempComp bool

	XYPerformance MagPerformance
	ZPerformance  MagPerformance
	ODR           MagODR
	Scale         MagScale
	Mode          MagMode

	LowPower bool

	// SPIReadEnable must stay set when the device is wired over SPI;
	// without it the SDO line never drives and every read returns
	// zeros. It is harmless over I2C.
	SPIReadEnable bool

	BlockDataUpdate bool
}

// DefaultMagSettings is high performance on all axes, 10 Hz, ±4 gauss,
// continuous conversion, SPI reads allowed.
func DefaultMagSettings() MagSettings {
	return MagSettings{
		XYPerformance: MagPerformanceHigh,
		ZPerformance:  MagPerformanceHigh,
		ODR:           MagODR10Hz,
		Scale:         MagScale4G,
		Mode:          MagModeContinuous,
		SPIReadEnable: true,
	}
}

// CTRL_REG1_M: [TEMP_COMP][OM1][OM0][DO2][DO1][DO0][0][ST]
func (s MagSettings) ctrlReg1M() byte {
	v := byte(s.XYPerformance)<<5 | s.ODR.bits()
	if s.TempComp {
		v |= 1 << 7
	}
	return v
}

// CTRL_REG2_M: [0][FS1][FS0][0][REBOOT][SOFT_RST][0][0]
func (s MagSettings) ctrlReg2M() byte {
	return s.Scale.bits()
}

// CTRL_REG3_M: [I2C_DISABLE][0][LP][0][0][SIM][MD1][MD0]
func (s MagSettings) ctrlReg3M() byte {
	v := s.Mode.bits()
	if s.LowPower {
		v |= 1 << 5
	}
	if s.SPIReadEnable {
		v |= 1 << 2
	}
	return v
}

// CTRL_REG4_M: [0][0][0][0][OMZ1][OMZ0][BLE][0]
func (s MagSettings) ctrlReg4M() byte {
	return byte(s.ZPerformance) << 2
}

// CTRL_REG5_M: [0][BDU][0][0][0][0][0][0]
func (s MagSettings) ctrlReg5M() byte {
	if s.BlockDataUpdate {
		return 1 << 6
	}
	return 0
}
