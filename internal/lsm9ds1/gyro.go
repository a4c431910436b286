// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm9ds1

// GyroScale selects the gyroscope full-scale range (FS_G). 0b10 is not
// assigned by the chip and is therefore not part of the enumeration.
type GyroScale byte

const (
	GyroScale245DPS  GyroScale = 0b00
	GyroScale500DPS  GyroScale = 0b01
	GyroScale2000DPS GyroScale = 0b11
)

func (s GyroScale) bits() byte { return byte(s) << 3 }

// Sensitivity returns the angular rate sensitivity for the scale, in
// degrees per second per LSB.
func (s GyroScale) Sensitivity() float32 {
	switch s {
	case GyroScale500DPS:
		return 0.0175
	case GyroScale2000DPS:
		return 0.07
	default:
		return 0.00875
	}
}

// GyroODR selects the gyroscope output data rate.
type GyroODR byte

const (
	GyroODRPowerDown GyroODR = 0b000
	GyroODR14_9Hz    GyroODR = 0b001
	GyroODR59_5Hz    GyroODR = 0b010
	GyroODR119Hz     GyroODR = 0b011
	GyroODR238Hz     GyroODR = 0b100
	GyroODR476Hz     GyroODR = 0b101
	GyroODR952Hz     GyroODR = 0b110
)

func (o GyroODR) bits() byte { return byte(o) << 5 }

// GyroBandwidth selects the low-pass cutoff relative to the ODR
// (BW_G). The actual frequency depends on the selected ODR.
type GyroBandwidth byte

const (
	GyroBandwidthLow     GyroBandwidth = 0b00
	GyroBandwidthMedium  GyroBandwidth = 0b01
	GyroBandwidthHigh    GyroBandwidth = 0b10
	GyroBandwidthHighest GyroBandwidth = 0b11
)

func (b GyroBandwidth) bits() byte { return byte(b) }

// GyroIntSel selects the source routed to the interrupt generator.
type GyroIntSel byte

const (
	GyroIntSelLPF1 GyroIntSel = 0b00
	GyroIntSelHPF  GyroIntSel = 0b01
	GyroIntSelLPF2 GyroIntSel = 0b10
)

func (i GyroIntSel) bits() byte { return byte(i) << 2 }

// GyroOutSel selects the source routed to the output registers.
type GyroOutSel byte

const (
	GyroOutSelLPF1 GyroOutSel = 0b00
	GyroOutSelHPF  GyroOutSel = 0b01
	GyroOutSelLPF2 GyroOutSel = 0b10
)

func (o GyroOutSel) bits() byte { return byte(o) }

// GyroHPCutoff selects the high-pass filter cutoff (HPCF_G, 0 through
// 9). The resulting frequency depends on the selected ODR.
type GyroHPCutoff byte

const (
	GyroHPCutoff0 GyroHPCutoff = iota
	GyroHPCutoff1
	GyroHPCutoff2
	GyroHPCutoff3
	GyroHPCutoff4
	GyroHPCutoff5
	GyroHPCutoff6
	GyroHPCutoff7
	GyroHPCutoff8
	GyroHPCutoff9
)

func (c GyroHPCutoff) bits() byte { return byte(c) }

// GyroSettings is the gyroscope configuration record.
type GyroSettings struct {
	EnableX bool
	EnableY bool
	EnableZ bool

	// FlipX/Y/Z negate the sign of the respective angular rate output,
	// for boards where the package is mounted rotated.
	FlipX bool
	FlipY bool
	FlipZ bool

	Scale     GyroScale
	ODR       GyroODR
	Bandwidth GyroBandwidth

	IntSel GyroIntSel
	OutSel GyroOutSel

	LowPower       bool
	HPFilter       bool
	HPCutoff       GyroHPCutoff
	LatchInterrupt bool

	// Orientation is the directional user orientation selection
	// (ORIENT_CFG_G bits 2:0).
	Orientation byte
}

// DefaultGyroSettings is all axes enabled, 952 Hz, ±245 dps, no sign
// flips, filters off.
func DefaultGyroSettings() GyroSettings {
	return GyroSettings{
		EnableX: true,
		EnableY: true,
		EnableZ: true,
		Scale:   GyroScale245DPS,
		ODR:     GyroODR952Hz,
	}
}

// CTRL_REG1_G: [ODR_G2][ODR_G1][ODR_G0][FS_G1][FS_G0][0][BW_G1][BW_G0]
func (s GyroSettings) ctrlReg1G() byte {
	return s.ODR.bits() | s.Scale.bits() | s.Bandwidth.bits()
}

// CTRL_REG2_G: [0][0][0][0][INT_SEL1][INT_SEL0][OUT_SEL1][OUT_SEL0]
func (s GyroSettings) ctrlReg2G() byte {
	return s.IntSel.bits() | s.OutSel.bits()
}

// CTRL_REG3_G: [LP_mode][HP_EN][0][0][HPCF3_G][HPCF2_G][HPCF1_G][HPCF0_G]
func (s GyroSettings) ctrlReg3G() byte {
	v := s.HPCutoff.bits()
	if s.LowPower {
		v |= 1 << 7
	}
	if s.HPFilter {
		v |= 1 << 6
	}
	return v
}

// CTRL_REG4: [0][0][Zen_G][Yen_G][Xen_G][0][LIR_XL1][4D_XL1]
func (s GyroSettings) ctrlReg4() byte {
	var v byte
	if s.EnableZ {
		v |= 1 << 5
	}
	if s.EnableY {
		v |= 1 << 4
	}
	if s.EnableX {
		v |= 1 << 3
	}
	if s.LatchInterrupt {
		v |= 1 << 1
	}
	return v
}

// ORIENT_CFG_G: [0][0][SignX_G][SignY_G][SignZ_G][Orient2][Orient1][Orient0]
func (s GyroSettings) orientCfgG() byte {
	v := s.Orientation & 0b111
	if s.FlipX {
		v |= 1 << 5
	}
	if s.FlipY {
		v |= 1 << 4
	}
	if s.FlipZ {
		v |= 1 << 3
	}
	return v
}
