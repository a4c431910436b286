// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm9ds1

// AccelScale selects the accelerometer full-scale range (FS_XL).
// Note the datasheet ordering: 0b01 is ±16 g, not ±4 g.
type AccelScale byte

const (
	AccelScale2G  AccelScale = 0b00
	AccelScale16G AccelScale = 0b01
	AccelScale4G  AccelScale = 0b10
	AccelScale8G  AccelScale = 0b11
)

func (s AccelScale) bits() byte { return byte(s) << 3 }

// Sensitivity returns the linear acceleration sensitivity for the
// scale, in g per LSB (datasheet table 3).
func (s AccelScale) Sensitivity() float32 {
	switch s {
	case AccelScale4G:
		return 0.000122
	case AccelScale8G:
		return 0.000244
	case AccelScale16G:
		return 0.000732
	default:
		return 0.000061
	}
}

// AccelODR selects the accelerometer output data rate. PowerDown stops
// the accelerometer entirely.
type AccelODR byte

const (
	AccelODRPowerDown AccelODR = 0b000
	AccelODR10Hz      AccelODR = 0b001
	AccelODR50Hz      AccelODR = 0b010
	AccelODR119Hz     AccelODR = 0b011
	AccelODR238Hz     AccelODR = 0b100
	AccelODR476Hz     AccelODR = 0b101
	AccelODR952Hz     AccelODR = 0b110
)

func (o AccelODR) bits() byte { return byte(o) << 5 }

// AccelBandwidth selects the anti-aliasing filter bandwidth, effective
// when BandwidthSel is AccelBandwidthManual.
type AccelBandwidth byte

const (
	AccelBandwidth408Hz AccelBandwidth = 0b00
	AccelBandwidth211Hz AccelBandwidth = 0b01
	AccelBandwidth105Hz AccelBandwidth = 0b10
	AccelBandwidth50Hz  AccelBandwidth = 0b11
)

func (b AccelBandwidth) bits() byte { return byte(b) }

// AccelBandwidthSel chooses whether the anti-aliasing bandwidth follows
// the ODR or the manual Bandwidth field.
type AccelBandwidthSel byte

const (
	AccelBandwidthByODR  AccelBandwidthSel = 0
	AccelBandwidthManual AccelBandwidthSel = 1
)

func (b AccelBandwidthSel) bits() byte { return byte(b) << 2 }

// AccelHighRes selects the high-resolution digital filter cutoff
// (CTRL_REG7_XL), expressed as a divisor of the ODR.
type AccelHighRes byte

const (
	AccelHighResOff    AccelHighRes = 0b000
	AccelHighResODR50  AccelHighRes = 0b100
	AccelHighResODR100 AccelHighRes = 0b101
	AccelHighResODR9   AccelHighRes = 0b110
	AccelHighResODR400 AccelHighRes = 0b111
)

func (h AccelHighRes) bits() byte { return byte(h) << 5 }

// AccelSettings is the accelerometer configuration record. Construct it
// from DefaultAccelSettings and replace fields as needed; every field's
// type is a closed enumeration so there is no invalid combination to
// validate at apply time.
type AccelSettings struct {
	EnableX bool
	EnableY bool
	EnableZ bool

	ODR          AccelODR
	Scale        AccelScale
	BandwidthSel AccelBandwidthSel
	Bandwidth    AccelBandwidth
	HighRes      AccelHighRes
}

// DefaultAccelSettings is all axes enabled, 119 Hz, ±2 g, bandwidth by
// ODR, high-resolution filter off.
func DefaultAccelSettings() AccelSettings {
	return AccelSettings{
		EnableX:   true,
		EnableY:   true,
		EnableZ:   true,
		ODR:       AccelODR119Hz,
		Scale:     AccelScale2G,
		Bandwidth: AccelBandwidth408Hz,
	}
}

// CTRL_REG5_XL: [DEC_1][DEC_0][Zen_XL][Yen_XL][Xen_XL][0][0][0]
func (s AccelSettings) ctrlReg5XL() byte {
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
	return v
}

// CTRL_REG6_XL: [ODR_XL2][ODR_XL1][ODR_XL0][FS1_XL][FS0_XL][BW_SCAL_ODR][BW_XL1][BW_XL0]
func (s AccelSettings) ctrlReg6XL() byte {
	return s.ODR.bits() | s.Scale.bits() | s.BandwidthSel.bits() | s.Bandwidth.bits()
}

// CTRL_REG7_XL: [HR][DCF1][DCF0][0][0][FDS][0][HPIS1]
func (s AccelSettings) ctrlReg7XL() byte {
	return s.HighRes.bits()
}
