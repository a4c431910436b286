// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm9ds1

// Accel/gyro (AG) core register map. Addresses per the LSM9DS1 datasheet,
// table 21.
const (
	regWhoAmI     = 0x0F // device identification, reads 0x68
	regCtrlReg1G  = 0x10 // gyro ODR, full scale, bandwidth
	regCtrlReg2G  = 0x11 // gyro INT/OUT selection
	regCtrlReg3G  = 0x12 // gyro low-power, high-pass filter
	regOrientCfgG = 0x13 // gyro sign and orientation
	regOutTempL   = 0x15 // temperature output, low byte
	regOutTempH   = 0x16
	regStatusReg  = 0x27 // data-ready flags for accel/gyro/temp
	regOutXLG     = 0x18 // gyro output, X low byte (6-byte burst)
	regCtrlReg4   = 0x1E // gyro axis enables, latched interrupt
	regCtrlReg5XL = 0x1F // accel axis enables, decimation
	regCtrlReg6XL = 0x20 // accel ODR, full scale, bandwidth
	regCtrlReg7XL = 0x21 // accel high-resolution filter
	regCtrlReg8   = 0x22 // shared control: BDU, IF_ADD_INC, endianness
	regOutXLXL    = 0x28 // accel output, X low byte (6-byte burst)
)

// Magnetometer (M) register map.
const (
	regWhoAmIM    = 0x0F // device identification, reads 0x3D
	regCtrlReg1M  = 0x20 // temp compensation, X/Y performance, ODR
	regCtrlReg2M  = 0x21 // full scale
	regCtrlReg3M  = 0x22 // low power, SPI mode, operating mode
	regCtrlReg4M  = 0x23 // Z performance, endianness
	regCtrlReg5M  = 0x24 // block data update
	regStatusRegM = 0x27 // data-ready flags
	regOutXLM     = 0x28 // mag output, X low byte (6-byte burst)
)

// CTRL_REG8: IF_ADD_INC enables register address auto-increment on
// multi-byte accesses. The chip defaults to this but some bootloaders
// leave it cleared, so it is rewritten on every configure.
const ctrlReg8IfAddInc = 0x04

// Identification values returned by the WHO_AM_I registers.
const (
	whoAmIAG  = 0x68
	whoAmIMag = 0x3D
)

// Default and alternate addresses for the addressed-bus (I2C) wiring.
// Which one a board uses depends on the SDO_A/G and SDO_M pin straps.
const (
	DefaultAddrAG  = 0x6B
	AltAddrAG      = 0x6A
	DefaultAddrMag = 0x1E
	AltAddrMag     = 0x1C
)
