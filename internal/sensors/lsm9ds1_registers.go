// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

// RegisterInfo describes one register for the debug tooling: address,
// access type and bit field breakdown.
type RegisterInfo struct {
	Address     string     `json:"address"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Access      string     `json:"access"` // "R", "W", "RW"
	Default     string     `json:"default,omitempty"`
	BitFields   []BitField `json:"bit_fields,omitempty"`
}

// BitField describes one field inside a register.
type BitField struct {
	Bits        string `json:"bits"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Values      string `json:"values,omitempty"`
}

// getAGRegisterMap returns metadata for the LSM9DS1 accel/gyro registers.
// This provides register names, descriptions, access types, and bit field definitions.
func getAGRegisterMap() []RegisterInfo {
	return []RegisterInfo{
		// Device Identification
		{Address: "0x0F", Name: "WHO_AM_I", Description: "Device ID (should be 0x68)", Access: "R", Default: "0x68"},

		// Gyroscope Configuration
		{Address: "0x10", Name: "CTRL_REG1_G", Description: "Gyroscope Control 1", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7:5", Name: "ODR_G", Description: "Gyro Output Data Rate", Values: "0=PowerDown, 1=14.9Hz, 2=59.5Hz, 3=119Hz, 4=238Hz, 5=476Hz, 6=952Hz"},
				{Bits: "4:3", Name: "FS_G", Description: "Gyro Full Scale", Values: "0=±245°/s, 1=±500°/s, 3=±2000°/s"},
				{Bits: "1:0", Name: "BW_G", Description: "Gyro bandwidth selection", Values: "0-3, cutoff depends on ODR"},
			}},
		{Address: "0x11", Name: "CTRL_REG2_G", Description: "Gyroscope Control 2", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "3:2", Name: "INT_SEL", Description: "Interrupt generator source", Values: "0=LPF1, 1=HPF, 2=LPF2"},
				{Bits: "1:0", Name: "OUT_SEL", Description: "Output register source", Values: "0=LPF1, 1=HPF, 2=LPF2"},
			}},
		{Address: "0x12", Name: "CTRL_REG3_G", Description: "Gyroscope Control 3", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "LP_mode", Description: "Low power mode", Values: "0=Disabled, 1=Enabled"},
				{Bits: "6", Name: "HP_EN", Description: "High-pass filter", Values: "0=Disabled, 1=Enabled"},
				{Bits: "3:0", Name: "HPCF_G", Description: "High-pass cutoff", Values: "0-9, frequency depends on ODR"},
			}},
		{Address: "0x13", Name: "ORIENT_CFG_G", Description: "Gyroscope Sign and Orientation", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "5", Name: "SignX_G", Description: "X axis angular rate sign", Values: "0=Positive, 1=Negative"},
				{Bits: "4", Name: "SignY_G", Description: "Y axis angular rate sign", Values: "0=Positive, 1=Negative"},
				{Bits: "3", Name: "SignZ_G", Description: "Z axis angular rate sign", Values: "0=Positive, 1=Negative"},
				{Bits: "2:0", Name: "Orient", Description: "Directional user orientation", Values: "0-7"},
			}},

		// Temperature (Read-Only)
		{Address: "0x15", Name: "OUT_TEMP_L", Description: "Temperature Low Byte", Access: "R"},
		{Address: "0x16", Name: "OUT_TEMP_H", Description: "Temperature High Byte", Access: "R"},

		// Gyroscope Data (Read-Only)
		{Address: "0x18", Name: "OUT_X_L_G", Description: "Gyroscope X-Axis Low Byte", Access: "R"},
		{Address: "0x19", Name: "OUT_X_H_G", Description: "Gyroscope X-Axis High Byte", Access: "R"},
		{Address: "0x1A", Name: "OUT_Y_L_G", Description: "Gyroscope Y-Axis Low Byte", Access: "R"},
		{Address: "0x1B", Name: "OUT_Y_H_G", Description: "Gyroscope Y-Axis High Byte", Access: "R"},
		{Address: "0x1C", Name: "OUT_Z_L_G", Description: "Gyroscope Z-Axis Low Byte", Access: "R"},
		{Address: "0x1D", Name: "OUT_Z_H_G", Description: "Gyroscope Z-Axis High Byte", Access: "R"},

		// Shared / Accelerometer Configuration
		{Address: "0x1E", Name: "CTRL_REG4", Description: "Gyroscope Axis Enables", Access: "RW", Default: "0x38",
			BitFields: []BitField{
				{Bits: "5", Name: "Zen_G", Description: "Gyro Z axis", Values: "0=Disabled, 1=Enabled"},
				{Bits: "4", Name: "Yen_G", Description: "Gyro Y axis", Values: "0=Disabled, 1=Enabled"},
				{Bits: "3", Name: "Xen_G", Description: "Gyro X axis", Values: "0=Disabled, 1=Enabled"},
				{Bits: "1", Name: "LIR_XL1", Description: "Latched interrupt", Values: "0=Not latched, 1=Latched"},
			}},
		{Address: "0x1F", Name: "CTRL_REG5_XL", Description: "Accelerometer Axis Enables", Access: "RW", Default: "0x38",
			BitFields: []BitField{
				{Bits: "7:6", Name: "DEC", Description: "Output decimation", Values: "0=None, 1=2 samples, 2=4 samples, 3=8 samples"},
				{Bits: "5", Name: "Zen_XL", Description: "Accel Z axis", Values: "0=Disabled, 1=Enabled"},
				{Bits: "4", Name: "Yen_XL", Description: "Accel Y axis", Values: "0=Disabled, 1=Enabled"},
				{Bits: "3", Name: "Xen_XL", Description: "Accel X axis", Values: "0=Disabled, 1=Enabled"},
			}},
		{Address: "0x20", Name: "CTRL_REG6_XL", Description: "Accelerometer Control", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7:5", Name: "ODR_XL", Description: "Accel Output Data Rate", Values: "0=PowerDown, 1=10Hz, 2=50Hz, 3=119Hz, 4=238Hz, 5=476Hz, 6=952Hz"},
				{Bits: "4:3", Name: "FS_XL", Description: "Accel Full Scale", Values: "0=±2g, 1=±16g, 2=±4g, 3=±8g"},
				{Bits: "2", Name: "BW_SCAL_ODR", Description: "Bandwidth selection", Values: "0=By ODR, 1=By BW_XL"},
				{Bits: "1:0", Name: "BW_XL", Description: "Anti-aliasing bandwidth", Values: "0=408Hz, 1=211Hz, 2=105Hz, 3=50Hz"},
			}},
		{Address: "0x21", Name: "CTRL_REG7_XL", Description: "Accelerometer Control 2", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "HR", Description: "High resolution mode", Values: "0=Disabled, 1=Enabled"},
				{Bits: "6:5", Name: "DCF", Description: "Digital filter cutoff", Values: "0=ODR/50, 1=ODR/100, 2=ODR/9, 3=ODR/400"},
				{Bits: "2", Name: "FDS", Description: "Filtered data selection", Values: "0=Bypassed, 1=Filtered"},
				{Bits: "0", Name: "HPIS1", Description: "High-pass on interrupt", Values: "0=Disabled, 1=Enabled"},
			}},
		{Address: "0x22", Name: "CTRL_REG8", Description: "Shared Control", Access: "RW", Default: "0x04",
			BitFields: []BitField{
				{Bits: "7", Name: "BOOT", Description: "Reboot memory content", Values: "1=Reboot"},
				{Bits: "6", Name: "BDU", Description: "Block data update", Values: "0=Continuous, 1=Blocked until read"},
				{Bits: "5", Name: "H_LACTIVE", Description: "Interrupt active level", Values: "0=High, 1=Low"},
				{Bits: "4", Name: "PP_OD", Description: "Interrupt pin mode", Values: "0=Push-pull, 1=Open drain"},
				{Bits: "3", Name: "SIM", Description: "SPI mode", Values: "0=4-wire, 1=3-wire"},
				{Bits: "2", Name: "IF_ADD_INC", Description: "Register address auto-increment", Values: "0=Disabled, 1=Enabled"},
				{Bits: "1", Name: "BLE", Description: "Data endianness", Values: "0=LSB first, 1=MSB first"},
				{Bits: "0", Name: "SW_RESET", Description: "Software reset", Values: "1=Reset"},
			}},

		// Status
		{Address: "0x27", Name: "STATUS_REG", Description: "Data Ready Status", Access: "R",
			BitFields: []BitField{
				{Bits: "2", Name: "TDA", Description: "Temperature data available", Values: ""},
				{Bits: "1", Name: "GDA", Description: "Gyro data available", Values: ""},
				{Bits: "0", Name: "XLDA", Description: "Accel data available", Values: ""},
			}},

		// Accelerometer Data (Read-Only)
		{Address: "0x28", Name: "OUT_X_L_XL", Description: "Accelerometer X-Axis Low Byte", Access: "R"},
		{Address: "0x29", Name: "OUT_X_H_XL", Description: "Accelerometer X-Axis High Byte", Access: "R"},
		{Address: "0x2A", Name: "OUT_Y_L_XL", Description: "Accelerometer Y-Axis Low Byte", Access: "R"},
		{Address: "0x2B", Name: "OUT_Y_H_XL", Description: "Accelerometer Y-Axis High Byte", Access: "R"},
		{Address: "0x2C", Name: "OUT_Z_L_XL", Description: "Accelerometer Z-Axis Low Byte", Access: "R"},
		{Address: "0x2D", Name: "OUT_Z_H_XL", Description: "Accelerometer Z-Axis High Byte", Access: "R"},
	}
}

// getMagRegisterMap returns metadata for the LSM9DS1 magnetometer
// registers. The magnetometer is a separate sub-device with its own
// chip select (SPI) or bus address (I2C).
func getMagRegisterMap() []RegisterInfo {
	return []RegisterInfo{
		// Device Identification
		{Address: "0x0F", Name: "WHO_AM_I_M", Description: "Device ID (should be 0x3D)", Access: "R", Default: "0x3D"},

		// Control Registers
		{Address: "0x20", Name: "CTRL_REG1_M", Description: "Magnetometer Control 1", Access: "RW", Default: "0x10",
			BitFields: []BitField{
				{Bits: "7", Name: "TEMP_COMP", Description: "Temperature compensation", Values: "0=Disabled, 1=Enabled"},
				{Bits: "6:5", Name: "OM", Description: "X/Y operative mode", Values: "0=Low, 1=Medium, 2=High, 3=UltraHigh"},
				{Bits: "4:2", Name: "DO", Description: "Output Data Rate", Values: "0=0.625Hz, 1=1.25Hz, 2=2.5Hz, 3=5Hz, 4=10Hz, 5=20Hz, 6=40Hz, 7=80Hz"},
				{Bits: "0", Name: "ST", Description: "Self-test", Values: "0=Disabled, 1=Enabled"},
			}},
		{Address: "0x21", Name: "CTRL_REG2_M", Description: "Magnetometer Control 2", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "6:5", Name: "FS", Description: "Full Scale", Values: "0=±4gauss, 1=±8gauss, 2=±12gauss, 3=±16gauss"},
				{Bits: "3", Name: "REBOOT", Description: "Reboot memory content", Values: "1=Reboot"},
				{Bits: "2", Name: "SOFT_RST", Description: "Soft reset", Values: "1=Reset"},
			}},
		{Address: "0x22", Name: "CTRL_REG3_M", Description: "Magnetometer Control 3", Access: "RW", Default: "0x03",
			BitFields: []BitField{
				{Bits: "7", Name: "I2C_DISABLE", Description: "Disable I2C interface", Values: "0=Enabled, 1=Disabled"},
				{Bits: "5", Name: "LP", Description: "Low power mode", Values: "0=Disabled, 1=Enabled"},
				{Bits: "2", Name: "SIM", Description: "SPI read enable", Values: "0=Write only, 1=Read and write"},
				{Bits: "1:0", Name: "MD", Description: "Operating mode", Values: "0=Continuous, 1=Single, 2/3=PowerDown"},
			}},
		{Address: "0x23", Name: "CTRL_REG4_M", Description: "Magnetometer Control 4", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "3:2", Name: "OMZ", Description: "Z operative mode", Values: "0=Low, 1=Medium, 2=High, 3=UltraHigh"},
				{Bits: "1", Name: "BLE", Description: "Data endianness", Values: "0=LSB first, 1=MSB first"},
			}},
		{Address: "0x24", Name: "CTRL_REG5_M", Description: "Magnetometer Control 5", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "6", Name: "BDU", Description: "Block data update", Values: "0=Continuous, 1=Blocked until read"},
			}},

		// Status
		{Address: "0x27", Name: "STATUS_REG_M", Description: "Data Ready Status", Access: "R",
			BitFields: []BitField{
				{Bits: "7", Name: "ZYXOR", Description: "X/Y/Z data overrun", Values: ""},
				{Bits: "3", Name: "ZYXDA", Description: "X/Y/Z data available", Values: ""},
				{Bits: "0", Name: "XDA", Description: "X data available", Values: ""},
			}},

		// Magnetometer Data (Read-Only)
		{Address: "0x28", Name: "OUT_X_L_M", Description: "Magnetometer X-Axis Low Byte", Access: "R"},
		{Address: "0x29", Name: "OUT_X_H_M", Description: "Magnetometer X-Axis High Byte", Access: "R"},
		{Address: "0x2A", Name: "OUT_Y_L_M", Description: "Magnetometer Y-Axis Low Byte", Access: "R"},
		{Address: "0x2B", Name: "OUT_Y_H_M", Description: "Magnetometer Y-Axis High Byte", Access: "R"},
		{Address: "0x2C", Name: "OUT_Z_L_M", Description: "Magnetometer Z-Axis Low Byte", Access: "R"},
		{Address: "0x2D", Name: "OUT_Z_H_M", Description: "Magnetometer Z-Axis High Byte", Access: "R"},
	}
}
