package imu

// IMURaw represents a single raw IMU+mag sample in LSB counts.
type IMURaw struct {
	Source string `json:"source"` // bus the sample came from, "spi" or "i2c"

	Ax int16 `json:"ax"` // accel
	Ay int16 `json:"ay"`
	Az int16 `json:"az"`

	Gx int16 `json:"gx"` // gyro
	Gy int16 `json:"gy"`
	Gz int16 `json:"gz"`

	Mx int16 `json:"mx"` // magnetometer
	My int16 `json:"my"`
	Mz int16 `json:"mz"`

	Temp int16 `json:"temp"` // die temperature
}

type IMURawSource interface {
	NextRaw() (IMURaw, error)
}
