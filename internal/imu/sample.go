package imu

// IMUSample is a converted sample in physical units.
type IMUSample struct {
	Source string `json:"source"`

	Ax float64 `json:"ax"` // g
	Ay float64 `json:"ay"`
	Az float64 `json:"az"`

	Gx float64 `json:"gx"` // degrees per second
	Gy float64 `json:"gy"`
	Gz float64 `json:"gz"`

	Mx float64 `json:"mx"` // gauss
	My float64 `json:"my"`
	Mz float64 `json:"mz"`

	TempC float64 `json:"temp_c"` // degrees Celsius
}
