package orientation

import (
	"fmt"

	"github.com/relabs-tech/lsm9ds1_computer/internal/sensors"
)

type imuSource struct{}

// NewIMUSource returns an orientation.Source backed by the LSM9DS1,
// with roll/pitch from the accelerometer and yaw from the
// tilt-compensated magnetometer heading.
func NewIMUSource() (Source, error) {
	// Force the bring-up now so a missing sensor fails fast instead of
	// on the first Next call.
	if _, err := sensors.ReadIMUSample(); err != nil {
		return nil, fmt.Errorf("IMU source: %w", err)
	}
	return &imuSource{}, nil
}

// Next reads one sample and computes the pose.
func (s *imuSource) Next() (Pose, error) {
	sample, err := sensors.ReadIMUSample()
	if err != nil {
		return Pose{}, fmt.Errorf("IMU pose: %w", err)
	}
	return ComputePose(sample.Ax, sample.Ay, sample.Az, sample.Mx, sample.My, sample.Mz), nil
}
