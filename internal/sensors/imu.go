package sensors

import (
	imu_raw "github.com/relabs-tech/lsm9ds1_computer/internal/imu"
)

// ReadIMURaw reads one raw sample from the LSM9DS1.
// Delegates to the IMU manager for serialized sensor access.
func ReadIMURaw() (imu_raw.IMURaw, error) {
	return GetIMUManager().ReadRaw()
}

// ReadIMUSample reads one converted sample from the LSM9DS1.
// Delegates to the IMU manager for serialized sensor access.
func ReadIMUSample() (imu_raw.IMUSample, error) {
	return GetIMUManager().ReadSample()
}
