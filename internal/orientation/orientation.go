package orientation

import (
	"math"
)

// Pose is the canonical representation of orientation for your app.
type Pose struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// Source is anything that can provide poses over time.
// Later you'll have: mock source, IMU source, maybe replay source from file, etc.
type Source interface {
	Next() (Pose, error)
}

// ComputePoseFromAccel computes roll and pitch from accelerometer data only.
// Yaw is set to 0 (no magnetometer data available).
//
// Uses simple tilt formulas:
//
//	roll  = atan2(ay, az)
//	pitch = atan2(-ax, sqrt(ay² + az²))
func ComputePoseFromAccel(ax, ay, az float64) Pose {
	rollRad := math.Atan2(ay, az)
	pitchRad := math.Atan2(-ax, math.Sqrt(ay*ay+az*az))

	rollDeg := rollRad * 180.0 / math.Pi
	pitchDeg := pitchRad * 180.0 / math.Pi

	return Pose{
		Roll:  rollDeg,
		Pitch: pitchDeg,
		Yaw:   0,
	}
}

// ComputePose computes roll and pitch from the accelerometer and a
// tilt-compensated yaw (magnetic heading) from the magnetometer.
// Yaw is in [0, 360) degrees, 0 at magnetic north.
func ComputePose(ax, ay, az, mx, my, mz float64) Pose {
	rollRad := math.Atan2(ay, az)
	pitchRad := math.Atan2(-ax, math.Sqrt(ay*ay+az*az))

	// Rotate the magnetic field vector back to the horizontal plane
	// before taking the heading.
	sinR, cosR := math.Sin(rollRad), math.Cos(rollRad)
	sinP, cosP := math.Sin(pitchRad), math.Cos(pitchRad)

	hx := mx*cosP + my*sinR*sinP + mz*cosR*sinP
	hy := my*cosR - mz*sinR

	yawRad := math.Atan2(-hy, hx)
	yawDeg := yawRad * 180.0 / math.Pi
	if yawDeg < 0 {
		yawDeg += 360
	}

	return Pose{
		Roll:  rollRad * 180.0 / math.Pi,
		Pitch: pitchRad * 180.0 / math.Pi,
		Yaw:   yawDeg,
	}
}

// AccelToPose computes roll and pitch from raw accelerometer values (in any unit).
// This is a convenience alias for ComputePoseFromAccel.
func AccelToPose(ax, ay, az float64) Pose {
	return ComputePoseFromAccel(ax, ay, az)
}
