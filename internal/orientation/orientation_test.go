package orientation

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestPoseFlatLevel(t *testing.T) {
	// Gravity straight down the Z axis: level attitude.
	p := ComputePoseFromAccel(0, 0, 1)
	if !almostEqual(p.Roll, 0) || !almostEqual(p.Pitch, 0) {
		t.Errorf("pose = %+v, want level", p)
	}
}

func TestPoseRoll90(t *testing.T) {
	// Gravity along +Y: rolled 90 degrees.
	p := ComputePoseFromAccel(0, 1, 0)
	if !almostEqual(p.Roll, 90) {
		t.Errorf("roll = %v, want 90", p.Roll)
	}
	if !almostEqual(p.Pitch, 0) {
		t.Errorf("pitch = %v, want 0", p.Pitch)
	}
}

func TestPosePitch90(t *testing.T) {
	// Gravity along -X: pitched up 90 degrees.
	p := ComputePoseFromAccel(-1, 0, 0)
	if !almostEqual(p.Pitch, 90) {
		t.Errorf("pitch = %v, want 90", p.Pitch)
	}
}

func TestPoseMagnitudeIndependent(t *testing.T) {
	// Tilt only depends on direction ratios, not units.
	a := ComputePoseFromAccel(0.1, 0.2, 0.96)
	b := ComputePoseFromAccel(100, 200, 960)
	if !almostEqual(a.Roll, b.Roll) || !almostEqual(a.Pitch, b.Pitch) {
		t.Errorf("scaling changed the pose: %+v vs %+v", a, b)
	}
}

func TestYawNorthLevel(t *testing.T) {
	// Level, field pointing along +X: heading 0.
	p := ComputePose(0, 0, 1, 0.3, 0, 0)
	if !almostEqual(p.Yaw, 0) {
		t.Errorf("yaw = %v, want 0", p.Yaw)
	}
}

func TestYawEastLevel(t *testing.T) {
	// Level, field along -Y: heading east (90 degrees).
	p := ComputePose(0, 0, 1, 0, -0.3, 0)
	if !almostEqual(p.Yaw, 90) {
		t.Errorf("yaw = %v, want 90", p.Yaw)
	}
}

func TestYawRange(t *testing.T) {
	// Any heading must normalize into [0, 360).
	for angle := 0.0; angle < 360; angle += 30 {
		rad := angle * math.Pi / 180
		p := ComputePose(0, 0, 1, math.Cos(rad), -math.Sin(rad), 0)
		if p.Yaw < 0 || p.Yaw >= 360 {
			t.Errorf("yaw %v out of range for heading %v", p.Yaw, angle)
		}
		if !almostEqual(math.Mod(p.Yaw+360, 360), angle) {
			t.Errorf("yaw = %v, want %v", p.Yaw, angle)
		}
	}
}

func TestMockSourceProgresses(t *testing.T) {
	src := NewMockSource()
	p, err := src.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if math.Abs(p.Roll) > 20 || math.Abs(p.Pitch) > 15 {
		t.Errorf("mock pose out of envelope: %+v", p)
	}
}
