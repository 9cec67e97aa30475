package ai

import (
	stdmath "math"

	"github.com/Faultbox/oni-patrol/pkg/math"
)

// Default perception cone.
const (
	DefaultSightRadius = 5.0
	DefaultSightAngle  = 1.0
)

// Sees reports whether a target at distance and angle (radians) falls in
// the default perception cone. Both bounds are inclusive.
func Sees(distance, angle float32) bool {
	return seesWithin(distance, angle, DefaultSightRadius, DefaultSightAngle)
}

func seesWithin(distance, angle, radius, halfAngle float32) bool {
	return distance <= radius && angle >= -halfAngle && angle <= halfAngle
}

// NearlyEqual reports whether b lies within tolerance of a.
func NearlyEqual(a, b math.Vec3, tolerance float32) bool {
	return math.NearlyEqual(a, b, tolerance)
}

// Perception is the per-tick view of the target from an enemy.
type Perception struct {
	Vector    math.Vec3 // target - self
	Direction math.Vec3 // normalized Vector
	Distance  float32
	Dot       float32 // facing direction . Direction
	Angle     float32 // signed angle of Direction, radians
}

// Perceive measures target from self. The angle is atan2(-dir.x, dir.z) in
// the world frame, so 0 points along +Z. With facingRelative it is
// measured from the enemy's facing instead and wrapped to [-pi, pi].
func Perceive(self, target math.Vec3, yaw float32, facingRelative bool) Perception {
	v := target.Sub(self)
	dir := v.Normalize()
	angle := float32(stdmath.Atan2(float64(-dir.X), float64(dir.Z)))
	if facingRelative {
		angle = wrapAngle(angle + yaw)
	}
	return Perception{
		Vector:    v,
		Direction: dir,
		Distance:  v.Length(),
		Dot:       math.Forward(yaw).Dot(dir),
		Angle:     angle,
	}
}

func wrapAngle(a float32) float32 {
	for a > stdmath.Pi {
		a -= 2 * stdmath.Pi
	}
	for a < -stdmath.Pi {
		a += 2 * stdmath.Pi
	}
	return a
}
