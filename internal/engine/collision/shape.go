// Package collision provides the collider shapes actors carry and the
// narrow-phase test between them.
package collision

import (
	"fmt"

	"github.com/Faultbox/oni-patrol/pkg/math"
)

// Kind identifies which shape variant a Shape holds.
type Kind int

const (
	KindNone Kind = iota
	KindSphere
	KindCapsule
	KindOBB
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSphere:
		return "sphere"
	case KindCapsule:
		return "capsule"
	case KindOBB:
		return "obb"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Shape is a collider. Only the fields of its Kind are meaningful.
// The zero Shape has KindNone and never collides.
type Shape struct {
	Kind Kind

	// Sphere and OBB centre.
	Center math.Vec3

	// Capsule segment endpoints.
	A, B math.Vec3

	// Sphere or capsule radius.
	R float32

	// OBB local axes (unit length) and half extents along them.
	Axes        [3]math.Vec3
	HalfExtents math.Vec3
}

// NewSphere creates a sphere collider.
func NewSphere(center math.Vec3, r float32) Shape {
	return Shape{Kind: KindSphere, Center: center, R: r}
}

// NewCapsule creates a capsule around the segment a-b.
func NewCapsule(a, b math.Vec3, r float32) Shape {
	return Shape{Kind: KindCapsule, A: a, B: b, R: r}
}

// NewOBB creates an oriented box.
func NewOBB(center, axisX, axisY, axisZ, halfExtents math.Vec3) Shape {
	return Shape{
		Kind:        KindOBB,
		Center:      center,
		Axes:        [3]math.Vec3{axisX.Normalize(), axisY.Normalize(), axisZ.Normalize()},
		HalfExtents: halfExtents,
	}
}

// IsNone reports whether the shape is empty.
func (s Shape) IsNone() bool {
	return s.Kind == KindNone
}

// Radius returns the sphere or capsule radius. Boxes and empty shapes
// report zero.
func (s Shape) Radius() float32 {
	switch s.Kind {
	case KindSphere, KindCapsule:
		return s.R
	default:
		return 0
	}
}

// Centroid returns the geometric centre of the shape.
func (s Shape) Centroid() math.Vec3 {
	switch s.Kind {
	case KindCapsule:
		return s.A.Add(s.B).Scale(0.5)
	default:
		return s.Center
	}
}

// Nearest returns the core point of the shape closest to p: a sphere's
// centre, the closest point on a capsule's segment, or the closest point
// inside a box.
func (s Shape) Nearest(p math.Vec3) math.Vec3 {
	switch s.Kind {
	case KindSphere:
		return s.Center
	case KindCapsule:
		return closestPointSegment(s.A, s.B, p)
	case KindOBB:
		return closestPointOBB(s, p)
	default:
		return s.Center
	}
}

// Transform places a local-space shape at pos rotated by yaw around Y.
func (s Shape) Transform(pos math.Vec3, yaw float32) Shape {
	if s.Kind == KindNone {
		return s
	}
	m := math.Translate(pos.X, pos.Y, pos.Z).Mul(math.RotateY(yaw))

	out := s
	switch s.Kind {
	case KindSphere:
		out.Center = m.TransformPoint(s.Center)
	case KindCapsule:
		out.A = m.TransformPoint(s.A)
		out.B = m.TransformPoint(s.B)
	case KindOBB:
		out.Center = m.TransformPoint(s.Center)
		for i := range s.Axes {
			out.Axes[i] = m.TransformDirection(s.Axes[i]).Normalize()
		}
	}
	return out
}

// Inflate grows the shape by d on every side.
func (s Shape) Inflate(d float32) Shape {
	out := s
	switch s.Kind {
	case KindSphere, KindCapsule:
		out.R += d
	case KindOBB:
		out.HalfExtents = s.HalfExtents.Add(math.Vec3{X: d, Y: d, Z: d})
	}
	return out
}

// FootprintXZ returns the half extents of the shape's axis-aligned
// bounds projected on the ground plane.
func (s Shape) FootprintXZ() math.Vec2 {
	switch s.Kind {
	case KindSphere:
		return math.Vec2{X: s.R, Y: s.R}
	case KindCapsule:
		d := s.B.Sub(s.A).Scale(0.5)
		return math.Vec2{X: absf(d.X) + s.R, Y: absf(d.Z) + s.R}
	case KindOBB:
		var ext math.Vec2
		for i, axis := range s.Axes {
			h := component(s.HalfExtents, i)
			ext.X += absf(axis.X) * h
			ext.Y += absf(axis.Z) * h
		}
		return ext
	default:
		return math.Vec2{}
	}
}

func component(v math.Vec3, i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
