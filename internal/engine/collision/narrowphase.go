package collision

import (
	"github.com/Faultbox/oni-patrol/pkg/math"
)

// TestShapeShape reports whether a and b overlap. On a hit, pa is the
// point on a's core nearest b and pb the point on b's core nearest a, so
// the caller can push one shape out along (centre - contact).
func TestShapeShape(a, b Shape) (hit bool, pa, pb math.Vec3) {
	switch a.Kind {
	case KindSphere:
		switch b.Kind {
		case KindSphere:
			return sphereSphere(a, b)
		case KindCapsule:
			return sphereCapsule(a, b)
		case KindOBB:
			return sphereOBB(a, b)
		}
	case KindCapsule:
		switch b.Kind {
		case KindSphere:
			hit, pb, pa = sphereCapsule(b, a)
			return hit, pa, pb
		case KindCapsule:
			return capsuleCapsule(a, b)
		case KindOBB:
			return capsuleOBB(a, b)
		}
	case KindOBB:
		switch b.Kind {
		case KindSphere:
			hit, pb, pa = sphereOBB(b, a)
			return hit, pa, pb
		case KindCapsule:
			hit, pb, pa = capsuleOBB(b, a)
			return hit, pa, pb
		case KindOBB:
			return obbOBB(a, b)
		}
	}
	return false, math.Vec3{}, math.Vec3{}
}

func sphereSphere(a, b Shape) (bool, math.Vec3, math.Vec3) {
	r := a.R + b.R
	if a.Center.Sub(b.Center).LengthSq() > r*r {
		return false, math.Vec3{}, math.Vec3{}
	}
	return true, a.Center, b.Center
}

func sphereCapsule(s, c Shape) (bool, math.Vec3, math.Vec3) {
	q := closestPointSegment(c.A, c.B, s.Center)
	r := s.R + c.R
	if s.Center.Sub(q).LengthSq() > r*r {
		return false, math.Vec3{}, math.Vec3{}
	}
	return true, s.Center, q
}

func sphereOBB(s, box Shape) (bool, math.Vec3, math.Vec3) {
	q := closestPointOBB(box, s.Center)
	if s.Center.Sub(q).LengthSq() > s.R*s.R {
		return false, math.Vec3{}, math.Vec3{}
	}
	return true, s.Center, q
}

func capsuleCapsule(a, b Shape) (bool, math.Vec3, math.Vec3) {
	p1, p2 := closestPointsSegments(a.A, a.B, b.A, b.B)
	r := a.R + b.R
	if p1.Sub(p2).LengthSq() > r*r {
		return false, math.Vec3{}, math.Vec3{}
	}
	return true, p1, p2
}

// capsuleOBB alternates closest-point projections between the segment and
// the box. Two rounds settle for the axis-aligned walls scenes use.
func capsuleOBB(c, box Shape) (bool, math.Vec3, math.Vec3) {
	p := closestPointSegment(c.A, c.B, box.Center)
	q := closestPointOBB(box, p)
	for i := 0; i < 2; i++ {
		p = closestPointSegment(c.A, c.B, q)
		q = closestPointOBB(box, p)
	}
	if p.Sub(q).LengthSq() > c.R*c.R {
		return false, math.Vec3{}, math.Vec3{}
	}
	return true, p, q
}

// obbOBB is a separating axis test over the 15 candidate axes.
func obbOBB(a, b Shape) (bool, math.Vec3, math.Vec3) {
	t := b.Center.Sub(a.Center)

	axes := make([]math.Vec3, 0, 15)
	axes = append(axes, a.Axes[:]...)
	axes = append(axes, b.Axes[:]...)
	for _, ua := range a.Axes {
		for _, ub := range b.Axes {
			c := ua.Cross(ub)
			if c.LengthSq() > math.Epsilon {
				axes = append(axes, c.Normalize())
			}
		}
	}

	for _, l := range axes {
		ra := projectRadius(a, l)
		rb := projectRadius(b, l)
		if absf(t.Dot(l)) > ra+rb {
			return false, math.Vec3{}, math.Vec3{}
		}
	}
	return true, closestPointOBB(a, b.Center), closestPointOBB(b, a.Center)
}

func projectRadius(box Shape, l math.Vec3) float32 {
	var r float32
	for i, axis := range box.Axes {
		r += component(box.HalfExtents, i) * absf(axis.Dot(l))
	}
	return r
}

func closestPointSegment(a, b, p math.Vec3) math.Vec3 {
	ab := b.Sub(a)
	denom := ab.LengthSq()
	if denom <= math.Epsilon {
		return a
	}
	t := clampf(p.Sub(a).Dot(ab)/denom, 0, 1)
	return a.Add(ab.Scale(t))
}

func closestPointOBB(box Shape, p math.Vec3) math.Vec3 {
	d := p.Sub(box.Center)
	q := box.Center
	for i, axis := range box.Axes {
		h := component(box.HalfExtents, i)
		dist := clampf(d.Dot(axis), -h, h)
		q = q.Add(axis.Scale(dist))
	}
	return q
}

// closestPointsSegments returns the closest points between segments p1-q1
// and p2-q2.
func closestPointsSegments(p1, q1, p2, q2 math.Vec3) (math.Vec3, math.Vec3) {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.LengthSq()
	e := d2.LengthSq()
	f := d2.Dot(r)

	var s, t float32
	switch {
	case a <= math.Epsilon && e <= math.Epsilon:
		return p1, p2
	case a <= math.Epsilon:
		t = clampf(f/e, 0, 1)
	default:
		c := d1.Dot(r)
		if e <= math.Epsilon {
			s = clampf(-c/a, 0, 1)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom != 0 {
				s = clampf((b*f-c*e)/denom, 0, 1)
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = clampf(-c/a, 0, 1)
			} else if t > 1 {
				t = 1
				s = clampf((b-c)/a, 0, 1)
			}
		}
	}
	return p1.Add(d1.Scale(s)), p2.Add(d2.Scale(t))
}
