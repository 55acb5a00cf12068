// Package spatialmath defines the triangle geometry used to decide which triangles of a set
// intersect one another, including triangles that collapse to a segment or a single point.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Epsilon is the absolute tolerance used for every equality, sign and containment test.
const Epsilon = 1e-7

// NewVector returns the displacement from a to b.
func NewVector(a, b r3.Vector) r3.Vector {
	return b.Sub(a)
}

// Cross returns the cross product u x v.
func Cross(u, v r3.Vector) r3.Vector {
	return u.Cross(v)
}

// Dot returns the scalar product of u and v.
func Dot(u, v r3.Vector) float64 {
	return u.Dot(v)
}

// IsZero reports whether every component of v is smaller than Epsilon in magnitude.
func IsZero(v r3.Vector) bool {
	return math.Abs(v.X) < Epsilon && math.Abs(v.Y) < Epsilon && math.Abs(v.Z) < Epsilon
}

// PointsAlmostEqual reports whether each coordinate of a and b differs by less than Epsilon.
func PointsAlmostEqual(a, b r3.Vector) bool {
	return IsZero(a.Sub(b))
}

// PointOnSegment reports whether p lies on the closed segment [s1, s2]. The point must be
// collinear with the segment and inside its bounding range, both within Epsilon.
func PointOnSegment(s1, s2, p r3.Vector) bool {
	if !IsZero(NewVector(s1, s2).Cross(NewVector(s1, p))) {
		return false
	}
	return math.Min(s1.X, s2.X)-Epsilon <= p.X && math.Max(s1.X, s2.X)+Epsilon >= p.X &&
		math.Min(s1.Y, s2.Y)-Epsilon <= p.Y && math.Max(s1.Y, s2.Y)+Epsilon >= p.Y &&
		math.Min(s1.Z, s2.Z)-Epsilon <= p.Z && math.Max(s1.Z, s2.Z)+Epsilon >= p.Z
}

// SegmentsIntersect reports whether the closed segments [p1, p2] and [q1, q2] share a point.
// Parallel segments intersect iff an endpoint of one lies on the other. Otherwise the closest
// points of the two supporting lines are computed and must coincide, with both line parameters
// inside [-Epsilon, 1+Epsilon].
func SegmentsIntersect(p1, p2, q1, q2 r3.Vector) bool {
	u := NewVector(p1, p2)
	v := NewVector(q1, q2)
	w := NewVector(p1, q1)

	if IsZero(u.Cross(v)) {
		return PointOnSegment(p1, p2, q1) ||
			PointOnSegment(p1, p2, q2) ||
			PointOnSegment(q1, q2, p1) ||
			PointOnSegment(q1, q2, p2)
	}

	uu := u.Dot(u)
	uv := u.Dot(v)
	vv := v.Dot(v)
	uw := u.Dot(w)
	vw := v.Dot(w)

	denom := uu*vv - uv*uv
	s := (vv*uw - uv*vw) / denom
	t := (uv*uw - uu*vw) / denom

	onFirst := p1.Add(p2.Sub(p1).Mul(s))
	onSecond := q1.Add(q2.Sub(q1).Mul(t))

	return IsZero(NewVector(onFirst, onSecond)) &&
		s >= -Epsilon && s <= 1+Epsilon &&
		t >= -Epsilon && t <= 1+Epsilon
}

// segmentEnds reduces three collinear points to the two that bound them.
func segmentEnds(p0, p1, p2 r3.Vector) (r3.Vector, r3.Vector) {
	switch {
	case PointOnSegment(p0, p1, p2):
		return p0, p1
	case PointOnSegment(p0, p2, p1):
		return p0, p2
	default:
		return p1, p2
	}
}
