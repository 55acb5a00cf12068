package spatialmath

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r3"
)

// axis selects the coordinate used to parametrize the line shared by two triangle planes.
type axis uint8

const (
	axisX = axis(iota)
	axisY
	axisZ
)

func (a axis) component(v r3.Vector) float64 {
	switch a {
	case axisX:
		return v.X
	case axisY:
		return v.Y
	default:
		return v.Z
	}
}

// dominantAxis picks the axis along which dir has the largest magnitude, preferring x, then y,
// then z when magnitudes are within Epsilon of each other.
func dominantAxis(dir r3.Vector) axis {
	dx, dy, dz := math.Abs(dir.X), math.Abs(dir.Y), math.Abs(dir.Z)
	switch {
	case dy-dx < Epsilon && dz-dx < Epsilon:
		return axisX
	case dx-dy < Epsilon && dz-dy < Epsilon:
		return axisY
	default:
		return axisZ
	}
}

// Intersects reports whether two triangles share at least one point. Every combination of
// proper, segment and point triangles is handled. The result does not depend on argument order.
func Intersects(t1, t2 *Triangle) bool {
	// one triangle lies strictly inside a half space of the other's plane
	if separatedByPlane(t2, t1) || separatedByPlane(t1, t2) {
		return false
	}

	if !t1.Degenerate() && !t2.Degenerate() {
		return intersectsNonDegenerate(t1, t2)
	}

	if t1.IsLine() && t2.IsLine() {
		p1, p2 := segmentEnds(t1.p0, t1.p1, t1.p2)
		q1, q2 := segmentEnds(t2.p0, t2.p1, t2.p2)
		return SegmentsIntersect(p1, p2, q1, q2)
	}

	if t1.IsPoint() && t2.IsPoint() {
		return PointsAlmostEqual(t1.p0, t2.p0)
	}

	return intersectsMixed(t1, t2) || intersectsMixed(t2, t1)
}

// separatedByPlane reports whether every vertex of t lies more than Epsilon away from the plane of
// plane, all on the same side. A degenerate plane triangle never separates anything.
func separatedByPlane(plane, t *Triangle) bool {
	if plane.Degenerate() {
		return false
	}
	d0 := plane.DistanceToPlane(t.p0)
	d1 := plane.DistanceToPlane(t.p1)
	d2 := plane.DistanceToPlane(t.p2)

	return (d0 > Epsilon && d1 > Epsilon && d2 > Epsilon) ||
		(d0 < -Epsilon && d1 < -Epsilon && d2 < -Epsilon)
}

// intersectsMixed handles pairs with different degeneracy kinds, looking only at t as the more
// complete shape. Callers try both orders.
func intersectsMixed(t, other *Triangle) bool {
	switch {
	case t.IsLine() && other.IsPoint():
		s1, s2 := segmentEnds(t.p0, t.p1, t.p2)
		return PointOnSegment(s1, s2, other.p0)
	case !t.Degenerate() && other.IsLine():
		s1, s2 := segmentEnds(other.p0, other.p1, other.p2)
		return t.intersectsSegment(s1, s2)
	case !t.Degenerate() && other.IsPoint():
		// the separating plane test already put the point in t's plane
		return t.ContainsCoplanarPoint(other.p0)
	}
	return false
}

// intersectsSegment reports whether the segment [s1, s2] touches the triangle. The segment is
// known to cross or lie in the triangle's plane.
func (t *Triangle) intersectsSegment(s1, s2 r3.Vector) bool {
	dir := NewVector(s1, s2)
	along := t.normal.Dot(dir)

	if along == 0 {
		return SegmentsIntersect(s1, s2, t.p0, t.p1) ||
			SegmentsIntersect(s1, s2, t.p1, t.p2) ||
			SegmentsIntersect(s1, s2, t.p2, t.p0) ||
			t.ContainsCoplanarPoint(s1) ||
			t.ContainsCoplanarPoint(s2)
	}

	k := -t.normal.Dot(NewVector(t.p0, s1)) / along
	return t.ContainsCoplanarPoint(s1.Add(dir.Mul(k)))
}

// intersectsNonDegenerate tests two proper triangles that are not separated by either plane.
func intersectsNonDegenerate(t1, t2 *Triangle) bool {
	dir := t1.normal.Cross(t2.normal)

	if IsZero(dir) {
		// coplanar
		return t1.intersectsSegment(t2.p0, t2.p1) ||
			t1.intersectsSegment(t2.p0, t2.p2) ||
			t1.intersectsSegment(t2.p2, t2.p1) ||
			t1.ContainsCoplanarPoint(t2.p0) ||
			t1.ContainsCoplanarPoint(t2.p1) ||
			t1.ContainsCoplanarPoint(t2.p2) ||
			t2.intersectsSegment(t1.p0, t1.p1) ||
			t2.intersectsSegment(t1.p0, t1.p2) ||
			t2.intersectsSegment(t1.p2, t1.p1) ||
			t2.ContainsCoplanarPoint(t1.p0) ||
			t2.ContainsCoplanarPoint(t1.p1) ||
			t2.ContainsCoplanarPoint(t1.p2)
	}

	ax := dominantAxis(dir)
	return t1.projectOnto(ax, t2).Intersects(t2.projectOnto(ax, t1))
}

// projectOnto returns the interval, measured along ax, that t covers on the line where its plane
// meets the plane of other. Each end is found by interpolating between a vertex on one side of
// other's plane and the lone vertex on the opposite side, weighted by their plane distances.
func (t *Triangle) projectOnto(ax axis, other *Triangle) r1.Interval {
	inPlane0 := other.PointInPlane(t.p0)
	inPlane1 := other.PointInPlane(t.p1)
	inPlane2 := other.PointInPlane(t.p2)

	// an edge lies in the other plane
	switch {
	case inPlane0 && inPlane1:
		return r1.IntervalFromPoint(ax.component(t.p0)).AddPoint(ax.component(t.p1))
	case inPlane1 && inPlane2:
		return r1.IntervalFromPoint(ax.component(t.p2)).AddPoint(ax.component(t.p1))
	case inPlane0 && inPlane2:
		return r1.IntervalFromPoint(ax.component(t.p0)).AddPoint(ax.component(t.p2))
	}

	d0 := other.DistanceToPlane(t.p0)
	d1 := other.DistanceToPlane(t.p1)
	d2 := other.DistanceToPlane(t.p2)

	// first and last share a side of other's plane, mid is on the other side; p1 is mid by default
	first, mid, last := t.p0, t.p1, t.p2
	if d1*d2 > 0 {
		first, mid = mid, first
	} else if d0*d1 > 0 {
		last, mid = mid, last
	}
	if inPlane1 && d0*d2 < 0 {
		first, mid = mid, first
	}

	dFirst := other.DistanceToPlane(first)
	dMid := other.DistanceToPlane(mid)
	dLast := other.DistanceToPlane(last)

	cFirst, cMid, cLast := ax.component(first), ax.component(mid), ax.component(last)
	lo := cFirst + (cMid-cFirst)*(dFirst/(dFirst-dMid))
	hi := cLast + (cMid-cLast)*(dLast/(dLast-dMid))

	return r1.IntervalFromPoint(lo).AddPoint(hi)
}
