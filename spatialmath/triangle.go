package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// DegeneracyKind classifies the shape a triangle's three vertices actually describe.
type DegeneracyKind uint8

// A triangle is either a proper triangle, collapses to a segment (collinear vertices) or collapses
// to a single point (coincident vertices).
const (
	NonDegenerate = DegeneracyKind(iota)
	LineSegment
	SinglePoint
)

func (k DegeneracyKind) String() string {
	switch k {
	case NonDegenerate:
		return "triangle"
	case LineSegment:
		return "segment"
	case SinglePoint:
		return "point"
	}
	return fmt.Sprintf("DegeneracyKind(%d)", uint8(k))
}

// Triangle is an immutable triangle in 3D space. Its plane normal, bounding box and degeneracy
// are derived once at construction.
type Triangle struct {
	p0 r3.Vector
	p1 r3.Vector
	p2 r3.Vector

	// the supporting plane is normal.Dot(X - p0) == 0
	normal r3.Vector

	min r3.Vector
	max r3.Vector

	kind DegeneracyKind
}

// NewTriangle creates a triangle from three points. It never fails: collinear or coincident
// vertices produce a degenerate triangle, which is queryable through Kind.
func NewTriangle(p0, p1, p2 r3.Vector) *Triangle {
	t := &Triangle{
		p0:     p0,
		p1:     p1,
		p2:     p2,
		normal: PlaneNormal(p0, p1, p2),
		min: r3.Vector{
			X: math.Min(p0.X, math.Min(p1.X, p2.X)),
			Y: math.Min(p0.Y, math.Min(p1.Y, p2.Y)),
			Z: math.Min(p0.Z, math.Min(p1.Z, p2.Z)),
		},
		max: r3.Vector{
			X: math.Max(p0.X, math.Max(p1.X, p2.X)),
			Y: math.Max(p0.Y, math.Max(p1.Y, p2.Y)),
			Z: math.Max(p0.Z, math.Max(p1.Z, p2.Z)),
		},
	}
	switch {
	case PointsAlmostEqual(p0, p1) && PointsAlmostEqual(p0, p2):
		t.kind = SinglePoint
	case IsZero(t.normal):
		t.kind = LineSegment
	default:
		t.kind = NonDegenerate
	}
	return t
}

// PlaneNormal returns the (unnormalized) normal (p1-p0) x (p2-p0) of the plane through three points.
func PlaneNormal(p0, p1, p2 r3.Vector) r3.Vector {
	return NewVector(p0, p1).Cross(NewVector(p0, p2))
}

// A returns the first vertex.
func (t *Triangle) A() r3.Vector { return t.p0 }

// B returns the second vertex.
func (t *Triangle) B() r3.Vector { return t.p1 }

// C returns the third vertex.
func (t *Triangle) C() r3.Vector { return t.p2 }

// Points returns the three vertices in construction order.
func (t *Triangle) Points() []r3.Vector {
	return []r3.Vector{t.p0, t.p1, t.p2}
}

// Normal returns the unnormalized plane normal. It is the zero vector (within Epsilon) for a
// degenerate triangle.
func (t *Triangle) Normal() r3.Vector {
	return t.normal
}

// BoundingBox returns the min and max corners of the axis aligned box around the vertices.
func (t *Triangle) BoundingBox() (r3.Vector, r3.Vector) {
	return t.min, t.max
}

// Kind returns the degeneracy classification of the triangle.
func (t *Triangle) Kind() DegeneracyKind {
	return t.kind
}

// Degenerate reports whether the triangle has no well defined plane.
func (t *Triangle) Degenerate() bool {
	return t.kind != NonDegenerate
}

// IsPoint reports whether all three vertices coincide.
func (t *Triangle) IsPoint() bool {
	return t.kind == SinglePoint
}

// IsLine reports whether the triangle collapses to a segment of non-zero length.
func (t *Triangle) IsLine() bool {
	return t.kind == LineSegment
}

// Area returns the area of the triangle.
func (t *Triangle) Area() float64 {
	return 0.5 * t.normal.Norm()
}

// Centroid returns the average of the three vertices.
func (t *Triangle) Centroid() r3.Vector {
	return t.p0.Add(t.p1).Add(t.p2).Mul(1. / 3.)
}

// DistanceToPlane returns the signed distance from p to the triangle's supporting plane. The sign
// tells which half space p lies in. The result is meaningless for a degenerate triangle, so
// callers check Degenerate first.
func (t *Triangle) DistanceToPlane(p r3.Vector) float64 {
	return t.normal.Dot(NewVector(t.p0, p)) / t.normal.Norm()
}

// PointInPlane reports whether p lies within Epsilon of the triangle's supporting plane.
func (t *Triangle) PointInPlane(p r3.Vector) bool {
	return math.Abs(t.DistanceToPlane(p)) < Epsilon
}

// ContainsCoplanarPoint reports whether p lies inside or on the boundary of the triangle.
// p *MUST* already lie in the triangle's plane. The three half plane tests must agree in sign,
// which accepts either winding order.
func (t *Triangle) ContainsCoplanarPoint(p r3.Vector) bool {
	c0 := NewVector(t.p0, t.p1).Cross(NewVector(t.p0, p)).Dot(t.normal)
	c1 := NewVector(t.p1, t.p2).Cross(NewVector(t.p1, p)).Dot(t.normal)
	c2 := NewVector(t.p2, t.p0).Cross(NewVector(t.p2, p)).Dot(t.normal)

	return (c0 >= -Epsilon && c1 >= -Epsilon && c2 >= -Epsilon) ||
		(c0 <= Epsilon && c1 <= Epsilon && c2 <= Epsilon)
}

// OverlapsBox reports whether the triangle's bounding box overlaps the closed cuboid spanned by
// the two corners, which may be given in any order.
func (t *Triangle) OverlapsBox(c1, c2 r3.Vector) bool {
	boxMin := r3.Vector{X: math.Min(c1.X, c2.X), Y: math.Min(c1.Y, c2.Y), Z: math.Min(c1.Z, c2.Z)}
	boxMax := r3.Vector{X: math.Max(c1.X, c2.X), Y: math.Max(c1.Y, c2.Y), Z: math.Max(c1.Z, c2.Z)}

	return !(t.max.X < boxMin.X || t.min.X > boxMax.X) &&
		!(t.max.Y < boxMin.Y || t.min.Y > boxMax.Y) &&
		!(t.max.Z < boxMin.Z || t.min.Z > boxMax.Z)
}

func (t *Triangle) String() string {
	return fmt.Sprintf("%s {%v %v %v}", t.kind, t.p0, t.p1, t.p2)
}
