package spatialmath

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestBasicTriangleFunctions(t *testing.T) {
	expectedPts := []r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 3, Z: 0}, {X: 3, Y: 0, Z: 0}}
	tri := NewTriangle(expectedPts[0], expectedPts[1], expectedPts[2])

	expectedNormal := r3.Vector{X: 0, Y: 0, Z: 1}
	expectedArea := 4.5
	expectedCentroid := r3.Vector{X: 1, Y: 1, Z: 0}

	t.Run("constructor", func(t *testing.T) {
		test.That(t, tri.Points(), test.ShouldResemble, expectedPts)
		test.That(t, tri.A(), test.ShouldResemble, expectedPts[0])
		test.That(t, tri.B(), test.ShouldResemble, expectedPts[1])
		test.That(t, tri.C(), test.ShouldResemble, expectedPts[2])
		// the cross product of the normal with what is expected should result in nothing
		test.That(t, tri.Normal().Cross(expectedNormal), test.ShouldResemble, r3.Vector{})
		test.That(t, tri.Kind(), test.ShouldEqual, NonDegenerate)
		test.That(t, tri.Degenerate(), test.ShouldBeFalse)
	})

	t.Run("area", func(t *testing.T) {
		test.That(t, tri.Area(), test.ShouldEqual, expectedArea)
	})

	t.Run("centroid", func(t *testing.T) {
		test.That(t, tri.Centroid(), test.ShouldResemble, expectedCentroid)
	})

	t.Run("bounding box", func(t *testing.T) {
		lo, hi := tri.BoundingBox()
		test.That(t, lo, test.ShouldResemble, r3.Vector{X: 0, Y: 0, Z: 0})
		test.That(t, hi, test.ShouldResemble, r3.Vector{X: 3, Y: 3, Z: 0})
	})

	t.Run("contains coplanar point", func(t *testing.T) {
		test.That(t, tri.ContainsCoplanarPoint(r3.Vector{X: 1, Y: 1, Z: 0}), test.ShouldBeTrue)
		// edge and vertex count as inside
		test.That(t, tri.ContainsCoplanarPoint(r3.Vector{X: 1.5, Y: 1.5, Z: 0}), test.ShouldBeTrue)
		test.That(t, tri.ContainsCoplanarPoint(r3.Vector{X: 0, Y: 3, Z: 0}), test.ShouldBeTrue)
		test.That(t, tri.ContainsCoplanarPoint(r3.Vector{X: 2, Y: 2, Z: 0}), test.ShouldBeFalse)
		test.That(t, tri.ContainsCoplanarPoint(r3.Vector{X: -1, Y: 1, Z: 0}), test.ShouldBeFalse)

		// winding order does not matter
		flipped := NewTriangle(expectedPts[0], expectedPts[2], expectedPts[1])
		test.That(t, flipped.ContainsCoplanarPoint(r3.Vector{X: 1, Y: 1, Z: 0}), test.ShouldBeTrue)
		test.That(t, flipped.ContainsCoplanarPoint(r3.Vector{X: 2, Y: 2, Z: 0}), test.ShouldBeFalse)
	})

	t.Run("distance to plane", func(t *testing.T) {
		// the normal points down for this winding
		test.That(t, tri.DistanceToPlane(r3.Vector{X: 1, Y: 1, Z: 2}), test.ShouldAlmostEqual, -2.)
		test.That(t, tri.DistanceToPlane(r3.Vector{X: 7, Y: -4, Z: -0.5}), test.ShouldAlmostEqual, 0.5)
	})
}

func TestDegeneracyKind(t *testing.T) {
	t.Run("collinear", func(t *testing.T) {
		tri := NewTriangle(r3.Vector{X: -1.1, Y: -2.2, Z: -3.3}, r3.Vector{X: -4.4, Y: -5.5, Z: -6.6}, r3.Vector{X: -7.7, Y: -8.8, Z: -9.9})
		test.That(t, tri.Kind(), test.ShouldEqual, LineSegment)
		test.That(t, tri.IsLine(), test.ShouldBeTrue)
		test.That(t, tri.IsPoint(), test.ShouldBeFalse)
		test.That(t, tri.Degenerate(), test.ShouldBeTrue)
	})

	t.Run("two coincident vertices", func(t *testing.T) {
		tri := NewTriangle(r3.Vector{X: 0, Y: 0, Z: -10}, r3.Vector{X: 1, Y: 1, Z: 10}, r3.Vector{X: 1, Y: 1, Z: 10})
		test.That(t, tri.Kind(), test.ShouldEqual, LineSegment)
	})

	t.Run("coincident", func(t *testing.T) {
		tri := NewTriangle(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{X: 1, Y: 2, Z: 3})
		test.That(t, tri.Kind(), test.ShouldEqual, SinglePoint)
		test.That(t, tri.IsPoint(), test.ShouldBeTrue)
		test.That(t, tri.Area(), test.ShouldEqual, 0.)
	})

	t.Run("within tolerance", func(t *testing.T) {
		// every vertex is closer than Epsilon to the others
		tri := NewTriangle(r3.Vector{X: 1e-9, Y: 2e-9, Z: -3e-9}, r3.Vector{X: -4e-9, Y: 5e-9, Z: 6e-9}, r3.Vector{X: 7e-9, Y: -8e-9, Z: 9e-9})
		test.That(t, tri.Kind(), test.ShouldEqual, SinglePoint)
	})

	t.Run("names", func(t *testing.T) {
		test.That(t, NonDegenerate.String(), test.ShouldEqual, "triangle")
		test.That(t, LineSegment.String(), test.ShouldEqual, "segment")
		test.That(t, SinglePoint.String(), test.ShouldEqual, "point")
		test.That(t, DegeneracyKind(7).String(), test.ShouldEqual, "DegeneracyKind(7)")
	})
}

func TestPointInPlane(t *testing.T) {
	cases := []struct {
		name    string
		pts     [3]r3.Vector
		inPlane []r3.Vector
		off     r3.Vector
	}{
		{
			"vertical plane",
			[3]r3.Vector{{X: 5, Y: 0, Z: 2.7}, {X: 1, Y: 0, Z: 10.3}, {X: 2, Y: 0, Z: 1}},
			[]r3.Vector{{X: 13, Y: 0, Z: 25.9}},
			r3.Vector{X: 1, Y: 1, Z: 1},
		},
		{
			"own vertices",
			[3]r3.Vector{{X: 8.9, Y: -7.4, Z: -10.25}, {X: 10, Y: 0, Z: -3.8}, {X: -2, Y: 16, Z: 17.16}},
			[]r3.Vector{{X: 8.9, Y: -7.4, Z: -10.25}, {X: 10, Y: 0, Z: -3.8}, {X: -2, Y: 16, Z: 17.16}},
			r3.Vector{X: 1, Y: 1, Z: 1},
		},
		{
			"unit",
			[3]r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
			[]r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0.5, Y: 0.5, Z: 0}},
			r3.Vector{X: 0.5, Y: 0.5, Z: 1},
		},
		{
			"centroid",
			[3]r3.Vector{{X: 1, Y: 2, Z: 3}, {X: -4, Y: 5.5, Z: 6.6}, {X: 7.7, Y: -8.8, Z: 9.9}},
			[]r3.Vector{
				{X: 1, Y: 2, Z: 3}, {X: -4, Y: 5.5, Z: 6.6}, {X: 7.7, Y: -8.8, Z: 9.9},
				{X: (1 - 4 + 7.7) / 3, Y: (2 + 5.5 - 8.8) / 3, Z: (3 + 6.6 + 9.9) / 3},
			},
			r3.Vector{X: 10, Y: 10, Z: 10},
		},
		{
			"far point in plane",
			[3]r3.Vector{{X: -2.5, Y: 4.1, Z: 0}, {X: 3.3, Y: -1.7, Z: 0}, {X: 0, Y: 0, Z: 0}},
			[]r3.Vector{{X: -2.5, Y: 4.1, Z: 0}, {X: 3.3, Y: -1.7, Z: 0}, {X: 0, Y: 0, Z: 0}, {X: 100, Y: -200, Z: 0}},
			r3.Vector{X: 0, Y: 0, Z: 1},
		},
		{
			"large coordinates",
			[3]r3.Vector{{X: 1e8, Y: 2e8, Z: -3e8}, {X: -4e8, Y: 5e8, Z: 6e8}, {X: 7e8, Y: -8e8, Z: 9e8}},
			[]r3.Vector{
				{X: 1e8, Y: 2e8, Z: -3e8}, {X: -4e8, Y: 5e8, Z: 6e8}, {X: 7e8, Y: -8e8, Z: 9e8},
				{X: (1e8 - 4e8 + 7e8) / 3, Y: (2e8 + 5e8 - 8e8) / 3, Z: (-3e8 + 6e8 + 9e8) / 3},
			},
			r3.Vector{X: 1, Y: 1, Z: 1},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tri := NewTriangle(c.pts[0], c.pts[1], c.pts[2])
			test.That(t, tri.Degenerate(), test.ShouldBeFalse)
			for _, p := range c.inPlane {
				test.That(t, tri.PointInPlane(p), test.ShouldBeTrue)
			}
			test.That(t, tri.PointInPlane(c.off), test.ShouldBeFalse)
		})
	}
}

func TestOverlapsBox(t *testing.T) {
	tri := NewTriangle(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 2, Y: 0, Z: 0}, r3.Vector{X: 0, Y: 2, Z: 1})

	test.That(t, tri.OverlapsBox(r3.Vector{X: -1, Y: -1, Z: -1}, r3.Vector{X: 1, Y: 1, Z: 1}), test.ShouldBeTrue)
	// corners in any order
	test.That(t, tri.OverlapsBox(r3.Vector{X: 1, Y: 1, Z: 1}, r3.Vector{X: -1, Y: -1, Z: -1}), test.ShouldBeTrue)
	test.That(t, tri.OverlapsBox(r3.Vector{X: 4, Y: 4, Z: 4}, r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}), test.ShouldBeTrue)
	// closed boxes touch on a face
	test.That(t, tri.OverlapsBox(r3.Vector{X: 2, Y: 0, Z: 0}, r3.Vector{X: 3, Y: 1, Z: 1}), test.ShouldBeTrue)
	test.That(t, tri.OverlapsBox(r3.Vector{X: 2.1, Y: 0, Z: 0}, r3.Vector{X: 3, Y: 1, Z: 1}), test.ShouldBeFalse)
	test.That(t, tri.OverlapsBox(r3.Vector{X: 0, Y: 0, Z: -2}, r3.Vector{X: 1, Y: 1, Z: -0.5}), test.ShouldBeFalse)

	point := NewTriangle(r3.Vector{X: 1, Y: 1, Z: 1}, r3.Vector{X: 1, Y: 1, Z: 1}, r3.Vector{X: 1, Y: 1, Z: 1})
	test.That(t, point.OverlapsBox(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 1, Y: 1, Z: 1}), test.ShouldBeTrue)
	test.That(t, point.OverlapsBox(r3.Vector{X: -1, Y: -1, Z: -1}, r3.Vector{X: 0, Y: 0, Z: 0}), test.ShouldBeFalse)
}
