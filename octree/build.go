package octree

import (
	"context"
	"math"
	"math/bits"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/trispace/logging"
	"go.viam.com/trispace/spatialmath"
)

// New builds an octree over the given triangles. The slice is referenced, not copied, and must not
// be modified while the octree is in use. A nil cfg uses DefaultConfig.
func New(ctx context.Context, triangles []*spatialmath.Triangle, cfg *Config, logger logging.Logger) (*Octree, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	halfSide := nearestPowerOfTwo(maxAbsCoordinate(triangles))
	octree := &Octree{
		logger:    logger,
		cfg:       *cfg,
		triangles: triangles,
		halfSide:  halfSide,
	}

	root := lo.Range(len(triangles))
	corner := r3.Vector{X: halfSide, Y: halfSide, Z: halfSide}
	if _, err := octree.build(ctx, corner.Mul(-1), corner, root, 0); err != nil {
		return nil, err
	}

	logger.Debugw("built octree",
		"triangles", len(triangles),
		"half_side", halfSide,
		"nodes", len(octree.nodes),
		"leaves", len(octree.leaves))
	return octree, nil
}

// build partitions indices within the cuboid [minPt, maxPt] and returns the arena position of the
// new node. Depth is counted from 1 at the root.
func (octree *Octree) build(ctx context.Context, minPt, maxPt r3.Vector, indices []int, depth int) (int, error) {
	if err := ctx.Err(); err != nil {
		return noChild, errors.Wrap(err, "building octree")
	}
	depth++

	pos := len(octree.nodes)
	octree.nodes = append(octree.nodes, node{min: minPt, max: maxPt, depth: depth, leaf: noChild})
	for i := range octree.nodes[pos].children {
		octree.nodes[pos].children[i] = noChild
	}

	if len(indices) <= octree.cfg.LeafSize || depth > octree.cfg.MaxDepth {
		octree.nodes[pos].nodeType = LeafNode
		octree.nodes[pos].leaf = len(octree.leaves)
		octree.leaves = append(octree.leaves, Leaf{Min: minPt, Max: maxPt, Depth: depth, Indices: indices})
		return pos, nil
	}
	octree.nodes[pos].nodeType = InternalNode

	center := minPt.Add(maxPt).Mul(0.5)
	corners := octantCorners(minPt, maxPt)

	var octants [childCount][]int
	for _, idx := range indices {
		for i, corner := range corners {
			if octree.triangles[idx].OverlapsBox(center, corner) {
				octants[i] = append(octants[i], idx)
			}
		}
	}

	for i, corner := range corners {
		if len(octants[i]) == 0 {
			continue
		}
		childLo, childHi := bounds(center, corner)
		child, err := octree.build(ctx, childLo, childHi, octants[i], depth)
		if err != nil {
			return noChild, err
		}
		// the arena may have grown, so index it again
		octree.nodes[pos].children[i] = child
	}
	return pos, nil
}

// octantCorners returns the outer corner of each of the eight octants of [minPt, maxPt]. Each
// octant is the cuboid between its corner and the center.
func octantCorners(minPt, maxPt r3.Vector) [childCount]r3.Vector {
	return [childCount]r3.Vector{
		{X: maxPt.X, Y: maxPt.Y, Z: maxPt.Z},
		{X: minPt.X, Y: maxPt.Y, Z: maxPt.Z},
		{X: minPt.X, Y: minPt.Y, Z: maxPt.Z},
		{X: maxPt.X, Y: minPt.Y, Z: maxPt.Z},
		{X: maxPt.X, Y: maxPt.Y, Z: minPt.Z},
		{X: minPt.X, Y: maxPt.Y, Z: minPt.Z},
		{X: minPt.X, Y: minPt.Y, Z: minPt.Z},
		{X: maxPt.X, Y: minPt.Y, Z: minPt.Z},
	}
}

func bounds(a, b r3.Vector) (r3.Vector, r3.Vector) {
	return r3.Vector{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)},
		r3.Vector{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

// maxAbsCoordinate returns the largest absolute coordinate over every vertex, or 0 for no triangles.
func maxAbsCoordinate(triangles []*spatialmath.Triangle) float64 {
	var m float64
	for _, tri := range triangles {
		for _, p := range tri.Points() {
			m = math.Max(m, math.Max(math.Abs(p.X), math.Max(math.Abs(p.Y), math.Abs(p.Z))))
		}
	}
	return m
}

// nearestPowerOfTwo returns the smallest power of two strictly greater than the integer part of
// num, so 0 maps to 1, 3.5 to 4 and 4 to 8. num must not be negative.
func nearestPowerOfTwo(num float64) float64 {
	if num >= math.MaxInt64 {
		return math.Exp2(math.Floor(math.Log2(num)) + 1)
	}
	return float64(uint64(1) << bits.Len64(uint64(num)))
}
