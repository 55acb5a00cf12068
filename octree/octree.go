// Package octree implements an octree index over a set of triangles. The index partitions space so
// that only triangles sharing a leaf are tested against each other when looking for intersections.
package octree

import (
	"slices"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"go.viam.com/trispace/logging"
	"go.viam.com/trispace/spatialmath"
)

// Each node in the octree is either an internal node which links to up to eight child octants, or a
// leaf node which holds the indices of every triangle whose bounding box overlaps its cuboid.
const (
	InternalNode = NodeType(iota)
	LeafNode
)

const (
	// OptimalLeafSize is the triangle count at or below which a node stops splitting.
	OptimalLeafSize = 15
	// MaxDepth is the deepest level that may still split. Nodes below it always become leaves.
	MaxDepth = 6

	childCount = 8
	noChild    = -1
)

// NodeType represents the possible types of nodes in an octree.
type NodeType uint8

func (nt NodeType) String() string {
	switch nt {
	case InternalNode:
		return "internal"
	case LeafNode:
		return "leaf"
	}
	return "unknown"
}

// Config controls how the octree is partitioned and how many workers verify its leaves.
type Config struct {
	LeafSize int `json:"leaf_size"`
	MaxDepth int `json:"max_depth"`
	// Workers is the number of leaf verification workers. Zero picks utils.ParallelFactor.
	Workers int `json:"workers"`
}

// DefaultConfig returns the partitioning parameters the index was tuned with.
func DefaultConfig() *Config {
	return &Config{LeafSize: OptimalLeafSize, MaxDepth: MaxDepth}
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate() error {
	var err error
	if cfg.LeafSize < 1 {
		err = multierr.Append(err, errors.Errorf("invalid leaf size (%d) for octree, must be at least 1", cfg.LeafSize))
	}
	if cfg.MaxDepth < 0 {
		err = multierr.Append(err, errors.Errorf("invalid max depth (%d) for octree, must not be negative", cfg.MaxDepth))
	}
	if cfg.Workers < 0 {
		err = multierr.Append(err, errors.Errorf("invalid worker count (%d) for octree, must not be negative", cfg.Workers))
	}
	return err
}

// Leaf is a terminal octant of the partition. Indices refer to the triangle slice the octree was
// built from, in ascending order.
type Leaf struct {
	Min     r3.Vector
	Max     r3.Vector
	Depth   int
	Indices []int
}

// Contains reports whether the triangle at index idx was assigned to the leaf.
func (l Leaf) Contains(idx int) bool {
	_, found := slices.BinarySearch(l.Indices, idx)
	return found
}

// node is an entry of the octree's arena. Children are arena positions.
type node struct {
	nodeType NodeType
	min      r3.Vector
	max      r3.Vector
	depth    int
	children [childCount]int
	leaf     int
}

// Octree is a static spatial index over a slice of triangles. It is built once by New and never
// mutated afterwards, so queries may run concurrently.
type Octree struct {
	logger    logging.Logger
	cfg       Config
	triangles []*spatialmath.Triangle
	halfSide  float64
	nodes     []node
	leaves    []Leaf
}

// NumTriangles returns the number of triangles the octree was built over.
func (octree *Octree) NumTriangles() int {
	return len(octree.triangles)
}

// HalfSide returns m where the root cube is [-m, m]^3.
func (octree *Octree) HalfSide() float64 {
	return octree.halfSide
}

// Leaves returns a copy of the leaves in construction order. Identical input produces identical
// leaves.
func (octree *Octree) Leaves() []Leaf {
	return lo.Map(octree.leaves, func(l Leaf, _ int) Leaf {
		l.Indices = slices.Clone(l.Indices)
		return l
	})
}

// NumNodes returns the number of nodes, internal and leaf, in the octree.
func (octree *Octree) NumNodes() int {
	return len(octree.nodes)
}
