package octree

import (
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// Stats summarizes the shape of a built octree.
type Stats struct {
	Triangles int
	Nodes     int
	Leaves    int
	// MaxDepth is the deepest leaf, counting the root as 1.
	MaxDepth int
	// IndexEntries is the total length of every leaf's index list. It exceeds Triangles when
	// triangles straddle octant boundaries and are stored in several leaves.
	IndexEntries int
	EmptyLeaves  int

	LeafSizeMean   float64
	LeafSizeMedian float64
	LeafSizeMax    float64
}

// Stats computes partition statistics for the octree.
func (octree *Octree) Stats() (Stats, error) {
	s := Stats{
		Triangles: len(octree.triangles),
		Nodes:     len(octree.nodes),
		Leaves:    len(octree.leaves),
	}

	sizes := make(stats.Float64Data, 0, len(octree.leaves))
	for _, leaf := range octree.leaves {
		sizes = append(sizes, float64(len(leaf.Indices)))
		s.IndexEntries += len(leaf.Indices)
		if len(leaf.Indices) == 0 {
			s.EmptyLeaves++
		}
		if leaf.Depth > s.MaxDepth {
			s.MaxDepth = leaf.Depth
		}
	}

	var err error
	if s.LeafSizeMean, err = sizes.Mean(); err != nil {
		return Stats{}, errors.Wrap(err, "leaf size mean")
	}
	if s.LeafSizeMedian, err = sizes.Median(); err != nil {
		return Stats{}, errors.Wrap(err, "leaf size median")
	}
	if s.LeafSizeMax, err = sizes.Max(); err != nil {
		return Stats{}, errors.Wrap(err, "leaf size max")
	}
	return s, nil
}

// ReplicationFactor is the average number of leaves each triangle is stored in.
func (s Stats) ReplicationFactor() float64 {
	if s.Triangles == 0 {
		return 0
	}
	return float64(s.IndexEntries) / float64(s.Triangles)
}
