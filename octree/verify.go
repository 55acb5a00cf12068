package octree

import (
	"context"
	"sort"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/atomic"

	"go.viam.com/trispace/spatialmath"
	"go.viam.com/trispace/utils"
)

// IntersectingIndices returns, in ascending order, the index of every triangle that intersects at
// least one other triangle. Only triangles sharing a leaf are compared. Leaves are spread over the
// configured number of workers, each of which collects its own result set; the sets are merged
// once all workers finish.
func (octree *Octree) IntersectingIndices(ctx context.Context) ([]int, error) {
	workers := octree.cfg.Workers
	if workers == 0 {
		workers = utils.ParallelFactor
	}

	var (
		mu     sync.Mutex
		found  = map[int]struct{}{}
		checks = atomic.NewInt64(0)
	)
	err := utils.GroupWorkParallelN(
		ctx,
		workers,
		len(octree.leaves),
		func(numGroups int) {
			octree.logger.Debugw("verifying leaves", "leaves", len(octree.leaves), "workers", numGroups)
		},
		func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc) {
			local := map[int]struct{}{}
			return func(memberNum, workNum int) {
					checks.Add(verifyLeaf(octree.triangles, octree.leaves[workNum].Indices, local))
				}, func() {
					mu.Lock()
					defer mu.Unlock()
					for idx := range local {
						found[idx] = struct{}{}
					}
				}
		},
	)
	if err != nil {
		return nil, err
	}

	indices := lo.Keys(found)
	sort.Ints(indices)
	octree.logger.Debugw("verified leaves", "predicate_calls", checks.Load(), "intersecting", len(indices))
	return indices, nil
}

// verifyLeaf tests every unordered pair of the leaf's triangles and adds both members of each
// intersecting pair to found. A pair whose members are both already in found is skipped since it
// cannot change the result. It returns the number of predicate evaluations.
func verifyLeaf(triangles []*spatialmath.Triangle, indices []int, found map[int]struct{}) int64 {
	var calls int64
	for i, a := range indices {
		for _, b := range indices[i+1:] {
			_, haveA := found[a]
			_, haveB := found[b]
			if haveA && haveB {
				continue
			}
			calls++
			if spatialmath.Intersects(triangles[a], triangles[b]) {
				found[a] = struct{}{}
				found[b] = struct{}{}
			}
		}
	}
	return calls
}

// BruteForce compares every pair of triangles without an index and returns the ascending indices
// of those intersecting at least one other. It is the reference the octree result must match.
func BruteForce(triangles []*spatialmath.Triangle) []int {
	found := map[int]struct{}{}
	verifyLeaf(triangles, lo.Range(len(triangles)), found)
	indices := lo.Keys(found)
	sort.Ints(indices)
	return indices
}
