// Package utils contains the worker fan-out shared by the octree verification pass.
package utils

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"
)

// ParallelFactor controls the max level of parallelization. This might be useful
// to set in tests where too much parallelism actually slows tests down in
// aggregate.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
	quarterProcs := float64(ParallelFactor) * .25
	if quarterProcs > 8 {
		ParallelFactor = int(quarterProcs)
	}
}

type (
	// BeforeParallelGroupWorkFunc executes before any work starts with the calculated number of groups.
	BeforeParallelGroupWorkFunc func(numGroups int)
	// MemberWorkFunc runs for each work item (member) of a group.
	MemberWorkFunc func(memberNum, workNum int)
	// GroupWorkDoneFunc runs when a single group's work is done; helpful for merge stages.
	GroupWorkDoneFunc func()
	// GroupWorkFunc runs to determine what work members should do, if any.
	GroupWorkFunc func(groupNum, groupSize, from, to int) (MemberWorkFunc, GroupWorkDoneFunc)
)

// GroupWorkParallel parallelizes the given size of work over ParallelFactor workers.
func GroupWorkParallel(ctx context.Context, totalSize int, before BeforeParallelGroupWorkFunc, groupWork GroupWorkFunc) error {
	return GroupWorkParallelN(ctx, ParallelFactor, totalSize, before, groupWork)
}

// GroupWorkParallelN splits work items [0, totalSize) into at most maxGroups contiguous ranges and
// runs each range on its own goroutine. Every item is handed to exactly one group; the last group
// also takes the remainder. A canceled context stops members from starting and is returned. A
// panic in any group is recovered and returned as an error once all groups have finished.
func GroupWorkParallelN(
	ctx context.Context,
	maxGroups, totalSize int,
	before BeforeParallelGroupWorkFunc,
	groupWork GroupWorkFunc,
) error {
	if maxGroups < 1 {
		return errors.Errorf("need at least one worker group, got %d", maxGroups)
	}
	numGroups := maxGroups
	if totalSize < numGroups {
		numGroups = totalSize
	}
	if before != nil {
		before(numGroups)
	}
	if numGroups == 0 {
		return ctx.Err()
	}
	groupSize := totalSize / numGroups
	extra := totalSize % numGroups

	var (
		wait     sync.WaitGroup
		errMu    sync.Mutex
		panicErr error
	)
	runGroup := func(groupNum int) {
		thisGroupSize := groupSize
		if groupNum == (numGroups - 1) {
			thisGroupSize += extra
		}
		from := groupSize * groupNum
		to := from + thisGroupSize
		memberWork, groupWorkDone := groupWork(groupNum, thisGroupSize, from, to)
		if memberWork != nil {
			for workNum := from; workNum < to; workNum++ {
				if ctx.Err() != nil {
					return
				}
				memberWork(workNum-from, workNum)
			}
		}
		if groupWorkDone != nil {
			groupWorkDone()
		}
	}

	wait.Add(numGroups)
	for groupNum := 0; groupNum < numGroups; groupNum++ {
		groupNumCopy := groupNum
		// Done is not deferred so that a panic is recorded before Wait returns.
		utils.PanicCapturingGoWithCallback(func() {
			runGroup(groupNumCopy)
			wait.Done()
		}, func(thePanic interface{}) {
			errMu.Lock()
			panicErr = multierr.Append(panicErr, errors.Errorf("got panic running group work in parallel: %v", thePanic))
			errMu.Unlock()
			wait.Done()
		})
	}
	wait.Wait()

	return multierr.Combine(ctx.Err(), panicErr)
}
