// Package syncer runs clone and pull operations concurrently under a
// fixed permit budget.
package syncer

import (
	"context"
	"os"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/raphi011/gitcop/internal/git"
)

// Git is the set of operations the dispatcher drives.
type Git interface {
	Clone(ctx context.Context, dir, url string) git.Outcome
	Pull(ctx context.Context, dir string) git.Outcome
}

// Target is one directory to bring up to date. Targets are
// self-contained: the dispatcher never reaches back into the registry.
type Target struct {
	Dir string
	URL string
}

// Dispatcher executes git operations with at most a fixed number
// running at once. A permit is acquired before an operation starts and
// released exactly once when it finishes, so a stalled subprocess can
// never leak budget.
type Dispatcher struct {
	git Git
	sem *semaphore.Weighted
}

// New returns a Dispatcher allowing at most jobs concurrent operations.
func New(g Git, jobs int) *Dispatcher {
	if jobs < 1 {
		jobs = 1
	}
	return &Dispatcher{git: g, sem: semaphore.NewWeighted(int64(jobs))}
}

// Sync clones or pulls every target and returns one outcome per target
// once all of them have finished. A failing operation never cancels or
// blocks its siblings.
//
// Whether a target is cloned or pulled is decided when the operation
// starts, after its permit is acquired: targets can sit queued behind
// the budget for a while, and deciding at schedule time would act on
// stale directory state. An external actor changing the directory
// between this check and the subprocess can still select the wrong
// branch; that race is accepted.
func (d *Dispatcher) Sync(ctx context.Context, targets []Target) []git.Outcome {
	keys := func(i int) string { return targets[i].Dir }
	return d.dispatch(ctx, len(targets), keys, func(ctx context.Context, i int) git.Outcome {
		t := targets[i]
		if isDir(t.Dir) {
			return d.git.Pull(ctx, t.Dir)
		}
		return d.git.Clone(ctx, t.Dir, t.URL)
	})
}

// Pull fast-forwards every directory under the same admission
// protocol.
func (d *Dispatcher) Pull(ctx context.Context, dirs []string) []git.Outcome {
	keys := func(i int) string { return dirs[i] }
	return d.dispatch(ctx, len(dirs), keys, func(ctx context.Context, i int) git.Outcome {
		return d.git.Pull(ctx, dirs[i])
	})
}

// dispatch runs n operations, each gated by one permit, and joins on
// all of them. Outcomes land in per-index slots, so no lock guards the
// result slice. Acquisition fails only when ctx is cancelled; that is
// recorded as the outcome for the operation that never started.
func (d *Dispatcher) dispatch(ctx context.Context, n int, key func(int) string, op func(context.Context, int) git.Outcome) []git.Outcome {
	outcomes := make([]git.Outcome, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := d.sem.Acquire(ctx, 1); err != nil {
				outcomes[i] = git.Outcome{Key: key(i), Err: err}
				return
			}
			defer d.sem.Release(1)
			outcomes[i] = op(ctx, i)
		}()
	}
	wg.Wait()
	return outcomes
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
