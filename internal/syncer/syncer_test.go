package syncer

import (
	"context"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/raphi011/gitcop/internal/git"
)

// fakeGit records every operation and the peak number running at once.
type fakeGit struct {
	delay time.Duration

	running atomic.Int32
	peak    atomic.Int32

	mu     sync.Mutex
	cloned []string
	pulled []string
}

func (f *fakeGit) Clone(_ context.Context, dir, _ string) git.Outcome {
	f.record(&f.cloned, dir)
	return git.Outcome{Key: dir}
}

func (f *fakeGit) Pull(_ context.Context, dir string) git.Outcome {
	f.record(&f.pulled, dir)
	return git.Outcome{Key: dir}
}

func (f *fakeGit) record(ops *[]string, dir string) {
	n := f.running.Add(1)
	for {
		peak := f.peak.Load()
		if n <= peak || f.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(f.delay)
	f.running.Add(-1)

	f.mu.Lock()
	*ops = append(*ops, dir)
	f.mu.Unlock()
}

func missingDirs(t *testing.T, n int) []string {
	t.Helper()
	base := t.TempDir()
	dirs := make([]string, n)
	for i := range dirs {
		dirs[i] = filepath.Join(base, "repo", string(rune('a'+i)))
	}
	return dirs
}

func TestSyncBoundsConcurrency(t *testing.T) {
	t.Parallel()

	fake := &fakeGit{delay: 20 * time.Millisecond}
	d := New(fake, 2)

	var targets []Target
	for _, dir := range missingDirs(t, 5) {
		targets = append(targets, Target{Dir: dir, URL: "https://example.com/x.git"})
	}

	outcomes := d.Sync(context.Background(), targets)
	if len(outcomes) != len(targets) {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), len(targets))
	}
	for _, o := range outcomes {
		if o.Failed() {
			t.Errorf("%s: unexpected failure: %v", o.Key, o.Err)
		}
	}
	if peak := fake.peak.Load(); peak > 2 {
		t.Errorf("peak concurrency = %d, want at most 2", peak)
	}
	if len(fake.cloned) != len(targets) {
		t.Errorf("ran %d clones, want %d", len(fake.cloned), len(targets))
	}

	// A second full batch on the same dispatcher proves every permit
	// made it back.
	outcomes = d.Sync(context.Background(), targets)
	if len(outcomes) != len(targets) {
		t.Fatalf("second batch: got %d outcomes, want %d", len(outcomes), len(targets))
	}
	for _, o := range outcomes {
		if o.Failed() {
			t.Errorf("second batch: %s: unexpected failure: %v", o.Key, o.Err)
		}
	}
}

func TestSyncRoutesByDirectory(t *testing.T) {
	t.Parallel()

	existing := t.TempDir()
	missing := filepath.Join(t.TempDir(), "missing")

	fake := &fakeGit{}
	d := New(fake, 2)

	outcomes := d.Sync(context.Background(), []Target{
		{Dir: existing, URL: "https://example.com/a.git"},
		{Dir: missing, URL: "https://example.com/b.git"},
	})

	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(outcomes))
	}
	if !slices.Equal(fake.pulled, []string{existing}) {
		t.Errorf("pulled %v, want [%s]", fake.pulled, existing)
	}
	if !slices.Equal(fake.cloned, []string{missing}) {
		t.Errorf("cloned %v, want [%s]", fake.cloned, missing)
	}
}

func TestPullNeverClones(t *testing.T) {
	t.Parallel()

	dirs := missingDirs(t, 3)

	fake := &fakeGit{}
	d := New(fake, 2)

	outcomes := d.Pull(context.Background(), dirs)
	if len(outcomes) != len(dirs) {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), len(dirs))
	}
	if len(fake.cloned) != 0 {
		t.Errorf("cloned %v, want none", fake.cloned)
	}
	if len(fake.pulled) != len(dirs) {
		t.Errorf("ran %d pulls, want %d", len(fake.pulled), len(dirs))
	}
}

func TestNewClampsJobs(t *testing.T) {
	t.Parallel()

	fake := &fakeGit{delay: 10 * time.Millisecond}
	d := New(fake, 0)

	d.Pull(context.Background(), missingDirs(t, 3))

	if peak := fake.peak.Load(); peak != 1 {
		t.Errorf("peak concurrency = %d, want 1", peak)
	}
}
