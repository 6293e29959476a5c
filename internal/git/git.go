// Package git runs git subprocesses and classifies their outcomes.
package git

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/raphi011/gitcop/internal/ui"
)

// Outcome is the result of one clone or pull, keyed by the directory
// the operation targeted.
type Outcome struct {
	Key string
	Err error
}

// Failed reports whether the operation failed.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Git runs clone and pull operations through an external git
// executable. The mutex serializes whole output blocks so concurrent
// operations never interleave mid-block.
type Git struct {
	path string

	mu  sync.Mutex
	out io.Writer
}

// New returns a Git running the executable at path, "git" when empty,
// writing each operation's output to out.
func New(path string, out io.Writer) *Git {
	if path == "" {
		path = "git"
	}
	return &Git{path: path, out: out}
}

// Check verifies that the executable at path, "git" when empty, can be
// resolved.
func Check(path string) error {
	if path == "" {
		path = "git"
	}
	if _, err := exec.LookPath(path); err != nil {
		return fmt.Errorf("git not found: %w", err)
	}
	return nil
}

// Clone clones url into dir.
func (g *Git) Clone(ctx context.Context, dir, url string) Outcome {
	cmd := exec.CommandContext(ctx, g.path, "-c", "color.ui=always", "clone", url, dir)
	return g.run(dir, cmd)
}

// Pull fast-forwards the checkout at dir; the pull fails rather than
// create a merge commit.
func (g *Git) Pull(ctx context.Context, dir string) Outcome {
	cmd := exec.CommandContext(ctx, g.path, "-c", "color.ui=always", "pull", "--ff-only")
	cmd.Dir = dir
	return g.run(dir, cmd)
}

// run waits for the subprocess to exit, then prints its combined
// output as one atomic block tagged with the directory key. The error,
// if any, is the exec error: an *exec.ExitError stringifies to the
// exit status, a launch failure to the launch error.
func (g *Git) run(key string, cmd *exec.Cmd) Outcome {
	out, err := cmd.CombinedOutput()
	g.print(key, out, err == nil)
	return Outcome{Key: key, Err: err}
}

func (g *Git) print(key string, output []byte, ok bool) {
	tag := ui.Warn(key)
	if ok {
		tag = ui.Good(key)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	fmt.Fprintf(g.out, "[%s] %s", tag, output)
}
