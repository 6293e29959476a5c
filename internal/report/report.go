// Package report prints the consolidated failure summary for a batch
// of git operations.
package report

import (
	"fmt"
	"io"

	"github.com/raphi011/gitcop/internal/git"
	"github.com/raphi011/gitcop/internal/ui"
)

// Print writes the failure summary for a finished batch: a one-time
// banner naming the operation, then one line per failed outcome in the
// order the outcomes were collected. It returns the number of
// failures; nothing is printed when there are none.
func Print(w io.Writer, name string, outcomes []git.Outcome) int {
	failed := 0
	for _, o := range outcomes {
		if !o.Failed() {
			continue
		}
		if failed == 0 {
			fmt.Fprintf(w, "\nThe following %s got error!\n", name)
		}
		failed++
		fmt.Fprintf(w, "%s: %s\n", ui.Warn(o.Key), o.Err)
	}
	return failed
}
