package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitcop/internal/git"
	"github.com/raphi011/gitcop/internal/output"
	"github.com/raphi011/gitcop/internal/report"
	"github.com/raphi011/gitcop/internal/syncer"
	"github.com/raphi011/gitcop/internal/ui"
)

func newPullCmd() *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "pull DIR...",
		Short: "Fast-forward pull checkouts by directory",
		Args:  cobra.MinimumNArgs(1),
		Long: `Fast-forward pull the given directories, whether or not they are
declared in the config. Directories that do not exist are reported and
skipped; the rest are pulled anyway.`,
		Example: `  gitcop pull dash s.el    # pull two checkouts
  gitcop pull -j 4 */      # pull everything the shell expands`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if jobs == 0 {
				jobs = cfg.Jobs
			}
			if jobs < 1 {
				return fmt.Errorf("jobs must be at least 1, got %d", jobs)
			}

			var dirs []string
			missing := 0
			for _, dir := range args {
				if !isDir(dir) {
					out.Printf("%s: No such directory\n", ui.Warn(dir))
					missing++
					continue
				}
				dirs = append(dirs, dir)
			}

			g := git.New(cfg.Git, out.Writer())
			outcomes := syncer.New(g, jobs).Pull(ctx, dirs)

			failed := report.Print(out.Writer(), "pull", outcomes) + missing
			if failed > 0 {
				return fmt.Errorf("%d of %d pulls failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Max concurrent git operations (default from config)")

	return cmd
}
