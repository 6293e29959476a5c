package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitcop/internal/git"
	"github.com/raphi011/gitcop/internal/log"
	"github.com/raphi011/gitcop/internal/output"
	"github.com/raphi011/gitcop/internal/report"
	"github.com/raphi011/gitcop/internal/syncer"
	"github.com/raphi011/gitcop/internal/ui"
)

func newSyncCmd() *cobra.Command {
	var (
		jobs        int
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "sync [REPO...]",
		Short: "Clone or pull the declared repos",
		Long: `Clone every declared repository that is missing locally and
fast-forward-pull every one that is already present.

Without arguments all repositories are synced; entries marked optional
take part only when their directory already exists. Naming repositories
syncs exactly those, optional or not. Unknown names are reported and
the rest are synced anyway.`,
		Example: `  gitcop sync              # sync everything
  gitcop sync dash s       # sync only dash and s
  gitcop sync -j 4         # at most 4 git processes at once
  gitcop sync -i           # pick repos interactively`,
		ValidArgsFunction: completeRepoNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			names := args
			if interactive {
				picked, err := ui.PickRepos(pickerEntries())
				if err != nil {
					return fmt.Errorf("interactive mode error: %w", err)
				}
				if len(picked) == 0 {
					return nil
				}
				names = picked
			}

			if jobs == 0 {
				jobs = cfg.Jobs
			}
			if jobs < 1 {
				return fmt.Errorf("jobs must be at least 1, got %d", jobs)
			}

			var targets []syncer.Target
			unresolved := 0
			for res := range cfg.Repos.Resolve(names) {
				if res.Err != nil {
					out.Println(res.Err)
					unresolved++
					continue
				}
				dir := cfg.RepoPath(res.Name)
				if res.Selection.Optional && !isDir(dir) {
					continue
				}
				targets = append(targets, syncer.Target{Dir: dir, URL: res.Selection.Repo.URL()})
			}

			l.Verbosef("syncing %d repos with %d jobs\n", len(targets), jobs)

			g := git.New(cfg.Git, out.Writer())
			outcomes := syncer.New(g, jobs).Sync(ctx, targets)

			failed := report.Print(out.Writer(), "sync", outcomes) + unresolved
			if failed > 0 {
				return fmt.Errorf("%d of %d repos failed to sync", failed, len(targets)+unresolved)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Max concurrent git operations (default from config)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick repos interactively")

	return cmd
}

// pickerEntries converts the registry into rows for the interactive
// picker, in declaration order.
func pickerEntries() []ui.RepoEntry {
	var entries []ui.RepoEntry
	for res := range cfg.Repos.Resolve(nil) {
		entries = append(entries, ui.RepoEntry{
			Name:    res.Name,
			URL:     res.Selection.Repo.URL(),
			Present: isDir(cfg.RepoPath(res.Name)),
		})
	}
	return entries
}
