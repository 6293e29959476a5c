package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitcop/internal/output"
	"github.com/raphi011/gitcop/internal/repo"
	"github.com/raphi011/gitcop/internal/ui"
)

func newListCmd() *cobra.Command {
	var unknown bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List declared repos",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		Long: `List every declared repository with its sync state.

The mark in the first column shows how an entry takes part in an
untargeted sync:

  * present, will be pulled
  - missing, will be cloned
  o optional and present, will be pulled
    optional and missing, skipped`,
		Example: `  gitcop list              # declared repos and their state
  gitcop list --unknown    # local directories nobody declared`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			if unknown {
				return listUnknown(out)
			}

			for res := range cfg.Repos.Resolve(nil) {
				dir := cfg.RepoPath(res.Name)
				m := mark(res.Selection, isDir(dir))
				out.Printf("%s %-19s %s\n", ui.Good(m), dir, res.Selection.Repo.URL())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&unknown, "unknown", "u", false, "List local directories not declared in the config")

	return cmd
}

// mark returns the one-character sync-state marker for a list row.
func mark(sel repo.Selection, exists bool) string {
	switch {
	case !sel.Optional && exists:
		return "*"
	case !sel.Optional:
		return "-"
	case exists:
		return "o"
	}
	return " "
}

// listUnknown prints non-hidden directories under the configured base
// directory that no registry entry claims.
func listUnknown(out *output.Printer) error {
	base := cfg.Directory
	if base == "" {
		base = "."
	}
	entries, err := os.ReadDir(base)
	if err != nil {
		return fmt.Errorf("read %s: %w", base, err)
	}

	known := make(map[string]bool)
	for _, name := range cfg.Repos.Names() {
		known[name] = true
	}

	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") || known[e.Name()] {
			continue
		}
		out.Println(e.Name())
	}
	return nil
}
