package main

import (
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/gitcop/internal/log"
	"github.com/raphi011/gitcop/internal/output"
)

func newCdCmd() *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:   "cd NAME",
		Short: "Print the directory of a declared repo",
		Args:  cobra.ExactArgs(1),
		Long: `Print the checkout directory of a declared repository for shell
scripting.

Use with shell command substitution: cd $(gitcop cd dash)`,
		Example: `  cd $(gitcop cd dash)     # cd to the dash checkout
  gitcop cd --copy dash    # copy the path to the clipboard`,
		ValidArgsFunction: completeRepoNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			var dir string
			for res := range cfg.Repos.Resolve(args) {
				if res.Err != nil {
					return res.Err
				}
				dir = cfg.RepoPath(res.Name)
			}

			abs, err := filepath.Abs(dir)
			if err != nil {
				return err
			}

			if copyToClipboard {
				if err := clipboard.WriteAll(abs); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
				}
			}

			out.Println(abs)
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy path to clipboard")

	return cmd
}
