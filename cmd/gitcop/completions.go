package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitcop/internal/config"
)

// completeRepoNames completes declared repository names. Completion
// runs without PersistentPreRunE, so the config may not be loaded yet.
func completeRepoNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	loaded := cfg
	if loaded == nil {
		var err error
		loaded, err = config.Load(cfgFile)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
	}

	var matches []string
	for _, name := range loaded.Repos.Names() {
		if strings.HasPrefix(name, toComplete) {
			matches = append(matches, name)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
