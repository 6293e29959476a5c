package main

import (
	"slices"
	"testing"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitcop/internal/config"
	"github.com/raphi011/gitcop/internal/repo"
)

func TestCompleteRepoNames(t *testing.T) {
	reg := repo.NewRegistry()
	for _, name := range []string{"dash", "doom", "use-package"} {
		sel := repo.Selection{Repo: repo.Descriptor{Kind: repo.KindGitHub, Owner: "a", Project: name}}
		if err := reg.Add(name, sel); err != nil {
			t.Fatal(err)
		}
	}

	old := cfg
	cfg = &config.Config{Repos: reg}
	t.Cleanup(func() { cfg = old })

	names, directive := completeRepoNames(nil, nil, "d")
	if !slices.Equal(names, []string{"dash", "doom"}) {
		t.Errorf("completions = %v, want [dash doom]", names)
	}
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("directive = %v, want NoFileComp", directive)
	}

	names, _ = completeRepoNames(nil, nil, "")
	if len(names) != 3 {
		t.Errorf("completions = %v, want all three names", names)
	}
}
