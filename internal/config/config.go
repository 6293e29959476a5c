// Package config loads the .gitcop.toml configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/gitcop/internal/repo"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = ".gitcop.toml"

// DefaultJobs is the concurrency budget used when the config does not
// set one.
const DefaultJobs = 10

// Config holds the parsed configuration for one run.
type Config struct {
	// Directory is the base directory the checkouts live under.
	// Empty means the working directory itself.
	Directory string
	// Git is the git executable to run. Empty resolves "git" from
	// the search path.
	Git string
	// Jobs bounds the number of concurrent git operations.
	Jobs int
	// Repos holds the declared repositories in declaration order.
	Repos *repo.Registry
}

// RepoPath returns the checkout directory for a registry name.
func (c *Config) RepoPath(name string) string {
	if c.Directory == "" {
		return name
	}
	return filepath.Join(c.Directory, name)
}

// rawConfig mirrors the TOML document before the repo specs are
// resolved.
type rawConfig struct {
	Directory    string                    `toml:"directory"`
	Git          string                    `toml:"git"`
	Jobs         *int                      `toml:"jobs"`
	Repositories map[string]toml.Primitive `toml:"repositories"`
}

// rawRepo is the table form of a repository entry.
type rawRepo struct {
	Type     string `toml:"type"`
	Repo     string `toml:"repo"`
	Optional bool   `toml:"optional"`
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses a TOML config document. Repository declaration order is
// preserved.
func Parse(data string) (*Config, error) {
	var raw rawConfig
	md, err := toml.Decode(data, &raw)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Directory: raw.Directory,
		Git:       raw.Git,
		Jobs:      DefaultJobs,
		Repos:     repo.NewRegistry(),
	}
	if raw.Jobs != nil {
		if *raw.Jobs < 1 {
			return nil, fmt.Errorf("jobs must be at least 1, got %d", *raw.Jobs)
		}
		cfg.Jobs = *raw.Jobs
	}

	for _, name := range repositoryNames(md) {
		prim, ok := raw.Repositories[name]
		if !ok {
			continue
		}
		sel, err := decodeRepo(md, name, prim)
		if err != nil {
			return nil, err
		}
		if err := cfg.Repos.Add(name, sel); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// repositoryNames recovers the declaration order of [repositories]
// entries. toml.Decode hands the entries back as a map, so the order
// has to come from the parser metadata; dotted declarations like
// `f.type = "github"` surface as longer keys, hence the dedup.
func repositoryNames(md toml.MetaData) []string {
	var names []string
	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		if len(key) < 2 || key[0] != "repositories" {
			continue
		}
		if name := key[1]; !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// decodeRepo decodes one repository entry, which is either a bare spec
// string or a table with type/repo/optional fields.
func decodeRepo(md toml.MetaData, name string, prim toml.Primitive) (repo.Selection, error) {
	var spec string
	if err := md.PrimitiveDecode(prim, &spec); err == nil {
		desc, err := repo.ParseSpec("", spec, name)
		if err != nil {
			return repo.Selection{}, err
		}
		return repo.Selection{Repo: desc}, nil
	}

	var entry rawRepo
	if err := md.PrimitiveDecode(prim, &entry); err != nil {
		return repo.Selection{}, fmt.Errorf("repository %s: %w", name, err)
	}
	desc, err := repo.ParseSpec(entry.Type, entry.Repo, name)
	if err != nil {
		return repo.Selection{}, err
	}
	return repo.Selection{Repo: desc, Optional: entry.Optional}, nil
}
