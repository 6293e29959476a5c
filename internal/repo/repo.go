// Package repo defines remote repository descriptors and the ordered
// registry of configured checkouts.
package repo

import (
	"fmt"
	"strings"
)

// Kind identifies a repository hosting service.
type Kind string

// KindGitHub is the only supported hosting service.
const KindGitHub Kind = "github"

// Descriptor is the resolved identity of a remote repository.
type Descriptor struct {
	Kind    Kind
	Owner   string
	Project string
}

// URL renders the clone URL for the descriptor.
func (d Descriptor) URL() string {
	return "https://github.com/" + d.Owner + "/" + d.Project + ".git"
}

// Selection is one registry entry. Optional entries take part in an
// untargeted sync only when their directory already exists; naming
// them explicitly always includes them.
type Selection struct {
	Repo     Descriptor
	Optional bool
}

// InvalidSpecError reports a repo spec that is neither "owner" nor
// "owner/project".
type InvalidSpecError struct {
	Spec string
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid repo name: %s", e.Spec)
}

// UnsupportedKindError reports a hosting service this tool cannot sync.
type UnsupportedKindError struct {
	Kind string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unknown repo type: %s", e.Kind)
}

// ParseSpec parses an "owner" or "owner/project" spec string into a
// Descriptor. When the project segment is absent it defaults to key,
// the registry name the spec was declared under. An empty kind means
// github; any other kind is unsupported.
func ParseSpec(kind, spec, key string) (Descriptor, error) {
	if kind != "" && Kind(kind) != KindGitHub {
		return Descriptor{}, &UnsupportedKindError{Kind: kind}
	}
	owner, project, found := strings.Cut(spec, "/")
	if !found {
		project = key
	}
	if owner == "" || project == "" || strings.Contains(project, "/") {
		return Descriptor{}, &InvalidSpecError{Spec: spec}
	}
	return Descriptor{Kind: KindGitHub, Owner: owner, Project: project}, nil
}
