package repo

import (
	"fmt"
	"iter"
	"slices"

	"github.com/sahilm/fuzzy"
)

// NotFoundError reports a requested name with no registry entry.
type NotFoundError struct {
	Name       string
	Suggestion string // closest registry name, if any
}

func (e *NotFoundError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown repo: %s (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown repo: %s", e.Name)
}

// Resolution is one step of a registry traversal: either a selection
// to sync or the error for a requested name that has no entry.
type Resolution struct {
	Name      string
	Selection Selection
	Err       error
}

// Registry is the insertion-ordered set of configured repositories.
// It is built once from configuration and read-only afterwards.
type Registry struct {
	names   []string
	entries map[string]Selection
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Selection)}
}

// Add appends a named selection. Names must be unique.
func (r *Registry) Add(name string, sel Selection) error {
	if _, ok := r.entries[name]; ok {
		return fmt.Errorf("duplicate repo: %s", name)
	}
	r.names = append(r.names, name)
	r.entries[name] = sel
	return nil
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.names)
}

// Names returns the entry names in declaration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Get looks up a selection by name.
func (r *Registry) Get(name string) (Selection, bool) {
	sel, ok := r.entries[name]
	return sel, ok
}

// Resolve yields the selections to sync, lazily and in a single pass.
//
// With no names, every entry is yielded in declaration order with its
// Optional tag intact. With names, each requested name is looked up in
// request order: hits are forced explicit, since an explicit request
// overrides Optional gating; misses yield a Resolution whose Err is a
// *NotFoundError, and the traversal moves on to the next name.
func (r *Registry) Resolve(names []string) iter.Seq[Resolution] {
	return func(yield func(Resolution) bool) {
		if len(names) == 0 {
			for _, name := range r.names {
				if !yield(Resolution{Name: name, Selection: r.entries[name]}) {
					return
				}
			}
			return
		}
		for _, name := range names {
			res := Resolution{Name: name}
			if sel, ok := r.entries[name]; ok {
				sel.Optional = false
				res.Selection = sel
			} else {
				res.Err = &NotFoundError{Name: name, Suggestion: r.suggest(name)}
			}
			if !yield(res) {
				return
			}
		}
	}
}

// suggest returns the registry name closest to name, or "" when
// nothing matches.
func (r *Registry) suggest(name string) string {
	matches := fuzzy.Find(name, r.names)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
