package repo

import (
	"errors"
	"testing"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()

	r := NewRegistry()
	add := func(name, owner, project string, optional bool) {
		t.Helper()
		sel := Selection{
			Repo:     Descriptor{Kind: KindGitHub, Owner: owner, Project: project},
			Optional: optional,
		}
		if err := r.Add(name, sel); err != nil {
			t.Fatalf("Add(%q) failed: %v", name, err)
		}
	}
	add("dash", "magnars", "dash.el", false)
	add("use-package", "jweigley", "use-package", false)
	add("magit", "magit", "magit", true)
	return r
}

func TestResolveAll(t *testing.T) {
	t.Parallel()

	r := testRegistry(t)

	var got []Resolution
	for res := range r.Resolve(nil) {
		got = append(got, res)
	}

	wantNames := []string{"dash", "use-package", "magit"}
	if len(got) != len(wantNames) {
		t.Fatalf("Resolve(nil) yielded %d resolutions, want %d", len(got), len(wantNames))
	}
	for i, res := range got {
		if res.Err != nil {
			t.Fatalf("resolution %d: unexpected error: %v", i, res.Err)
		}
		if res.Name != wantNames[i] {
			t.Errorf("resolution %d: name = %q, want %q", i, res.Name, wantNames[i])
		}
	}
	if !got[2].Selection.Optional {
		t.Error("optional tag lost on untargeted traversal")
	}
}

func TestResolveTargeted(t *testing.T) {
	t.Parallel()

	r := testRegistry(t)

	var got []Resolution
	for res := range r.Resolve([]string{"magit", "dash"}) {
		got = append(got, res)
	}

	if len(got) != 2 {
		t.Fatalf("yielded %d resolutions, want 2", len(got))
	}
	if got[0].Name != "magit" || got[1].Name != "dash" {
		t.Errorf("names = %q, %q, want request order magit, dash", got[0].Name, got[1].Name)
	}
	if got[0].Selection.Optional {
		t.Error("explicit request must override the optional tag")
	}
}

func TestResolveNotFound(t *testing.T) {
	t.Parallel()

	r := testRegistry(t)

	var got []Resolution
	for res := range r.Resolve([]string{"dsh", "dash"}) {
		got = append(got, res)
	}

	if len(got) != 2 {
		t.Fatalf("yielded %d resolutions, want 2", len(got))
	}

	var nf *NotFoundError
	if !errors.As(got[0].Err, &nf) {
		t.Fatalf("resolution 0: error = %v, want *NotFoundError", got[0].Err)
	}
	if nf.Name != "dsh" {
		t.Errorf("NotFoundError.Name = %q, want %q", nf.Name, "dsh")
	}
	if nf.Suggestion != "dash" {
		t.Errorf("NotFoundError.Suggestion = %q, want %q", nf.Suggestion, "dash")
	}

	// A miss must not stop the traversal.
	if got[1].Err != nil {
		t.Errorf("resolution 1: unexpected error: %v", got[1].Err)
	}
	if got[1].Name != "dash" {
		t.Errorf("resolution 1: name = %q, want %q", got[1].Name, "dash")
	}
}

func TestResolveEmptyRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	var got []Resolution
	for res := range r.Resolve([]string{"anything"}) {
		got = append(got, res)
	}

	if len(got) != 1 {
		t.Fatalf("yielded %d resolutions, want 1", len(got))
	}

	var nf *NotFoundError
	if !errors.As(got[0].Err, &nf) {
		t.Fatalf("error = %v, want *NotFoundError", got[0].Err)
	}
	if nf.Suggestion != "" {
		t.Errorf("Suggestion = %q, want empty", nf.Suggestion)
	}
}

func TestAddDuplicate(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	sel := Selection{Repo: Descriptor{Kind: KindGitHub, Owner: "a", Project: "b"}}
	if err := r.Add("dash", sel); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	if err := r.Add("dash", sel); err == nil {
		t.Error("duplicate Add succeeded, want error")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}
