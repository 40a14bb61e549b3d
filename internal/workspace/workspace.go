package workspace

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownPackage indicates a --package name that is not a workspace member.
var ErrUnknownPackage = errors.New("package not found in workspace")

// Workspace is the read-only view of a cargo workspace used by one invocation.
type Workspace struct {
	Root     string
	Packages []Package
}

// Package is a workspace member.
type Package struct {
	ID              string
	Name            string
	ManifestPath    string
	Features        []string
	DefaultFeatures []string
	Targets         []Target
}

// Target is a named buildable unit of a package.
type Target struct {
	Name             string
	Kinds            []string
	SrcPath          string
	RequiredFeatures []string
}

func (t Target) hasKind(kinds ...string) bool {
	for _, k := range t.Kinds {
		if slices.Contains(kinds, k) {
			return true
		}
	}
	return false
}

// IsBin reports whether the target is a binary executable.
func (t Target) IsBin() bool { return t.hasKind("bin") }

// IsExample reports whether the target lives under examples/.
func (t Target) IsExample() bool { return t.hasKind("example") }

// IsTest reports whether the target is an integration test.
func (t Target) IsTest() bool { return t.hasKind("test") }

// IsBench reports whether the target is a benchmark.
func (t Target) IsBench() bool { return t.hasKind("bench") }

// MissingFeatures returns the target's required features that a build of pkg
// with the given flags would not enable. Features turned on by other
// features are not followed.
func (pkg Package) MissingFeatures(t Target, enabled []string, all, noDefault bool) []string {
	if all {
		return nil
	}
	var missing []string
	for _, f := range t.RequiredFeatures {
		if slices.Contains(enabled, f) {
			continue
		}
		if !noDefault && slices.Contains(pkg.DefaultFeatures, f) {
			continue
		}
		missing = append(missing, f)
	}
	return missing
}

// Targets returns the targets of the selected packages in discovery order.
// With no names every member is selected.
func (w *Workspace) Targets(packages ...string) ([]Target, error) {
	selected := w.Packages
	if len(packages) > 0 {
		selected = make([]Package, 0, len(packages))
		for _, name := range packages {
			pkg, ok := w.Package(name)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownPackage, name)
			}
			selected = append(selected, pkg)
		}
	}

	var targets []Target
	for _, pkg := range selected {
		targets = append(targets, pkg.Targets...)
	}
	return targets, nil
}

// Find returns the first target named name that satisfies keep, with the
// package that owns it.
func (w *Workspace) Find(name string, keep func(Target) bool, packages ...string) (Package, Target, bool) {
	selected := w.Packages
	if len(packages) > 0 {
		selected = nil
		for _, p := range packages {
			if pkg, ok := w.Package(p); ok {
				selected = append(selected, pkg)
			}
		}
	}
	for _, pkg := range selected {
		for _, t := range pkg.Targets {
			if t.Name == name && keep(t) {
				return pkg, t, true
			}
		}
	}
	return Package{}, Target{}, false
}

// Package looks up a member by name.
func (w *Workspace) Package(name string) (Package, bool) {
	for _, pkg := range w.Packages {
		if pkg.Name == name {
			return pkg, true
		}
	}
	return Package{}, false
}
