// Package category maps a query category to how its candidates are found,
// how many may be chosen, and what build mode a choice implies.
package category

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evgfitil/cargo-query/internal/workspace"
)

var (
	// ErrUnknown indicates a category token that names no category.
	ErrUnknown = errors.New("unknown query type")
	// ErrUnsupported indicates a category without a predicate, build mode, or enumeration strategy.
	ErrUnsupported = errors.New("unsupported query type")
)

// Category is a query category.
type Category int

const (
	Binaries Category = iota
	Examples
	Tests
	Benches
	Features
	Profile
)

// Mode is the build action a selection implies.
type Mode int

const (
	ModeBuild Mode = iota
	ModeTest
	ModeBench
)

func (m Mode) String() string {
	switch m {
	case ModeBuild:
		return "build"
	case ModeTest:
		return "test"
	case ModeBench:
		return "bench"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Predicate tests whether a workspace target belongs to a category.
type Predicate func(workspace.Target) bool

type entry struct {
	name        string
	predicate   Predicate
	multi       bool
	mode        Mode
	hasMode     bool
	targetFlag  string
	profileList bool
}

var table = map[Category]entry{
	Binaries: {name: "binaries", predicate: workspace.Target.IsBin, mode: ModeBuild, hasMode: true, targetFlag: "--bin"},
	Examples: {name: "examples", predicate: workspace.Target.IsExample, mode: ModeBuild, hasMode: true, targetFlag: "--example"},
	Tests:    {name: "tests", predicate: workspace.Target.IsTest, mode: ModeTest, hasMode: true, targetFlag: "--test"},
	Benches:  {name: "benches", predicate: workspace.Target.IsBench, mode: ModeBench, hasMode: true, targetFlag: "--bench"},
	// TODO: enumerate manifest [features] once the feature source is settled
	// (workspace members only vs. every package in the graph).
	Features: {name: "features", multi: true},
	Profile:  {name: "profile", mode: ModeBuild, hasMode: true, targetFlag: "--profile", profileList: true},
}

var aliases = map[string]Category{
	"profiles": Profile,
}

// All returns every category in declaration order.
func All() []Category {
	return []Category{Binaries, Examples, Tests, Benches, Features, Profile}
}

// Names returns the accepted category tokens in declaration order.
func Names() []string {
	names := make([]string, 0, len(table))
	for _, c := range All() {
		names = append(names, c.String())
	}
	return names
}

// Parse resolves a category token case-insensitively.
func Parse(s string) (Category, error) {
	token := strings.ToLower(strings.TrimSpace(s))
	for _, c := range All() {
		if table[c].name == token {
			return c, nil
		}
	}
	if c, ok := aliases[token]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w %q (expected one of: %s)", ErrUnknown, s, strings.Join(Names(), ", "))
}

func (c Category) String() string {
	if e, ok := table[c]; ok {
		return e.name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Predicate returns the target membership test for build-target categories.
func (c Category) Predicate() (Predicate, error) {
	e, ok := table[c]
	if !ok || e.predicate == nil {
		return nil, fmt.Errorf("%w: %s cannot filter build targets", ErrUnsupported, c)
	}
	return e.predicate, nil
}

// AllowsMulti reports whether more than one candidate may be chosen.
func (c Category) AllowsMulti() bool {
	return table[c].multi
}

// Mode returns the build mode a selection in this category implies.
func (c Category) Mode() (Mode, error) {
	e, ok := table[c]
	if !ok || !e.hasMode {
		return 0, fmt.Errorf("%w: %s has no build mode", ErrUnsupported, c)
	}
	return e.mode, nil
}

// TargetFlag returns the cargo flag that selects a chosen candidate, e.g. --bin.
func (c Category) TargetFlag() (string, error) {
	e, ok := table[c]
	if !ok || e.targetFlag == "" {
		return "", fmt.Errorf("%w: %s cannot be passed to cargo", ErrUnsupported, c)
	}
	return e.targetFlag, nil
}

// ListsProfiles reports whether candidates are profile names rather than targets.
func (c Category) ListsProfiles() bool {
	return table[c].profileList
}
