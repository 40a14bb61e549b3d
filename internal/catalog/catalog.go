// Package catalog enumerates the candidate names offered for a query category.
package catalog

import (
	"fmt"

	"github.com/evgfitil/cargo-query/internal/buildconfig"
	"github.com/evgfitil/cargo-query/internal/category"
	"github.com/evgfitil/cargo-query/internal/workspace"
)

// Enumerate returns the ordered, duplicate-free candidate names for c.
// An empty result is not an error.
func Enumerate(c category.Category, ws *workspace.Workspace, cfg buildconfig.Config) ([]string, error) {
	if c.ListsProfiles() {
		return profiles(ws, cfg)
	}

	pred, err := c.Predicate()
	if err != nil {
		return nil, err
	}

	targets, err := ws.Targets(cfg.Packages...)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, t := range targets {
		if pred(t) {
			names = append(names, t.Name)
		}
	}
	return unique(names), nil
}

func profiles(ws *workspace.Workspace, cfg buildconfig.Config) ([]string, error) {
	requested, err := cfg.RequestedProfile()
	if err != nil {
		return nil, err
	}
	p, err := workspace.NewProfiles(ws, requested)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profiles: %w", err)
	}
	return unique(p.Names()), nil
}

// unique drops repeated names, keeping the first occurrence.
func unique(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
