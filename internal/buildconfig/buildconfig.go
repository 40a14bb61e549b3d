// Package buildconfig carries the cargo build flags that query passes through
// to workspace resolution and to a dispatched build.
package buildconfig

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/evgfitil/cargo-query/internal/category"
	"github.com/evgfitil/cargo-query/internal/workspace"
)

// ErrConflictingProfile indicates --release and --profile disagree.
var ErrConflictingProfile = errors.New("conflicting usage of --profile and --release")

// Config is the build configuration requested on the command line.
type Config struct {
	Features          []string
	AllFeatures       bool
	NoDefaultFeatures bool
	Jobs              int
	MessageFormat     []string
	Profile           string
	Release           bool
	Targets           []string
	Packages          []string
	ManifestPath      string
}

// Invocation is a dispatch pair: the build mode and the chosen name.
type Invocation struct {
	Mode     category.Mode
	Category category.Category
	Target   string
}

// RequestedProfile resolves --profile and --release into one profile name.
func (c Config) RequestedProfile() (string, error) {
	switch {
	case c.Release && c.Profile != "" && c.Profile != "release":
		return "", fmt.Errorf("%w: --release implies profile `release`, got `%s`", ErrConflictingProfile, c.Profile)
	case c.Profile != "":
		return c.Profile, nil
	case c.Release:
		return "release", nil
	default:
		return workspace.DefaultProfile, nil
	}
}

// FeatureList splits repeated and comma/space separated --features values.
func (c Config) FeatureList() []string {
	var out []string
	seen := make(map[string]bool)
	for _, raw := range c.Features {
		for _, f := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' }) {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}

// Args renders the cargo argv for a dispatch. The build flags follow the
// subcommand untouched.
func (c Config) Args(inv Invocation) ([]string, error) {
	flag, err := inv.Category.TargetFlag()
	if err != nil {
		return nil, err
	}

	var args []string
	switch inv.Mode {
	case category.ModeBuild:
		args = []string{"build"}
	case category.ModeTest:
		args = []string{"test", "--no-run"}
	case category.ModeBench:
		args = []string{"bench", "--no-run"}
	default:
		return nil, fmt.Errorf("unsupported build mode %s", inv.Mode)
	}
	args = append(args, flag, inv.Target)

	for _, p := range c.Packages {
		args = append(args, "--package", p)
	}
	if c.ManifestPath != "" {
		args = append(args, "--manifest-path", c.ManifestPath)
	}
	if features := c.FeatureList(); len(features) > 0 {
		args = append(args, "--features", strings.Join(features, ","))
	}
	if c.AllFeatures {
		args = append(args, "--all-features")
	}
	if c.NoDefaultFeatures {
		args = append(args, "--no-default-features")
	}
	if c.Jobs != 0 {
		args = append(args, "--jobs", strconv.Itoa(c.Jobs))
	}
	for _, mf := range c.MessageFormat {
		args = append(args, "--message-format", mf)
	}
	// --profile already names the chosen profile for the Profile category.
	if inv.Category != category.Profile {
		if c.Profile != "" {
			args = append(args, "--profile", c.Profile)
		} else if c.Release {
			args = append(args, "--release")
		}
	}
	for _, t := range c.Targets {
		args = append(args, "--target", t)
	}
	return args, nil
}
