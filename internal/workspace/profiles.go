package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// ErrProfileNotDefined indicates the requested profile is unknown to the workspace.
var ErrProfileNotDefined = errors.New("profile is not defined")

// ErrInvalidProfile indicates a malformed [profile.NAME] table.
var ErrInvalidProfile = errors.New("invalid profile")

// DefaultProfile is used when no profile was requested.
const DefaultProfile = "dev"

var builtinProfiles = []string{"dev", "release", "test", "bench"}

// Profiles is the profile-resolution context for one workspace and requested profile.
type Profiles struct {
	names    []string
	inherits map[string]string
}

type profileFile struct {
	Profile map[string]profileTable `toml:"profile"`
}

type profileTable struct {
	Inherits string `toml:"inherits"`
}

// NewProfiles collects built-in profiles plus custom [profile.NAME] tables from
// the workspace manifest and .cargo/config.toml, then checks that requested
// resolves against them.
func NewProfiles(ws *Workspace, requested string) (*Profiles, error) {
	if requested == "" {
		requested = DefaultProfile
	}

	p := &Profiles{
		names:    slices.Clone(builtinProfiles),
		inherits: make(map[string]string),
	}

	for _, path := range profileSources(ws.Root) {
		tables, err := readProfiles(path)
		if err != nil {
			return nil, err
		}
		for name, table := range tables {
			if slices.Contains(builtinProfiles, name) {
				continue
			}
			if table.Inherits != "" {
				p.inherits[name] = table.Inherits
			} else if _, seen := p.inherits[name]; !seen {
				p.inherits[name] = ""
			}
		}
	}

	custom := make([]string, 0, len(p.inherits))
	for name := range p.inherits {
		custom = append(custom, name)
	}
	sort.Strings(custom)

	for _, name := range custom {
		if err := p.checkInherits(name); err != nil {
			return nil, err
		}
	}
	p.names = append(p.names, custom...)

	if !slices.Contains(p.names, requested) {
		return nil, fmt.Errorf("%w: `%s`", ErrProfileNotDefined, requested)
	}
	return p, nil
}

func profileSources(root string) []string {
	if root == "" {
		return nil
	}
	return []string{
		filepath.Join(root, "Cargo.toml"),
		filepath.Join(root, ".cargo", "config.toml"),
		filepath.Join(root, ".cargo", "config"),
	}
}

func readProfiles(path string) (map[string]profileTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var f profileFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return f.Profile, nil
}

// checkInherits walks the inherits chain of a custom profile until it reaches a built-in.
func (p *Profiles) checkInherits(name string) error {
	seen := map[string]bool{name: true}
	current := name
	for {
		parent, custom := p.inherits[current]
		if !custom {
			if slices.Contains(builtinProfiles, current) {
				return nil
			}
			return fmt.Errorf("%w: profile `%s` inherits from `%s`, but that profile is not defined", ErrInvalidProfile, name, current)
		}
		if parent == "" {
			return fmt.Errorf("%w: profile `%s` is missing an `inherits` directive", ErrInvalidProfile, current)
		}
		if seen[parent] {
			return fmt.Errorf("%w: profile inheritance loop detected with profile `%s` inheriting `%s`", ErrInvalidProfile, current, parent)
		}
		seen[parent] = true
		current = parent
	}
}

// Names lists every profile known to the workspace: built-ins first, then
// custom profiles sorted by name.
func (p *Profiles) Names() []string {
	return slices.Clone(p.names)
}
