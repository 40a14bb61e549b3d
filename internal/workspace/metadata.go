package workspace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/tidwall/gjson"
)

const metadataFormatVersion = 1

// ErrMetadata indicates cargo metadata could not be obtained or understood.
var ErrMetadata = errors.New("invalid cargo metadata")

// Runner executes a command and returns its stdout.
type Runner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// Options configures how workspace metadata is loaded.
type Options struct {
	Cargo        string
	ManifestPath string
	Dir          string
	Run          Runner
}

// Load runs `cargo metadata` for the workspace and parses its output.
func Load(ctx context.Context, opts Options) (*Workspace, error) {
	cargo := opts.Cargo
	if cargo == "" {
		cargo = "cargo"
	}
	run := opts.Run
	if run == nil {
		run = execRunner
	}

	args := []string{"metadata", "--format-version", fmt.Sprint(metadataFormatVersion), "--no-deps"}
	if opts.ManifestPath != "" {
		args = append(args, "--manifest-path", opts.ManifestPath)
	}

	out, err := run(ctx, opts.Dir, cargo, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run cargo metadata: %w", err)
	}
	return Parse(out)
}

func execRunner(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := firstLine(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// Parse decodes `cargo metadata --format-version 1` output.
// Only workspace members are kept, in workspace_members order.
func Parse(data []byte) (*Workspace, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrMetadata)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMetadata)
	}
	if v := doc.Get("version"); v.Exists() && v.Int() != metadataFormatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", ErrMetadata, v.Int())
	}

	var all []Package
	byID := make(map[string]int)
	doc.Get("packages").ForEach(func(_, p gjson.Result) bool {
		pkg := parsePackage(p)
		byID[pkg.ID] = len(all)
		all = append(all, pkg)
		return true
	})

	ws := &Workspace{Root: doc.Get("workspace_root").String()}

	members := doc.Get("workspace_members")
	if !members.Exists() {
		ws.Packages = all
		return ws, nil
	}

	var missing error
	members.ForEach(func(_, id gjson.Result) bool {
		idx, ok := byID[id.String()]
		if !ok {
			missing = fmt.Errorf("%w: member %q has no package entry", ErrMetadata, id.String())
			return false
		}
		ws.Packages = append(ws.Packages, all[idx])
		return true
	})
	if missing != nil {
		return nil, missing
	}
	return ws, nil
}

func parsePackage(p gjson.Result) Package {
	pkg := Package{
		ID:           p.Get("id").String(),
		Name:         p.Get("name").String(),
		ManifestPath: p.Get("manifest_path").String(),
	}
	p.Get("features").ForEach(func(name, _ gjson.Result) bool {
		pkg.Features = append(pkg.Features, name.String())
		return true
	})
	pkg.DefaultFeatures = stringArray(p.Get("features.default"))
	p.Get("targets").ForEach(func(_, t gjson.Result) bool {
		pkg.Targets = append(pkg.Targets, Target{
			Name:             t.Get("name").String(),
			Kinds:            stringArray(t.Get("kind")),
			SrcPath:          t.Get("src_path").String(),
			RequiredFeatures: stringArray(t.Get("required-features")),
		})
		return true
	})
	return pkg
}

func stringArray(r gjson.Result) []string {
	var out []string
	for _, v := range r.Array() {
		out = append(out, v.String())
	}
	return out
}
