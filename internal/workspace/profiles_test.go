package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewProfiles_BuiltinsOnly(t *testing.T) {
	ws := &Workspace{Root: t.TempDir()}

	p, err := NewProfiles(ws, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"dev", "release", "test", "bench"}, p.Names())
}

func TestNewProfiles_CustomProfiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Cargo.toml"), `
[workspace]
members = ["app"]

[profile.release]
lto = true

[profile.release-lto]
inherits = "release"
codegen-units = 1

[profile.ci]
inherits = "dev"
`)
	writeFile(t, filepath.Join(root, ".cargo", "config.toml"), `
[profile.profiling]
inherits = "release-lto"
debug = true

[profile.ci]
incremental = false
`)

	p, err := NewProfiles(&Workspace{Root: root}, "profiling")
	require.NoError(t, err)

	assert.Equal(t, []string{"dev", "release", "test", "bench", "ci", "profiling", "release-lto"}, p.Names())
}

func TestNewProfiles_NamesHaveNoDuplicates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Cargo.toml"), "[profile.dev]\nopt-level = 1\n[profile.fast]\ninherits = \"release\"\n")
	writeFile(t, filepath.Join(root, ".cargo", "config.toml"), "[profile.fast]\ninherits = \"release\"\n")

	p, err := NewProfiles(&Workspace{Root: root}, "release")
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, name := range p.Names() {
		assert.False(t, seen[name], "duplicate profile %q", name)
		seen[name] = true
	}
	assert.Len(t, p.Names(), 5)
}

func TestNewProfiles_Errors(t *testing.T) {
	tests := []struct {
		name      string
		manifest  string
		requested string
		wantErr   error
	}{
		{
			name:      "unknown requested profile",
			requested: "nightly",
			wantErr:   ErrProfileNotDefined,
		},
		{
			name:     "missing inherits",
			manifest: "[profile.fast]\nopt-level = 3\n",
			wantErr:  ErrInvalidProfile,
		},
		{
			name:     "inherits undefined profile",
			manifest: "[profile.fast]\ninherits = \"ghost\"\n",
			wantErr:  ErrInvalidProfile,
		},
		{
			name:     "inheritance loop",
			manifest: "[profile.a]\ninherits = \"b\"\n[profile.b]\ninherits = \"a\"\n",
			wantErr:  ErrInvalidProfile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.manifest != "" {
				writeFile(t, filepath.Join(root, "Cargo.toml"), tt.manifest)
			}

			_, err := NewProfiles(&Workspace{Root: root}, tt.requested)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewProfiles_MalformedManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Cargo.toml"), "[profile.fast\n")

	_, err := NewProfiles(&Workspace{Root: root}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}
