package shell

import (
	"strings"
	"testing"
)

func TestScript(t *testing.T) {
	tests := []struct {
		name    string
		shell   string
		wantErr bool
	}{
		{name: "bash returns script", shell: "bash"},
		{name: "zsh returns script", shell: "zsh"},
		{name: "fish returns script", shell: "fish"},
		{name: "unsupported shell returns error", shell: "powershell", wantErr: true},
		{name: "empty shell returns error", shell: "", wantErr: true},
		{name: "case sensitive BASH", shell: "BASH", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, err := Script(tt.shell)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if script != "" {
					t.Errorf("expected empty script on error, got: %q", script)
				}
				if !strings.Contains(err.Error(), "unsupported shell") {
					t.Errorf("error should mention 'unsupported shell', got: %s", err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if script == "" {
				t.Fatal("expected non-empty script")
			}
		})
	}
}

func TestScriptDefinesHelpers(t *testing.T) {
	for _, sh := range []string{"bash", "zsh", "fish"} {
		t.Run(sh, func(t *testing.T) {
			script, err := Script(sh)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, helper := range Helpers {
				if !strings.Contains(script, helper) {
					t.Errorf("%s script should define %s", sh, helper)
				}
			}
			for _, part := range []string{"CARGO_QUERY_PATH", "query", "--bin", "--example", "--test", "--bench"} {
				if !strings.Contains(script, part) {
					t.Errorf("%s script should contain %q", sh, part)
				}
			}
		})
	}
}

// Cancelling the picker must leave cargo unrun.
func TestScriptStopsOnCancel(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "return 130"},
		{"zsh", "return 130"},
		{"fish", "return $exit_code"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			script, err := Script(tt.shell)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(script, tt.want) {
				t.Errorf("%s script should contain %q", tt.shell, tt.want)
			}
		})
	}
}
