package action

import (
	"testing"

	"github.com/atotto/clipboard"
)

func TestCopyToClipboard(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("clipboard not available in this environment")
	}

	tests := []string{
		"server",
		"json,metrics,tls",
		"",
	}

	for _, text := range tests {
		if err := CopyToClipboard(text); err != nil {
			t.Fatalf("CopyToClipboard(%q) returned error: %v", text, err)
		}

		got, err := clipboard.ReadAll()
		if err != nil {
			t.Fatalf("clipboard.ReadAll() returned error: %v", err)
		}
		if got != text {
			t.Errorf("clipboard content = %q, want %q", got, text)
		}
	}
}
