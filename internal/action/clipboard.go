package action

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// CopyToClipboard copies the selection to the system clipboard.
func CopyToClipboard(selection string) error {
	if err := clipboard.WriteAll(selection); err != nil {
		return fmt.Errorf("clipboard copy failed: %w", err)
	}
	return nil
}
