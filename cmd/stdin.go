package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const maxStdinSize = 32 << 20 // 32MB

// ErrStdinTooLarge indicates piped input exceeds the size limit.
var ErrStdinTooLarge = errors.New("stdin input too large (max 32MB)")

// stdinFile is the source of piped cargo metadata.
var stdinFile = os.Stdin

// readStdin detects piped cargo metadata and reads it.
// Returns empty string if stdin is a TTY (no pipe).
func readStdin() (string, error) {
	return readFromReader(stdinFile)
}

// readFromReader reads piped input from the given file descriptor.
func readFromReader(f *os.File) (string, error) {
	if f == nil || isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return "", nil
	}

	limited := io.LimitReader(f, int64(maxStdinSize)+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}

	if len(data) > maxStdinSize {
		return "", ErrStdinTooLarge
	}

	return strings.TrimSpace(string(data)), nil
}
