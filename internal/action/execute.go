package action

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/mattn/go-isatty"
)

// ExitError wraps a subprocess exit code so callers can propagate it.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Build runs cargo with the given arguments. Cargo output goes to out so
// stdout stays reserved for the selection. If stdin is a terminal it is
// passed through; otherwise /dev/tty is opened so cargo can prompt.
func Build(ctx context.Context, cargo string, args []string, out io.Writer) error {
	cmd := exec.CommandContext(ctx, cargo, args...)

	cmd.Stdout = out
	cmd.Stderr = out

	cmd.Stdin = os.Stdin
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		if tty, err := os.Open("/dev/tty"); err == nil {
			defer func() { _ = tty.Close() }()
			cmd.Stdin = tty
		}
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("%s execution failed: %w", cargo, err)
	}
	return nil
}
