package action

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// ErrCancelled indicates the user cancelled without choosing an action.
var ErrCancelled = errors.New("action cancelled")

// Action represents a post-selection action chosen by the user.
type Action int

const (
	ActionBuild Action = iota
	ActionCopy
	ActionQuit
	ActionCancel
)

// Menu runs the post-selection action menu.
type Menu struct {
	// Out receives the selection for every action except cancel.
	Out io.Writer
	// Prompt receives the menu text.
	Prompt io.Writer
	// Build dispatches the selection to cargo.
	Build func() error
}

// ShouldPrompt returns true if stdout is a TTY, meaning the user is
// interacting directly with the terminal and should see the action menu.
func ShouldPrompt() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// readKeypress reads a single keypress from the given reader, which should
// be in raw mode. Handles multi-byte escape sequences by draining trailing
// bytes so they don't leak into the parent shell. Other keys are ignored.
func readKeypress(r io.Reader) (Action, error) {
	buf := make([]byte, 1)
	for {
		if _, err := r.Read(buf); err != nil {
			return ActionQuit, fmt.Errorf("failed to read keypress: %w", err)
		}

		switch buf[0] {
		case 'b', 'B':
			return ActionBuild, nil
		case 'c', 'C':
			return ActionCopy, nil
		case 'q', 'Q', '\r', '\n':
			return ActionQuit, nil
		case 0x03: // Ctrl+C
			return ActionCancel, nil
		case 0x1b: // Escape (may be start of multi-byte sequence)
			drainEscapeSequence(r)
			return ActionCancel, nil
		}
	}
}

// drainEscapeSequence reads and discards trailing bytes of a multi-byte
// escape sequence (arrow keys send 3 bytes). Uses a short deadline when the
// reader supports it (e.g. *os.File on Unix).
func drainEscapeSequence(r io.Reader) {
	type deadliner interface {
		SetReadDeadline(t time.Time) error
	}
	if d, ok := r.(deadliner); ok {
		_ = d.SetReadDeadline(time.Now().Add(10 * time.Millisecond))
		defer func() { _ = d.SetReadDeadline(time.Time{}) }()
	}
	discard := make([]byte, 8)
	_, _ = r.Read(discard)
}

// Run displays the selection and the action menu, then dispatches the
// chosen action. It reads input from /dev/tty to avoid conflicts with
// piped stdin.
func (m Menu) Run(selection string) error {
	return m.runWith(selection, nil)
}

// runWith is the testable core of Run. When ttyReader is nil, it opens
// /dev/tty and sets raw mode; otherwise it reads from the provided reader.
func (m Menu) runWith(selection string, ttyReader io.Reader) error {
	hi := "\033[38;5;205m"
	rs := "\033[0m"
	fmt.Fprintf(m.Prompt, "\n  %s\n\n  [%sb%s]uild  [%sc%s]opy  [%sq%s]uit ", selection, hi, rs, hi, rs, hi, rs)

	act, err := readAction(ttyReader)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.Prompt)

	return m.dispatch(act, selection)
}

// readAction reads a single-keypress action from the given reader or /dev/tty.
func readAction(ttyReader io.Reader) (Action, error) {
	if ttyReader != nil {
		return readKeypress(ttyReader)
	}

	tty, err := os.Open("/dev/tty")
	if err != nil {
		return ActionQuit, fmt.Errorf("failed to open /dev/tty: %w", err)
	}
	defer func() { _ = tty.Close() }()

	oldState, err := term.MakeRaw(int(tty.Fd()))
	if err != nil {
		return ActionQuit, fmt.Errorf("failed to set raw mode: %w", err)
	}
	defer func() { _ = term.Restore(int(tty.Fd()), oldState) }()

	return readKeypress(tty)
}

// dispatch prints the selection and performs the chosen action.
func (m Menu) dispatch(act Action, selection string) error {
	if act == ActionCancel {
		return ErrCancelled
	}

	switch act {
	case ActionBuild:
		fmt.Fprintln(m.Out, selection)
		return m.Build()
	case ActionCopy:
		if err := CopyToClipboard(selection); err != nil {
			return err
		}
		fmt.Fprintln(m.Prompt, "Copied to clipboard.")
		fmt.Fprintln(m.Out, selection)
		return nil
	case ActionQuit:
		fmt.Fprintln(m.Out, selection)
		return nil
	default:
		return fmt.Errorf("unknown action: %d", act)
	}
}
