// Package picker runs one interactive selection over a candidate list.
package picker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evgfitil/cargo-query/internal/tty"
)

// DefaultPrompt is shown in front of the filter input.
const DefaultPrompt = "Choose> "

var (
	// ErrAborted indicates user cancelled selection
	ErrAborted = errors.New("selection aborted")
	// ErrInvalidCandidate indicates a candidate that cannot be shown on one line.
	ErrInvalidCandidate = errors.New("invalid candidate")
)

// UIError indicates the picker could not start or stopped abnormally,
// as opposed to the user declining to choose.
type UIError struct {
	Err error
}

func (e *UIError) Error() string {
	return fmt.Sprintf("picker failed: %v", e.Err)
}

func (e *UIError) Unwrap() error {
	return e.Err
}

// Request is what a Backend is asked to present.
type Request struct {
	Items     []string
	Multi     bool
	Prompt    string
	Height    Height
	SelectOne bool
}

// Backend presents candidates and returns the chosen indexes in the order the
// user finalized them. It returns ErrAborted when the user cancels.
type Backend interface {
	Select(req Request) ([]int, error)
}

// Options configures one session.
type Options struct {
	Multi     bool
	Prompt    string
	Height    Height
	SelectOne bool
}

// Session drives a Backend while holding the terminal.
type Session struct {
	backend Backend
	acquire func() (release func())
}

// NewSession creates a Session over the given backend.
func NewSession(b Backend) *Session {
	return &Session{backend: b, acquire: acquireTerminal}
}

func acquireTerminal() func() {
	return tty.Acquire().Release
}

// Run presents candidates and blocks until the user accepts or aborts.
// The terminal is restored on every return path.
func (s *Session) Run(candidates []string, opts Options) (Outcome, error) {
	if err := validate(candidates); err != nil {
		return nil, err
	}

	prompt := opts.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	release := s.acquire()
	defer release()

	idxs, err := s.backend.Select(Request{
		Items:     candidates,
		Multi:     opts.Multi,
		Prompt:    prompt,
		Height:    opts.Height,
		SelectOne: opts.SelectOne,
	})
	if err != nil {
		if errors.Is(err, ErrAborted) {
			return Aborted{}, nil
		}
		return nil, &UIError{Err: err}
	}

	if len(idxs) == 0 {
		return Aborted{}, nil
	}
	// Single-select keeps only the first index even if the backend tagged more.
	if !opts.Multi {
		idxs = idxs[:1]
	}

	chosen := make([]string, 0, len(idxs))
	for _, i := range idxs {
		if i < 0 || i >= len(candidates) {
			return nil, &UIError{Err: fmt.Errorf("index %d out of range for %d candidates", i, len(candidates))}
		}
		chosen = append(chosen, candidates[i])
	}
	return Accepted{Items: chosen}, nil
}

func validate(candidates []string) error {
	for i, c := range candidates {
		if c == "" {
			return fmt.Errorf("%w: candidate %d is empty", ErrInvalidCandidate, i)
		}
		if strings.ContainsAny(c, "\r\n") {
			return fmt.Errorf("%w: candidate %q spans more than one line", ErrInvalidCandidate, c)
		}
	}
	return nil
}
