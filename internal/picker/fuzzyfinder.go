package picker

import (
	"errors"

	"github.com/ktr0731/go-fuzzyfinder"
)

// Finder is the subset of go-fuzzyfinder used by FuzzyFinder.
type Finder interface {
	Find(slice interface{}, itemFunc func(i int) string, opts ...fuzzyfinder.Option) (int, error)
	FindMulti(slice interface{}, itemFunc func(i int) string, opts ...fuzzyfinder.Option) ([]int, error)
}

type defaultFinder struct{}

func (defaultFinder) Find(slice interface{}, itemFunc func(i int) string, opts ...fuzzyfinder.Option) (int, error) {
	return fuzzyfinder.Find(slice, itemFunc, opts...)
}

func (defaultFinder) FindMulti(slice interface{}, itemFunc func(i int) string, opts ...fuzzyfinder.Option) ([]int, error) {
	return fuzzyfinder.FindMulti(slice, itemFunc, opts...)
}

// FuzzyFinder is the fzf-style full-screen backend. It takes the whole
// terminal, so the height hint is not used.
type FuzzyFinder struct {
	finder Finder
}

// NewFuzzyFinder returns a backend on the real terminal.
func NewFuzzyFinder() *FuzzyFinder {
	return &FuzzyFinder{finder: defaultFinder{}}
}

// NewFuzzyFinderWith returns a backend using f, e.g. a mocked-terminal finder.
func NewFuzzyFinderWith(f Finder) *FuzzyFinder {
	return &FuzzyFinder{finder: f}
}

// Select implements Backend.
func (f *FuzzyFinder) Select(req Request) ([]int, error) {
	var opts []fuzzyfinder.Option
	if req.Prompt != "" {
		opts = append(opts, fuzzyfinder.WithPromptString(req.Prompt))
	}
	if req.SelectOne {
		opts = append(opts, fuzzyfinder.WithSelectOne())
	}

	display := func(i int) string {
		return req.Items[i]
	}

	if req.Multi {
		idxs, err := f.finder.FindMulti(req.Items, display, opts...)
		if err != nil {
			return nil, mapFinderErr(err)
		}
		return idxs, nil
	}

	idx, err := f.finder.Find(req.Items, display, opts...)
	if err != nil {
		return nil, mapFinderErr(err)
	}
	return []int{idx}, nil
}

func mapFinderErr(err error) error {
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return ErrAborted
	}
	return err
}
