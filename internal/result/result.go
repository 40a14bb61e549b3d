// Package result turns a finished selection into what the caller prints or builds.
package result

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evgfitil/cargo-query/internal/buildconfig"
	"github.com/evgfitil/cargo-query/internal/category"
	"github.com/evgfitil/cargo-query/internal/picker"
)

// Separator joins multi-select results.
const Separator = ","

var (
	// ErrCancelled indicates the user aborted the selection.
	ErrCancelled = errors.New("query cancelled")
	// ErrInvariantViolation indicates an outcome that breaks the category's cardinality.
	ErrInvariantViolation = errors.New("invariant violation")
)

// Format renders an outcome for stdout: the single choice, or the choices
// joined with Separator for multi-select categories.
func Format(outcome picker.Outcome, c category.Category) (string, error) {
	items, err := accepted(outcome, c)
	if err != nil {
		return "", err
	}
	if c.AllowsMulti() {
		return strings.Join(items, Separator), nil
	}
	return items[0], nil
}

// Dispatch pairs the single choice with the build mode its category implies.
func Dispatch(outcome picker.Outcome, c category.Category) (buildconfig.Invocation, error) {
	mode, err := c.Mode()
	if err != nil {
		return buildconfig.Invocation{}, err
	}
	items, err := accepted(outcome, c)
	if err != nil {
		return buildconfig.Invocation{}, err
	}
	if len(items) != 1 {
		return buildconfig.Invocation{}, fmt.Errorf("%w: cannot dispatch %d %s at once", ErrInvariantViolation, len(items), c)
	}
	return buildconfig.Invocation{Mode: mode, Category: c, Target: items[0]}, nil
}

func accepted(outcome picker.Outcome, c category.Category) ([]string, error) {
	switch o := outcome.(type) {
	case picker.Aborted:
		return nil, ErrCancelled
	case picker.Accepted:
		if len(o.Items) == 0 {
			return nil, fmt.Errorf("%w: accepted selection is empty", ErrInvariantViolation)
		}
		if !c.AllowsMulti() && len(o.Items) > 1 {
			return nil, fmt.Errorf("%w: %s allows one choice, got %d", ErrInvariantViolation, c, len(o.Items))
		}
		return o.Items, nil
	default:
		return nil, fmt.Errorf("%w: unexpected outcome type %T", ErrInvariantViolation, outcome)
	}
}
