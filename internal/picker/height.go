package picker

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultHeightPercent is the share of the terminal the picker occupies.
	DefaultHeightPercent = 40
	// MinHeight is the smallest picker height in rows.
	MinHeight = 5
	// ReservedLines is the chrome around the candidate list: prompt and counter.
	ReservedLines = 3
)

// ErrInvalidHeight indicates a malformed height hint.
var ErrInvalidHeight = errors.New("invalid picker height")

// Height is a viewport hint. It only affects presentation.
type Height struct {
	Percent int
	Lines   int
	Auto    bool
}

// DefaultHeight returns the 40% hint.
func DefaultHeight() Height {
	return Height{Percent: DefaultHeightPercent}
}

// ParseHeight accepts "N%", "N" (rows), or "auto" (fit the candidates).
func ParseHeight(s string) (Height, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "":
		return DefaultHeight(), nil
	case s == "auto":
		return Height{Auto: true}, nil
	case strings.HasSuffix(s, "%"):
		n, err := strconv.Atoi(strings.TrimSuffix(s, "%"))
		if err != nil || n <= 0 || n > 100 {
			return Height{}, fmt.Errorf("%w %q: percentage must be between 1%% and 100%%", ErrInvalidHeight, s)
		}
		return Height{Percent: n}, nil
	default:
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return Height{}, fmt.Errorf("%w %q: expected N%%, N, or auto", ErrInvalidHeight, s)
		}
		return Height{Lines: n}, nil
	}
}

// Rows returns the picker height for a terminal of termRows rows showing
// candidates items.
func (h Height) Rows(termRows, candidates int) int {
	var rows int
	switch {
	case h.Auto:
		rows = candidates + ReservedLines
	case h.Lines > 0:
		rows = h.Lines
	default:
		pct := h.Percent
		if pct <= 0 {
			pct = DefaultHeightPercent
		}
		rows = termRows * pct / 100
	}
	rows = max(rows, MinHeight)
	if termRows > 0 {
		rows = min(rows, termRows)
	}
	return rows
}

func (h Height) String() string {
	switch {
	case h.Auto:
		return "auto"
	case h.Lines > 0:
		return strconv.Itoa(h.Lines)
	case h.Percent > 0:
		return fmt.Sprintf("%d%%", h.Percent)
	default:
		return fmt.Sprintf("%d%%", DefaultHeightPercent)
	}
}
