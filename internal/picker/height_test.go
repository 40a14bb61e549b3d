package picker

import (
	"errors"
	"testing"
)

func TestParseHeight(t *testing.T) {
	tests := []struct {
		input string
		want  Height
	}{
		{"", Height{Percent: 40}},
		{"40%", Height{Percent: 40}},
		{" 100% ", Height{Percent: 100}},
		{"12", Height{Lines: 12}},
		{"auto", Height{Auto: true}},
		{"AUTO", Height{Auto: true}},
	}

	for _, tt := range tests {
		got, err := ParseHeight(tt.input)
		if err != nil {
			t.Errorf("ParseHeight(%q) returned error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHeight(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestParseHeight_Invalid(t *testing.T) {
	for _, input := range []string{"0%", "101%", "-3", "0", "tall", "%"} {
		if _, err := ParseHeight(input); !errors.Is(err, ErrInvalidHeight) {
			t.Errorf("ParseHeight(%q) error = %v, want ErrInvalidHeight", input, err)
		}
	}
}

func TestHeight_Rows(t *testing.T) {
	tests := []struct {
		name       string
		h          Height
		termRows   int
		candidates int
		want       int
	}{
		{name: "percent", h: Height{Percent: 40}, termRows: 50, want: 20},
		{name: "zero value uses default percent", h: Height{}, termRows: 50, want: 20},
		{name: "percent floors at minimum", h: Height{Percent: 10}, termRows: 20, want: MinHeight},
		{name: "lines", h: Height{Lines: 8}, termRows: 50, want: 8},
		{name: "lines capped by terminal", h: Height{Lines: 80}, termRows: 24, want: 24},
		{name: "auto fits candidates", h: Height{Auto: true}, termRows: 50, candidates: 7, want: 10},
		{name: "auto with few candidates", h: Height{Auto: true}, termRows: 50, candidates: 0, want: MinHeight},
		{name: "auto capped by terminal", h: Height{Auto: true}, termRows: 24, candidates: 100, want: 24},
		{name: "unknown terminal size", h: Height{Lines: 30}, termRows: 0, want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.h.Rows(tt.termRows, tt.candidates); got != tt.want {
				t.Errorf("Rows() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHeight_String(t *testing.T) {
	for input, want := range map[string]string{"40%": "40%", "12": "12", "auto": "auto", "": "40%"} {
		h, err := ParseHeight(input)
		if err != nil {
			t.Fatalf("ParseHeight(%q): %v", input, err)
		}
		if h.String() != want {
			t.Errorf("String() = %q, want %q", h.String(), want)
		}
	}
	if (Height{}).String() != "40%" {
		t.Error("zero Height should render as the default")
	}
}
