package expr

import (
	"errors"
	"testing"

	"github.com/vango-dev/mathlive/pkg/pipeline"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in    string
		text  string
		latex string
	}{
		{"x", "x", "x"},
		{"x*y*z", "x * y * z", "x y z"},
		{"(x * y) * z", "(x * y) * z", `\left(x y\right) z`},
		{"x + y - π", "x + y - π", `x+y-\pi`},
		{`x + y - \pi`, "x + y - π", `x+y-\pi`},
		{"-(x + y) + 2", "-(x + y) + 2", `-\left(x+y\right)+2`},
		{"((x + y) + y) * (x * y) * ((z * x) + y)", "((x + y) + y) * (x * y) * (z * x + y)", `\left(\left(x+y\right)+y\right) \left(x y\right) \left(z x+y\right)`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			e, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if got := Text(e); got != tt.text {
				t.Errorf("Text() = %q, want %q", got, tt.text)
			}
			if got := LaTeX(e); got != tt.latex {
				t.Errorf("LaTeX() = %q, want %q", got, tt.latex)
			}
		})
	}
}

func TestParseKeepsChainsFlat(t *testing.T) {
	e, err := Parse("a + b - c * d * e")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sum, ok := e.(*Sum)
	if !ok || len(sum.Terms) != 3 {
		t.Fatalf("Parse() = %#v, want a sum of 3 terms", e)
	}
	neg, ok := sum.Terms[2].(*Negation)
	if !ok {
		t.Fatalf("third term = %T, want *Negation", sum.Terms[2])
	}
	if p, ok := neg.Inner.(*Product); !ok || len(p.Terms) != 3 {
		t.Errorf("negated term = %s, want a product of 3 factors", neg.Inner)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in      string
		message string
		at      int
	}{
		{"", "Expected an expression", 0},
		{"x +", "Expected an expression", 3},
		{"(x + y", "Expected ')' to close '(' at 0", 6},
		{"x y", "Unexpected 'y'", 2},
		{"x / y", "Unexpected '/'", 2},
		{`π * \foo`, `Unknown constant \foo`, 4},
		{"2πr", "Unexpected 'π'", 1},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Parse(tt.in)

			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Parse(%q) err = %v, want *SyntaxError", tt.in, err)
			}
			if se.Message != tt.message || se.At != tt.at {
				t.Errorf("Parse(%q) = %q at %d, want %q at %d", tt.in, se.Message, se.At, tt.message, tt.at)
			}

			var pos pipeline.Positioned
			if !errors.As(err, &pos) || pos.Offset() != tt.at {
				t.Errorf("SyntaxError should report its offset as a pipeline.Positioned")
			}
		})
	}
}
