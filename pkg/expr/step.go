package expr

import "strings"

// Step is one labelled rewrite of an expression. Substeps are the smaller
// rewrites it is made of, and Result is the expression after all of them.
type Step struct {
	Label string

	// Before is the expression the step starts from, with the nodes it
	// rewrites marked. Steps made only of substeps leave it nil.
	Before *Annotated

	Substeps []*Step
	Result   Expr
}

// String prints the step as an indented outline:
//
//	Simplify excess parentheses
//	  Remove excess parentheses around product
//	    (x * y) * z
//	     ^^^^^
//	    x * y * z
//	  x * y * z
func (s *Step) String() string {
	var lines []string
	if s.Before != nil {
		lines = append(lines, s.Before.String())
	}
	for _, sub := range s.Substeps {
		lines = append(lines, sub.String())
	}
	if s.Result != nil {
		lines = append(lines, Text(s.Result))
	}
	body := strings.Join(lines, "\n")

	if s.Label == "" {
		return body
	}
	return s.Label + "\n" + indent(body, "  ")
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
