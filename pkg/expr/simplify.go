package expr

// FlattenSteps removes parentheses that only group a product inside a
// product or a sum inside a sum. Nodes are visited innermost first, left to
// right, and every removal is recorded as a substep. A sum under a negation
// is left alone.
//
// The returned step's Result is e itself, cloned, when there is nothing to
// flatten.
func FlattenSteps(e Expr) *Step {
	f := &flattener{root: Clone(e)}
	f.visit(f.root, func(r Expr) { f.root = r })

	return &Step{
		Label:    "Simplify excess parentheses",
		Substeps: f.steps,
		Result:   Clone(f.root),
	}
}

// Flatten returns the result of FlattenSteps.
func Flatten(e Expr) Expr {
	return FlattenSteps(e).Result
}

// flattener rewrites a private copy of a tree in place.
type flattener struct {
	root  Expr
	steps []*Step
}

// visit flattens the children of n, then n itself. set replaces n in its
// parent.
func (f *flattener) visit(n Expr, set func(Expr)) {
	switch n := n.(type) {
	case *Sum:
		for i := range n.Terms {
			f.visit(n.Terms[i], func(r Expr) { n.Terms[i] = r })
		}
		if nested := nestedSums(n.Terms); len(nested) > 0 {
			f.replace(nested, "Remove excess parentheses around sum", set, func() Expr {
				return Add(splice(n.Terms, func(t Expr) ([]Expr, bool) {
					s, ok := t.(*Sum)
					if !ok {
						return nil, false
					}
					return s.Terms, true
				})...)
			})
		}

	case *Product:
		for i := range n.Terms {
			f.visit(n.Terms[i], func(r Expr) { n.Terms[i] = r })
		}
		if nested := nestedProducts(n.Terms); len(nested) > 0 {
			f.replace(nested, "Remove excess parentheses around product", set, func() Expr {
				return Mul(splice(n.Terms, func(t Expr) ([]Expr, bool) {
					p, ok := t.(*Product)
					if !ok {
						return nil, false
					}
					return p.Terms, true
				})...)
			})
		}

	case *Negation:
		f.visit(n.Inner, func(r Expr) { n.Inner = r })
	}
}

// replace records a step that swaps the node behind set for build().
func (f *flattener) replace(marks []Expr, label string, set func(Expr), build func() Expr) {
	before := Annotate(Clone(f.root), marks...)
	set(build())
	f.steps = append(f.steps, &Step{
		Label:  label,
		Before: before,
		Result: Clone(f.root),
	})
}

func nestedSums(terms []Expr) []Expr {
	var out []Expr
	for _, t := range terms {
		if _, ok := t.(*Sum); ok {
			out = append(out, t)
		}
	}
	return out
}

func nestedProducts(terms []Expr) []Expr {
	var out []Expr
	for _, t := range terms {
		if _, ok := t.(*Product); ok {
			out = append(out, t)
		}
	}
	return out
}

// splice replaces every term inner accepts with the terms it returns.
func splice(terms []Expr, inner func(Expr) ([]Expr, bool)) []Expr {
	var out []Expr
	for _, t := range terms {
		if children, ok := inner(t); ok {
			out = append(out, children...)
			continue
		}
		out = append(out, t)
	}
	return out
}
