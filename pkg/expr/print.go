package expr

import (
	"strings"
	"unicode/utf8"
)

// target is a notation an expression is printed in.
type target uint8

const (
	targetText target = iota
	targetLaTeX
)

// printer writes an expression and, under it, a line with a caret below
// every character of a marked node.
type printer struct {
	target target
	marks  map[uint64]bool

	line   strings.Builder
	carets strings.Builder
	depth  int
	marked bool
}

// Text prints e in plain notation, such as "x * (y + π)".
func Text(e Expr) string {
	p := &printer{target: targetText}
	p.expr(e)
	return p.line.String()
}

// LaTeX prints e as TeX markup the render pipeline accepts, such as
// `x \left(y+\pi\right)`.
func LaTeX(e Expr) string {
	p := &printer{target: targetLaTeX}
	p.expr(e)
	return p.line.String()
}

// Annotated is an expression with some of its nodes marked.
type Annotated struct {
	Expr  Expr
	Marks []uint64
}

// Annotate marks the nodes of e that have the IDs of marks.
func Annotate(e Expr, marks ...Expr) *Annotated {
	a := &Annotated{Expr: e}
	for _, m := range marks {
		a.Marks = append(a.Marks, m.ID())
	}
	return a
}

// String prints the expression as text, followed by a caret line when a
// marked node appears in it.
func (a *Annotated) String() string {
	p := &printer{target: targetText, marks: make(map[uint64]bool, len(a.Marks))}
	for _, id := range a.Marks {
		p.marks[id] = true
	}
	p.expr(a.Expr)

	if !p.marked {
		return p.line.String()
	}
	return p.line.String() + "\n" + strings.TrimRight(p.carets.String(), " ")
}

func (p *printer) write(s string) {
	p.line.WriteString(s)
	mark := " "
	if p.depth > 0 {
		mark = "^"
	}
	p.carets.WriteString(strings.Repeat(mark, utf8.RuneCountInString(s)))
}

func (p *printer) pick(text, latex string) string {
	if p.target == targetLaTeX {
		return latex
	}
	return text
}

// mark runs fn with the output underlined if id is marked.
func (p *printer) mark(id uint64, fn func()) {
	if !p.marks[id] {
		fn()
		return
	}
	p.marked = true
	p.depth++
	fn()
	p.depth--
}

func (p *printer) expr(e Expr) {
	p.mark(e.ID(), func() {
		switch e := e.(type) {
		case *Constant:
			if char, ok := greek[e.Name]; ok && p.target == targetText {
				p.write(char)
			} else {
				p.write(e.Name)
			}

		case *Sum:
			for i, term := range e.Terms {
				if neg, ok := term.(*Negation); ok {
					p.mark(neg.ID(), func() {
						if i == 0 {
							p.write("-")
						} else {
							p.write(p.pick(" - ", "-"))
						}
						p.child(neg.Inner, precSum)
					})
					continue
				}
				if i > 0 {
					p.write(p.pick(" + ", "+"))
				}
				p.child(term, precSum)
			}

		case *Product:
			for i, term := range e.Terms {
				if i == 0 {
					p.child(term, precProduct)
					continue
				}
				p.write(p.pick(" * ", " "))
				// x * -y would read as a subtraction in LaTeX.
				if _, ok := term.(*Negation); ok {
					p.parens(term)
				} else {
					p.child(term, precProduct)
				}
			}

		case *Negation:
			p.write("-")
			p.child(e.Inner, precNegation)
		}
	})
}

// child prints e, in parentheses when it binds no tighter than parent.
// Marks underline the inside of the parentheses only.
func (p *printer) child(e Expr, parent int) {
	if e.precedence() > parent {
		p.expr(e)
		return
	}
	p.parens(e)
}

func (p *printer) parens(e Expr) {
	p.write(p.pick("(", `\left(`))
	p.expr(e)
	p.write(p.pick(")", `\right)`))
}
