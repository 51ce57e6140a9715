package expr

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Expr is a node of an expression tree.
//
// Every node has an ID that Clone keeps, so a node can be pointed at in an
// earlier snapshot of a tree that has since been rewritten.
type Expr interface {
	ID() uint64
	fmt.Stringer

	precedence() int
	clone() Expr
}

// Binding strength of each node kind. A child is parenthesized when it
// binds no tighter than its parent.
const (
	precSum = iota + 1
	precProduct
	precNegation
	precConstant
)

var lastID atomic.Uint64

func nextID() uint64 {
	return lastID.Add(1)
}

// Constant is a named value such as x, 2 or \pi. Name holds the LaTeX form.
type Constant struct {
	id   uint64
	Name string
}

// Sum adds its terms. A *Negation term is printed as a subtraction.
type Sum struct {
	id    uint64
	Terms []Expr
}

// Product multiplies its terms.
type Product struct {
	id    uint64
	Terms []Expr
}

// Negation negates Inner.
type Negation struct {
	id    uint64
	Inner Expr
}

// greek maps the LaTeX commands a constant may be named by to the
// character Text prints for them.
var greek = map[string]string{
	`\alpha`: "α",
	`\beta`:  "β",
	`\gamma`: "γ",
	`\theta`: "θ",
	`\pi`:    "π",
	`\rho`:   "ρ",
	`\sigma`: "σ",
	`\tau`:   "τ",
	`\phi`:   "φ",
}

// NewConstant returns the constant called name. A name starting with a
// backslash must be a known LaTeX command; a greek character is stored as
// its command.
func NewConstant(name string) (*Constant, error) {
	if name == "" {
		return nil, fmt.Errorf("expr: empty constant name")
	}
	if strings.HasPrefix(name, `\`) {
		if _, ok := greek[name]; !ok {
			return nil, fmt.Errorf("expr: unknown LaTeX command %s", name)
		}
	}
	for command, char := range greek {
		if name == char {
			name = command
			break
		}
	}
	return &Constant{id: nextID(), Name: name}, nil
}

// MustConstant is like NewConstant but panics on an invalid name.
func MustConstant(name string) *Constant {
	c, err := NewConstant(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Add returns the sum of terms.
func Add(terms ...Expr) *Sum {
	return &Sum{id: nextID(), Terms: terms}
}

// Sub returns a - b, a sum with b negated.
func Sub(a, b Expr) *Sum {
	return Add(a, Neg(b))
}

// Mul returns the product of terms.
func Mul(terms ...Expr) *Product {
	return &Product{id: nextID(), Terms: terms}
}

// Neg returns -e.
func Neg(e Expr) *Negation {
	return &Negation{id: nextID(), Inner: e}
}

// Clone returns a deep copy of e with the same IDs.
func Clone(e Expr) Expr {
	if e == nil {
		return nil
	}
	return e.clone()
}

func cloneAll(terms []Expr) []Expr {
	out := make([]Expr, len(terms))
	for i, t := range terms {
		out[i] = t.clone()
	}
	return out
}

func (c *Constant) ID() uint64 { return c.id }
func (s *Sum) ID() uint64      { return s.id }
func (p *Product) ID() uint64  { return p.id }
func (n *Negation) ID() uint64 { return n.id }

func (c *Constant) precedence() int { return precConstant }
func (s *Sum) precedence() int      { return precSum }
func (p *Product) precedence() int  { return precProduct }
func (n *Negation) precedence() int { return precNegation }

func (c *Constant) clone() Expr {
	cp := *c
	return &cp
}

func (s *Sum) clone() Expr {
	return &Sum{id: s.id, Terms: cloneAll(s.Terms)}
}

func (p *Product) clone() Expr {
	return &Product{id: p.id, Terms: cloneAll(p.Terms)}
}

func (n *Negation) clone() Expr {
	return &Negation{id: n.id, Inner: n.Inner.clone()}
}

func (c *Constant) String() string { return Text(c) }
func (s *Sum) String() string      { return Text(s) }
func (p *Product) String() string  { return Text(p) }
func (n *Negation) String() string { return Text(n) }
