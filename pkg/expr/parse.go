package expr

import (
	"fmt"
	"unicode"
)

// SyntaxError is returned by Parse. It satisfies pipeline.Positioned, so a
// failed parse can be reported with the same caret diagnostic as a failed
// render.
type SyntaxError struct {
	Message string

	// At is the offset of the offending character in runes.
	At int
}

func (e *SyntaxError) Error() string {
	return e.Message
}

// Offset returns At.
func (e *SyntaxError) Offset() int {
	return e.At
}

// Parse reads an expression in the notation Text prints: constants, the
// binary operators + - and *, unary minus and parentheses. A constant is a
// run of letters, a run of digits, a greek character or a LaTeX command
// such as \pi. Juxtaposition is not multiplication.
//
// A chain such as a + b - c becomes one flat Sum; parentheses always start
// a new node, so (a + b) + c keeps its inner Sum.
func Parse(text string) (Expr, error) {
	p := &parser{src: []rune(text)}
	e, err := p.sum()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("Unexpected '%c'", p.src[p.pos])
	}
	return e, nil
}

type parser struct {
	src []rune
	pos int
}

func (p *parser) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(format, args...), At: p.pos}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

// peek returns the next non-space rune, or 0 at the end.
func (p *parser) peek() rune {
	p.skipSpace()
	if p.pos == len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) sum() (Expr, error) {
	first, err := p.product()
	if err != nil {
		return nil, err
	}
	terms := []Expr{first}
	for {
		op := p.peek()
		if op != '+' && op != '-' {
			break
		}
		p.pos++
		term, err := p.product()
		if err != nil {
			return nil, err
		}
		if op == '-' {
			term = Neg(term)
		}
		terms = append(terms, term)
	}
	if len(terms) == 1 {
		return first, nil
	}
	return Add(terms...), nil
}

func (p *parser) product() (Expr, error) {
	first, err := p.unary()
	if err != nil {
		return nil, err
	}
	terms := []Expr{first}
	for p.peek() == '*' {
		p.pos++
		term, err := p.unary()
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	if len(terms) == 1 {
		return first, nil
	}
	return Mul(terms...), nil
}

func (p *parser) unary() (Expr, error) {
	if p.peek() == '-' {
		p.pos++
		inner, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Neg(inner), nil
	}
	return p.primary()
}

func (p *parser) primary() (Expr, error) {
	r := p.peek()
	start := p.pos

	switch {
	case r == 0:
		return nil, p.errorf("Expected an expression")

	case r == '(':
		p.pos++
		inner, err := p.sum()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, p.errorf("Expected ')' to close '(' at %d", start)
		}
		p.pos++
		return inner, nil

	case r == '\\':
		p.pos++
		for p.pos < len(p.src) && unicode.IsLetter(p.src[p.pos]) {
			p.pos++
		}
		return p.constant(start)

	case unicode.IsDigit(r):
		for p.pos < len(p.src) && unicode.IsDigit(p.src[p.pos]) {
			p.pos++
		}
		return p.constant(start)

	case unicode.IsLetter(r):
		if _, ok := greekChars[r]; ok {
			p.pos++
			return p.constant(start)
		}
		for p.pos < len(p.src) && unicode.IsLetter(p.src[p.pos]) {
			if _, ok := greekChars[p.src[p.pos]]; ok {
				break
			}
			p.pos++
		}
		return p.constant(start)
	}

	return nil, p.errorf("Unexpected '%c'", r)
}

// constant makes a constant of the runes from start to the current position.
func (p *parser) constant(start int) (Expr, error) {
	c, err := NewConstant(string(p.src[start:p.pos]))
	if err != nil {
		return nil, &SyntaxError{Message: fmt.Sprintf("Unknown constant %s", string(p.src[start:p.pos])), At: start}
	}
	return c, nil
}

var greekChars = func() map[rune]struct{} {
	m := make(map[rune]struct{}, len(greek))
	for _, char := range greek {
		m[[]rune(char)[0]] = struct{}{}
	}
	return m
}()
