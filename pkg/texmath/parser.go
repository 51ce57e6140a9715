package texmath

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vango-dev/mathlive/pkg/pipeline"
)

type parser struct {
	src    []rune
	tokens []token
	i      int

	opts     pipeline.RenderOptions
	depth    int
	maxDepth int
}

// parse parses src into a Row. Errors are *pipeline.ParseError with rune
// positions.
func parse(src string, opts pipeline.RenderOptions, maxDepth int) (*Row, error) {
	runes := []rune(src)
	tokens, err := lex(runes)
	if err != nil {
		return nil, err
	}

	p := &parser{src: runes, tokens: tokens, opts: opts, maxDepth: maxDepth}
	row, err := p.parseExpression(nil)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorAt(t, "Expected 'EOF', got %s", t.quoted())
	}
	return row, nil
}

func (p *parser) peek() token {
	return p.tokens[p.i]
}

// next consumes a token. EOF is never consumed.
func (p *parser) next() token {
	t := p.tokens[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) errorAt(t token, format string, args ...any) *pipeline.ParseError {
	return pipeline.NewParseError(t.pos, t.length(), format, args...)
}

func (p *parser) semanticAt(t token, format string, args ...any) *pipeline.ParseError {
	err := p.errorAt(t, format, args...)
	err.Class = pipeline.ClassSemantic
	return err
}

func (p *parser) enter(t token) error {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return p.errorAt(t, "Too many nested groups")
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

// parseExpression parses atoms up to EOF, '}', \right or a token matching
// stop, which is left unconsumed.
func (p *parser) parseExpression(stop func(token) bool) (*Row, error) {
	row := &Row{}
	for {
		t := p.peek()
		if t.kind == tokEOF || t.kind == tokClose || isCommand(t, `\right`) || (stop != nil && stop(t)) {
			return row, nil
		}
		a, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		row.Items = append(row.Items, a)
	}
}

// parseAtom parses a primary followed by any scripts.
func (p *parser) parseAtom() (Atom, error) {
	var base Atom
	if t := p.peek(); t.kind != tokSup && t.kind != tokSub {
		var err error
		if base, err = p.parsePrimary(false); err != nil {
			return nil, err
		}
	}

	var sup, sub Atom
	for {
		t := p.peek()
		switch {
		case t.kind == tokSup:
			if sup != nil {
				return nil, p.errorAt(t, "Double superscript")
			}
			p.next()
			arg, err := p.parseArgument(t)
			if err != nil {
				return nil, err
			}
			sup = arg
		case t.kind == tokSub:
			if sub != nil {
				return nil, p.errorAt(t, "Double subscript")
			}
			p.next()
			arg, err := p.parseArgument(t)
			if err != nil {
				return nil, err
			}
			sub = arg
		case isChar(t, "'"):
			if sup != nil {
				return nil, p.errorAt(t, "Double superscript")
			}
			var primes strings.Builder
			for isChar(p.peek(), "'") {
				p.next()
				primes.WriteString("′")
			}
			sup = &Symbol{Text: primes.String(), Kind: symOperator}
		default:
			if sup == nil && sub == nil {
				return base, nil
			}
			return &Scripts{Base: base, Sup: sup, Sub: sub}, nil
		}
	}
}

// parseArgument parses the argument of the command or script token after.
// A single token is accepted without braces.
func (p *parser) parseArgument(after token) (Atom, error) {
	t := p.peek()
	switch t.kind {
	case tokEOF, tokClose, tokSup, tokSub:
		return nil, p.errorAt(t, "Expected group after %s", after.quoted())
	case tokCommand:
		if t.text == `\right` {
			return nil, p.errorAt(t, "Expected group after %s", after.quoted())
		}
		if takesArguments(t.text) {
			return nil, p.errorAt(t, "Got function %s with no arguments as argument to %s", t.quoted(), after.quoted())
		}
	}
	return p.parsePrimary(true)
}

// parsePrimary parses a group, a character or a command. With single set,
// a number is one digit.
func (p *parser) parsePrimary(single bool) (Atom, error) {
	t := p.next()
	switch t.kind {
	case tokOpen:
		return p.parseGroup(t)
	case tokChar:
		return p.parseChar(t, single)
	case tokCommand:
		return p.parseCommand(t)
	default:
		return nil, p.errorAt(t, "Unexpected %s", t.quoted())
	}
}

func (p *parser) parseGroup(open token) (Atom, error) {
	if err := p.enter(open); err != nil {
		return nil, err
	}
	defer p.leave()

	row, err := p.parseExpression(nil)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokClose {
		return nil, p.errorAt(t, "Expected '}', got %s", t.quoted())
	}
	p.next()
	return row, nil
}

func (p *parser) parseChar(t token, single bool) (Atom, error) {
	r := []rune(t.text)[0]

	switch {
	case isDigit(r):
		if single {
			return &Symbol{Text: t.text, Kind: symNumber}, nil
		}
		return &Symbol{Text: p.number(t), Kind: symNumber}, nil
	case unicode.IsLetter(r):
		return &Symbol{Text: t.text, Kind: symIdent}, nil
	case r == '\'':
		return &Symbol{Text: "′", Kind: symOperator}, nil
	case r == '~':
		return &Space{Width: "0.25em"}, nil
	case r == '&' || r == '#' || r == '$':
		return nil, p.errorAt(t, "Unexpected character: %s", t.quoted())
	}

	if op, ok := charOperators[r]; ok {
		return &Symbol{Text: op, Kind: symOperator}, nil
	}
	return &Symbol{Text: t.text, Kind: symOperator}, nil
}

// number extends the digit token first with the adjacent digits and
// decimal points that follow it.
func (p *parser) number(first token) string {
	var b strings.Builder
	b.WriteString(first.text)
	end := first.end

	for {
		n := p.peek()
		if n.kind != tokChar || n.pos != end {
			return b.String()
		}
		c := []rune(n.text)[0]
		switch {
		case isDigit(c):
			b.WriteString(n.text)
			end = n.end
			p.next()
		case c == '.':
			after := p.tokens[p.i+1]
			if after.kind != tokChar || after.pos != n.end || !isDigit([]rune(after.text)[0]) {
				return b.String()
			}
			b.WriteString(".")
			b.WriteString(after.text)
			end = after.end
			p.next()
			p.next()
		default:
			return b.String()
		}
	}
}

func (p *parser) parseCommand(t token) (Atom, error) {
	name := t.text

	if s, ok := symbols[name]; ok {
		return &Symbol{Text: s.text, Kind: s.kind}, nil
	}
	if w, ok := spaces[name]; ok {
		return &Space{Width: w}, nil
	}

	switch name {
	case `\frac`, `\dfrac`, `\tfrac`:
		num, err := p.parseArgument(t)
		if err != nil {
			return nil, err
		}
		den, err := p.parseArgument(t)
		if err != nil {
			return nil, err
		}
		frac := &Frac{Num: num, Den: den}
		switch name {
		case `\dfrac`:
			frac.Style = "display"
		case `\tfrac`:
			frac.Style = "text"
		}
		return frac, nil

	case `\sqrt`:
		return p.parseSqrt(t)

	case `\text`, `\textrm`, `\mbox`:
		s, err := p.parseRawArgument(t)
		if err != nil {
			return nil, err
		}
		return &Text{Text: s}, nil

	case `\operatorname`:
		s, err := p.parseRawArgument(t)
		if err != nil {
			return nil, err
		}
		return &Text{Text: s, Operator: true}, nil

	case `\left`:
		return p.parseFenced(t)

	case `\htmlClass`, `\htmlId`:
		return p.parseHTMLExtension(t)
	}

	if mark, ok := accents[name]; ok {
		body, err := p.parseArgument(t)
		if err != nil {
			return nil, err
		}
		return &Accent{Mark: mark, Body: body}, nil
	}

	if variant, ok := variants[name]; ok {
		body, err := p.parseArgument(t)
		if err != nil {
			return nil, err
		}
		applyVariant(body, variant)
		return body, nil
	}

	return p.undefined(t, "Undefined control sequence: %s", name)
}

// undefined fails under StrictFail and otherwise keeps the command as
// error text.
func (p *parser) undefined(t token, format string, args ...any) (Atom, error) {
	if p.opts.Strictness == pipeline.StrictFail {
		return nil, p.semanticAt(t, format, args...)
	}
	return &Error{Source: t.text, Message: fmt.Sprintf(format, args...)}, nil
}

func (p *parser) parseSqrt(t token) (Atom, error) {
	var index Atom
	if open := p.peek(); isChar(open, "[") {
		p.next()
		row, err := p.parseExpression(func(tok token) bool { return isChar(tok, "]") })
		if err != nil {
			return nil, err
		}
		if end := p.peek(); !isChar(end, "]") {
			return nil, p.errorAt(end, "Expected ']', got %s", end.quoted())
		}
		p.next()
		index = row
	}

	body, err := p.parseArgument(t)
	if err != nil {
		return nil, err
	}
	return &Root{Index: index, Body: body}, nil
}

// parseRawArgument reads a braced argument as text.
func (p *parser) parseRawArgument(after token) (string, error) {
	open := p.peek()
	if open.kind != tokOpen {
		return "", p.errorAt(open, "Expected group after %s", after.quoted())
	}
	p.next()

	depth := 1
	for {
		t := p.next()
		switch t.kind {
		case tokEOF:
			return "", p.errorAt(t, "Expected '}', got 'EOF'")
		case tokOpen:
			depth++
		case tokClose:
			depth--
			if depth == 0 {
				return unescapeText(string(p.src[open.end:t.pos])), nil
			}
		}
	}
}

var textEscapes = strings.NewReplacer(
	`\{`, "{",
	`\}`, "}",
	`\%`, "%",
	`\$`, "$",
	`\&`, "&",
	`\#`, "#",
	`\_`, "_",
	`\ `, " ",
)

func unescapeText(s string) string {
	return textEscapes.Replace(s)
}

func (p *parser) parseFenced(left token) (Atom, error) {
	if err := p.enter(left); err != nil {
		return nil, err
	}
	defer p.leave()

	open, err := p.parseDelimiter(left)
	if err != nil {
		return nil, err
	}

	body, err := p.parseExpression(nil)
	if err != nil {
		return nil, err
	}

	right := p.peek()
	if !isCommand(right, `\right`) {
		return nil, p.errorAt(right, "Expected '\\right', got %s", right.quoted())
	}
	p.next()

	closing, err := p.parseDelimiter(right)
	if err != nil {
		return nil, err
	}
	return &Fenced{Left: open, Right: closing, Body: body}, nil
}

func (p *parser) parseDelimiter(after token) (string, error) {
	d := p.peek()
	if d.kind == tokChar || d.kind == tokCommand {
		if s, ok := delimiters[d.text]; ok {
			p.next()
			return s, nil
		}
	}
	return "", p.errorAt(d, "Missing or unrecognized delimiter for %s", after.text)
}

// parseHTMLExtension parses \htmlClass{class}{body} and \htmlId{id}{body}.
func (p *parser) parseHTMLExtension(t token) (Atom, error) {
	value, err := p.parseRawArgument(t)
	if err != nil {
		return nil, err
	}
	body, err := p.parseArgument(t)
	if err != nil {
		return nil, err
	}

	if !p.opts.Trust {
		return p.undefined(t, "Command %s requires trust", t.text)
	}

	value = strings.TrimSpace(value)
	if t.text == `\htmlId` {
		if value == "" || strings.ContainsFunc(value, unicode.IsSpace) {
			return nil, p.errorAt(t, "Invalid id %q for %s", value, t.text)
		}
		return &Styled{ID: value, Body: body}, nil
	}
	return &Styled{Class: value, Body: body}, nil
}

// takesArguments reports whether the command needs arguments, so it cannot
// be the unbraced argument of another command.
func takesArguments(name string) bool {
	switch name {
	case `\frac`, `\dfrac`, `\tfrac`, `\sqrt`, `\text`, `\textrm`, `\mbox`,
		`\operatorname`, `\left`, `\htmlClass`, `\htmlId`:
		return true
	}
	_, accent := accents[name]
	_, variant := variants[name]
	return accent || variant
}

// applyVariant sets the font variant of every symbol in a that has none.
func applyVariant(a Atom, variant string) {
	switch a := a.(type) {
	case *Symbol:
		if a.Variant == "" {
			a.Variant = variant
		}
	case *Row:
		for _, item := range a.Items {
			applyVariant(item, variant)
		}
	case *Scripts:
		applyVariant(a.Base, variant)
		applyVariant(a.Sup, variant)
		applyVariant(a.Sub, variant)
	case *Frac:
		applyVariant(a.Num, variant)
		applyVariant(a.Den, variant)
	case *Root:
		applyVariant(a.Index, variant)
		applyVariant(a.Body, variant)
	case *Fenced:
		applyVariant(a.Body, variant)
	case *Accent:
		applyVariant(a.Body, variant)
	case *Styled:
		applyVariant(a.Body, variant)
	}
}

func isCommand(t token, name string) bool {
	return t.kind == tokCommand && t.text == name
}

func isChar(t token, s string) bool {
	return t.kind == tokChar && t.text == s
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
