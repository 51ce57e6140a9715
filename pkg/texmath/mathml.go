package texmath

import "github.com/vango-dev/mathlive/pkg/markup"

const mathMLNamespace = "http://www.w3.org/1998/Math/MathML"

// errorColor matches the color other TeX renderers use for error text.
const errorColor = "#cc0000"

type builder struct {
	display bool
}

// row always returns an <mrow>.
func (b *builder) row(r *Row) *markup.Node {
	n := markup.El("mrow")
	for _, item := range r.Items {
		n.Append(b.build(item))
	}
	return n
}

func (b *builder) build(a Atom) *markup.Node {
	switch a := a.(type) {
	case nil:
		return markup.El("mrow")

	case *Row:
		if len(a.Items) == 1 {
			return b.build(a.Items[0])
		}
		return b.row(a)

	case *Symbol:
		return b.symbol(a)

	case *Space:
		return markup.El("mspace", markup.A("width", a.Width))

	case *Frac:
		frac := markup.El("mfrac", b.build(a.Num), b.build(a.Den))
		switch a.Style {
		case "display":
			return markup.El("mstyle", markup.A("displaystyle", "true"), markup.A("scriptlevel", "0"), frac)
		case "text":
			return markup.El("mstyle", markup.A("displaystyle", "false"), markup.A("scriptlevel", "0"), frac)
		}
		return frac

	case *Root:
		if a.Index != nil {
			return markup.El("mroot", b.build(a.Body), b.build(a.Index))
		}
		return markup.El("msqrt", b.build(a.Body))

	case *Scripts:
		return b.scripts(a)

	case *Fenced:
		n := markup.El("mrow")
		if a.Left != "" {
			n.Append(fence(a.Left))
		}
		n.Append(b.build(a.Body))
		if a.Right != "" {
			n.Append(fence(a.Right))
		}
		return n

	case *Text:
		if a.Operator {
			return markup.El("mi", markup.A("mathvariant", "normal"), a.Text)
		}
		return markup.El("mtext", a.Text)

	case *Accent:
		return markup.El("mover", markup.A("accent", "true"),
			b.build(a.Body),
			markup.El("mo", a.Mark),
		)

	case *Styled:
		return markup.El("mrow", markup.Class(a.Class), b.idAttr(a.ID), b.build(a.Body))

	case *Error:
		return markup.El("mtext",
			markup.Class("mathlive-error"),
			markup.Style("color:"+errorColor),
			markup.A("title", a.Message),
			a.Source,
		)
	}

	return markup.El("mrow")
}

func (b *builder) idAttr(id string) markup.Attr {
	if id == "" {
		return markup.Attr{}
	}
	return markup.ID(id)
}

func (b *builder) symbol(s *Symbol) *markup.Node {
	var variant markup.Attr
	if s.Variant != "" {
		variant = markup.A("mathvariant", s.Variant)
	}

	switch s.Kind {
	case symIdent, symFunction, symLimitsFn:
		return markup.El("mi", variant, s.Text)
	case symNumber:
		return markup.El("mn", variant, s.Text)
	case symLargeOp:
		return markup.El("mo", markup.A("largeop", "true"), markup.A("movablelimits", "true"), s.Text)
	default:
		return markup.El("mo", variant, s.Text)
	}
}

func (b *builder) scripts(s *Scripts) *markup.Node {
	base := b.build(s.Base)

	if b.display && takesLimits(s.Base) {
		switch {
		case s.Sup != nil && s.Sub != nil:
			return markup.El("munderover", base, b.build(s.Sub), b.build(s.Sup))
		case s.Sup != nil:
			return markup.El("mover", base, b.build(s.Sup))
		default:
			return markup.El("munder", base, b.build(s.Sub))
		}
	}

	switch {
	case s.Sup != nil && s.Sub != nil:
		return markup.El("msubsup", base, b.build(s.Sub), b.build(s.Sup))
	case s.Sup != nil:
		return markup.El("msup", base, b.build(s.Sup))
	default:
		return markup.El("msub", base, b.build(s.Sub))
	}
}

func takesLimits(a Atom) bool {
	s, ok := a.(*Symbol)
	return ok && (s.Kind == symLargeOp || s.Kind == symLimitsFn)
}

func fence(text string) *markup.Node {
	return markup.El("mo", markup.A("fence", "true"), markup.A("stretchy", "true"), text)
}
