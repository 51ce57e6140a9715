package markup

type tagKind uint8

const (
	// tagVoid elements have no children and no closing tag.
	tagVoid tagKind = 1 << iota
	// tagInline elements stay on the line of their parent when pretty
	// printing.
	tagInline
)

var tagKinds = map[string]tagKind{
	"area": tagVoid, "base": tagVoid, "br": tagVoid, "col": tagVoid,
	"embed": tagVoid, "hr": tagVoid, "img": tagVoid, "input": tagVoid,
	"link": tagVoid, "meta": tagVoid, "source": tagVoid, "track": tagVoid,
	"wbr": tagVoid,

	"a": tagInline, "b": tagInline, "code": tagInline, "em": tagInline,
	"i": tagInline, "mark": tagInline, "small": tagInline, "span": tagInline,
	"strong": tagInline, "sub": tagInline, "sup": tagInline, "var": tagInline,

	// MathML token elements
	"mi": tagInline, "mn": tagInline, "mo": tagInline, "mtext": tagInline,
}

func isVoidElement(tag string) bool {
	return tagKinds[tag]&tagVoid != 0
}

func isInlineElement(tag string) bool {
	return tagKinds[tag]&tagInline != 0
}

// booleanAttrs are written as the bare attribute name when present.
var booleanAttrs = map[string]bool{
	"autofocus": true,
	"defer":     true,
	"disabled":  true,
	"hidden":    true,
	"readonly":  true,
}

func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}
