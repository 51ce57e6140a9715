package markup

import (
	"fmt"
	"sort"
	"strings"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement  Kind = iota // <span>, <div>, etc.
	KindText                 // Plain text node
	KindFragment             // Grouping without wrapper
	KindRaw                  // Raw HTML (trusted only)
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// Node is an HTML node.
type Node struct {
	Kind     Kind
	Tag      string // Element tag name
	Attrs    Attrs
	Children []*Node
	Text     string // For KindText and KindRaw
}

// Attrs holds element attributes.
type Attrs map[string]string

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value string
}

// IsEmpty returns true if this is an empty attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// keys returns the attribute names in sorted order.
func (a Attrs) keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Text creates a text node.
func Text(content string) *Node {
	return &Node{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *Node {
	return Text(fmt.Sprintf(format, args...))
}

// Raw creates an unescaped HTML node.
func Raw(html string) *Node {
	return &Node{Kind: KindRaw, Text: html}
}

// El creates an element. Arguments may be Attr, Attrs, *Node, []*Node or
// string (a text child). nil and empty arguments are skipped.
func El(tag string, args ...any) *Node {
	node := &Node{Kind: KindElement, Tag: tag}
	node.add(args)
	return node
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *Node {
	node := &Node{Kind: KindFragment}
	node.add(children)
	return node
}

func (n *Node) add(args []any) {
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			if !v.IsEmpty() {
				n.setAttr(v.Key, v.Value)
			}
		case Attrs:
			for k, val := range v {
				n.setAttr(k, val)
			}
		case *Node:
			if v != nil {
				n.Children = append(n.Children, v)
			}
		case []*Node:
			for _, c := range v {
				if c != nil {
					n.Children = append(n.Children, c)
				}
			}
		case string:
			n.Children = append(n.Children, Text(v))
		}
	}
}

// setAttr sets an attribute. Repeated class attributes are joined.
func (n *Node) setAttr(key, value string) {
	if n.Attrs == nil {
		n.Attrs = make(Attrs)
	}
	if key == "class" {
		if existing := n.Attrs["class"]; existing != "" && value != "" {
			value = existing + " " + value
		}
	}
	n.Attrs[key] = value
}

// Append adds children to n and returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// TextContent returns the concatenated text of n and its descendants.
// Raw nodes are skipped.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	if n == nil {
		return
	}
	if n.Kind == KindText {
		b.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		c.writeText(b)
	}
}

// A creates an attribute.
func A(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// Class creates a class attribute from the non-empty names.
func Class(names ...string) Attr {
	var parts []string
	for _, name := range names {
		if name != "" {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return Attr{}
	}
	return Attr{Key: "class", Value: strings.Join(parts, " ")}
}

// ID creates an id attribute.
func ID(id string) Attr {
	return Attr{Key: "id", Value: id}
}

// Style creates a style attribute.
func Style(css string) Attr {
	return Attr{Key: "style", Value: css}
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *Node) *Node {
	if condition {
		return node
	}
	return nil
}
