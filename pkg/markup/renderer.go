package markup

import (
	"bytes"
	"fmt"
	"io"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Math output should not be pretty
	// printed since whitespace between inline elements is significant.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer writes Node trees as HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a Node tree to an HTML string.
func (r *Renderer) RenderToString(node *Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a Node tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *Node) error {
	ew := &errWriter{w: w}
	r.renderNode(ew, node, 0)
	return ew.err
}

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) WriteString(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

func (r *Renderer) renderNode(w *errWriter, node *Node, depth int) {
	if node == nil {
		return
	}

	switch node.Kind {
	case KindElement:
		r.renderElement(w, node, depth)
	case KindText:
		w.WriteString(EscapeText(node.Text))
	case KindFragment:
		for _, child := range node.Children {
			r.renderNode(w, child, depth)
		}
	case KindRaw:
		w.WriteString(node.Text)
	default:
		if w.err == nil {
			w.err = fmt.Errorf("unknown node kind: %d", node.Kind)
		}
	}
}

func (r *Renderer) renderElement(w *errWriter, node *Node, depth int) {
	tag := node.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	w.WriteString("<" + tag)
	r.renderAttributes(w, node)
	w.WriteString(">")

	if isVoidElement(tag) {
		if r.config.Pretty {
			w.WriteString("\n")
		}
		return
	}

	hasBlockChildren := len(node.Children) > 0 && !isInlineElement(tag)
	if r.config.Pretty && hasBlockChildren {
		w.WriteString("\n")
	}

	for _, child := range node.Children {
		r.renderNode(w, child, depth+1)
	}

	if r.config.Pretty && hasBlockChildren {
		r.writeIndent(w, depth)
	}

	w.WriteString("</" + tag + ">")
	if r.config.Pretty {
		w.WriteString("\n")
	}
}

// renderAttributes writes attributes in sorted order for deterministic
// output.
func (r *Renderer) renderAttributes(w *errWriter, node *Node) {
	for _, key := range node.Attrs.keys() {
		value := node.Attrs[key]

		if isBooleanAttr(key) {
			if value != "" && value != "false" {
				w.WriteString(" " + key)
			}
			continue
		}

		w.WriteString(" " + key + `="` + escapeAttr(value) + `"`)
	}
}

func (r *Renderer) writeIndent(w *errWriter, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString(r.config.Indent)
	}
}
