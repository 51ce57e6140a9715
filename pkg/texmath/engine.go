package texmath

import (
	"github.com/vango-dev/mathlive/pkg/markup"
	"github.com/vango-dev/mathlive/pkg/pipeline"
)

// DefaultMaxDepth is the default limit on nested groups and fences.
const DefaultMaxDepth = 256

// Engine renders TeX math to MathML. The zero value is not usable; create
// engines with New. An Engine is safe for concurrent use.
type Engine struct {
	maxDepth int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxDepth limits the nesting of groups and fences. Zero disables the
// limit.
func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		e.maxDepth = n
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse parses text into a formula tree.
func (e *Engine) Parse(text string, opts pipeline.RenderOptions) (*Row, error) {
	return parse(text, opts, e.maxDepth)
}

// Render implements pipeline.Engine.
func (e *Engine) Render(text string, opts pipeline.RenderOptions) (pipeline.RenderedOutput, error) {
	row, err := e.Parse(text, opts)
	if err != nil {
		return "", err
	}
	html, err := markup.NewRenderer(markup.RendererConfig{}).RenderToString(e.Node(text, row, opts))
	if err != nil {
		return "", err
	}
	return pipeline.RenderedOutput(html), nil
}

// Node builds the HTML for a parsed formula: a <math> element with the
// source kept as a TeX annotation, wrapped in a span.
func (e *Engine) Node(text string, row *Row, opts pipeline.RenderOptions) *markup.Node {
	b := &builder{display: opts.DisplayMode == pipeline.DisplayBlock}

	display := "inline"
	if b.display {
		display = "block"
	}

	math := markup.El("math",
		markup.A("xmlns", mathMLNamespace),
		markup.A("display", display),
		markup.El("semantics",
			b.row(row),
			markup.El("annotation", markup.A("encoding", "application/x-tex"), text),
		),
	)

	span := markup.El("span", markup.Class("mathlive"), math)
	if b.display {
		return markup.El("span", markup.Class("mathlive-display"), span)
	}
	return span
}

var _ pipeline.Engine = (*Engine)(nil)
