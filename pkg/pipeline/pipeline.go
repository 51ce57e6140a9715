package pipeline

import (
	"log/slog"

	"github.com/vango-dev/mathlive/pkg/reactive"
)

// Pipeline bundles a SourceCell with its DerivedResult.
// A Pipeline is meant to be used from one goroutine.
type Pipeline struct {
	source *SourceCell
	result *DerivedResult
	owner  *reactive.Owner
	unit   PositionUnit
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*config)

type config struct {
	logger      *slog.Logger
	unit        PositionUnit
	middlewares []Middleware
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithPositionUnit sets the unit the engine reports positions in.
func WithPositionUnit(unit PositionUnit) Option {
	return func(c *config) {
		c.unit = unit
	}
}

// WithMiddleware wraps the engine. The first middleware is the outermost.
func WithMiddleware(mws ...Middleware) Option {
	return func(c *config) {
		c.middlewares = append(c.middlewares, mws...)
	}
}

// New creates a pipeline rendering through engine with the fixed opts,
// starting from the initial text.
func New(engine Engine, opts RenderOptions, initial string, options ...Option) *Pipeline {
	cfg := config{unit: UnitRune}
	for _, opt := range options {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	logger := cfg.logger.With("component", "pipeline")

	source := NewSourceCell(initial)
	p := &Pipeline{
		source: source,
		result: NewDerivedResult(source, Chain(engine, cfg.middlewares...), opts, logger),
		owner:  reactive.NewOwner(nil),
		unit:   cfg.unit,
		logger: logger,
	}
	logger.Debug("pipeline created", "options", opts.String(), "position_unit", cfg.unit.String())
	return p
}

// Source returns the pipeline's SourceCell.
func (p *Pipeline) Source() *SourceCell {
	return p.source
}

// Derived returns the pipeline's DerivedResult.
func (p *Pipeline) Derived() *DerivedResult {
	return p.result
}

// Edit handles an input event carrying the full current text.
func (p *Pipeline) Edit(text string) {
	p.source.Set(text)
}

// Text returns the current source text.
func (p *Pipeline) Text() string {
	return p.source.Peek()
}

// Result returns the render result for the current text.
func (p *Pipeline) Result() RenderResult {
	return p.result.Peek()
}

// Diagnostic returns the caret display of the current result, or "" when
// it is a success.
func (p *Pipeline) Diagnostic() string {
	return p.Result().Diagnostic(p.unit)
}

// Underline returns the span underline display of the current result, or ""
// when it is a success.
func (p *Pipeline) Underline() string {
	res := p.Result()
	if res.OK() {
		return ""
	}
	return Underline(res.Source, res.Position, res.Length, p.unit)
}

// PositionUnit returns the unit positions are measured in.
func (p *Pipeline) PositionUnit() PositionUnit {
	return p.unit
}

// Watch calls fn with the current result now and again with the fresh
// result after each change of the source text, when Flush runs.
func (p *Pipeline) Watch(fn func(RenderResult)) {
	reactive.WithOwner(p.owner, func() {
		reactive.CreateEffect(func() reactive.Cleanup {
			res := p.result.Get()
			reactive.Untracked(func() { fn(res) })
			return nil
		})
	})
}

// Flush runs watchers whose result went stale since the last Flush.
func (p *Pipeline) Flush() {
	p.owner.RunPendingEffects()
}

// Close disposes the watchers. The pipeline can still be read and edited.
func (p *Pipeline) Close() {
	p.owner.Dispose()
}
