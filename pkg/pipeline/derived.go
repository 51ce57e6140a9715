package pipeline

import (
	"log/slog"

	"github.com/vango-dev/mathlive/pkg/reactive"
)

// DerivedResult is the memoized render-or-diagnose result of a SourceCell.
//
// The engine is called lazily on Get, once per change of the source text.
// Reads without an intervening change return the cached result and never
// call the engine.
type DerivedResult struct {
	memo   *reactive.Memo[RenderResult]
	opts   RenderOptions
	logger *slog.Logger
}

// NewDerivedResult derives results of source through engine with opts.
// A nil logger uses slog.Default().
func NewDerivedResult(source *SourceCell, engine Engine, opts RenderOptions, logger *slog.Logger) *DerivedResult {
	if logger == nil {
		logger = slog.Default()
	}
	d := &DerivedResult{
		opts:   opts,
		logger: logger,
	}
	d.memo = reactive.NewMemo(func() RenderResult {
		text := source.Get()
		res := renderSafely(engine, text, opts)
		if res.OK() {
			d.logger.Debug("render succeeded", "source_len", len(text), "markup_len", len(res.Markup))
		} else {
			d.logger.Debug("render failed",
				"class", res.Class.String(),
				"position", res.Position,
				"message", res.Message,
			)
		}
		return res
	})
	return d
}

// Get returns the result for the current source text, rendering it first if
// the text changed since the last read.
func (d *DerivedResult) Get() RenderResult {
	return d.memo.Get()
}

// Peek is like Get but does not register a dependency.
func (d *DerivedResult) Peek() RenderResult {
	return d.memo.Peek()
}

// Fresh reports whether the cached result matches the current source text.
func (d *DerivedResult) Fresh() bool {
	return d.memo.Fresh()
}

// Renders returns how many times the engine has been called.
func (d *DerivedResult) Renders() uint64 {
	return d.memo.Computations()
}

// Options returns the fixed render options.
func (d *DerivedResult) Options() RenderOptions {
	return d.opts
}
