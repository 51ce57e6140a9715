package pipeline

// RenderedOutput is the opaque artifact produced by an engine, handed to the
// presentation layer verbatim.
type RenderedOutput string

// Engine renders markup text.
//
// Render must be synchronous and depend only on its arguments. Failures
// should be reported as *ParseError, or any error implementing Positioned,
// so that the failure can be located in the text.
type Engine interface {
	Render(text string, opts RenderOptions) (RenderedOutput, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(text string, opts RenderOptions) (RenderedOutput, error)

// Render calls f(text, opts).
func (f EngineFunc) Render(text string, opts RenderOptions) (RenderedOutput, error) {
	return f(text, opts)
}

// Middleware wraps an Engine with additional behavior.
type Middleware func(Engine) Engine

// Chain wraps e with mws. The first middleware is the outermost.
func Chain(e Engine, mws ...Middleware) Engine {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			e = mws[i](e)
		}
	}
	return e
}
