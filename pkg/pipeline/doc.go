// Package pipeline derives a render-or-diagnose result from editable math
// markup.
//
// A Pipeline owns two reactive values:
//
//   - SourceCell holds the current source text. Edit events write the full
//     text into it.
//   - DerivedResult lazily calls the Engine with the current text and the
//     pipeline's fixed RenderOptions and classifies the outcome as a
//     RenderResult: Success with the engine's markup, or Failure with a
//     message and a zero-based position into the text.
//
// The engine runs at most once per distinct source value between reads.
// Engine errors never escape DerivedResult; they are always converted to a
// Failure, with position 0 when the error carries no offset.
//
// # Usage
//
//	p := pipeline.New(texmath.New(), pipeline.DisplayPreset(), `\frac{1}{2}`)
//	defer p.Close()
//
//	p.Edit(`\frac{1}`)
//	res := p.Result()
//	if !res.OK() {
//	    fmt.Println(res.Message)
//	    fmt.Println(p.Diagnostic())
//	    // \frac{1}
//	    //         ^
//	}
package pipeline
