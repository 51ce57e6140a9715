package pipeline

import (
	"errors"
	"fmt"
)

// classify turns the outcome of one render call into a RenderResult.
func classify(source string, out RenderedOutput, err error) RenderResult {
	if err == nil {
		return Success(source, out)
	}

	var pe *ParseError
	if errors.As(err, &pe) {
		res := Failure(source, pe.Message, pe.Position)
		res.Length = max(pe.Length, 0)
		res.Class = pe.Class
		if res.Class == 0 {
			res.Class = ClassSyntax
		}
		return res
	}

	var pos Positioned
	if errors.As(err, &pos) {
		res := Failure(source, err.Error(), pos.Offset())
		res.Class = ClassSyntax
		return res
	}

	return Failure(source, err.Error(), 0)
}

// renderSafely calls the engine, converting a panic into an unclassified
// failure.
func renderSafely(engine Engine, source string, opts RenderOptions) (res RenderResult) {
	defer func() {
		if r := recover(); r != nil {
			res = Failure(source, fmt.Sprint(r), 0)
		}
	}()

	out, err := engine.Render(source, opts)
	return classify(source, out, err)
}

// ClassOf returns the class a render error would be given, or 0 for nil.
func ClassOf(err error) ErrorClass {
	if err == nil {
		return 0
	}
	return classify("", "", err).Class
}
