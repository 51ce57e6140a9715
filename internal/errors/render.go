package errors

import "github.com/vango-dev/mathlive/pkg/pipeline"

// SourceName is the location name used for formulas without a file.
const SourceName = "<input>"

// FromFailure converts a failed render result into an Error pointing at the
// failure position. unit is the engine's position unit. It returns nil for
// successes.
func FromFailure(res pipeline.RenderResult, unit pipeline.PositionUnit) *Error {
	if res.OK() {
		return nil
	}

	code := "M003"
	switch res.Class {
	case pipeline.ClassSyntax:
		code = "M001"
	case pipeline.ClassSemantic:
		code = "M002"
	}

	e := New(code)
	e.Message = res.Message
	e.Location = &Location{
		File:   SourceName,
		Line:   1,
		Column: unit.Column(res.Source, res.Position) + 1,
	}
	e.Context = []string{res.Source}
	e.Wrapped = &pipeline.ParseError{
		Message:  res.Message,
		Position: res.Position,
		Length:   res.Length,
		Class:    res.Class,
	}

	if res.Class == pipeline.ClassSemantic {
		e.Suggestion = "Use a defined command, or enable trust for this source"
	}
	return e
}

// InFile renames the location of a render error, e.g. to "stdin" and the
// input line the formula came from.
func (e *Error) InFile(file string, line int) *Error {
	if e.Location != nil {
		e.Location.File = file
		e.Location.Line = line
	}
	return e
}
