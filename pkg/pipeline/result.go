package pipeline

import "fmt"

// ResultKind discriminates RenderResult.
type ResultKind uint8

const (
	KindSuccess ResultKind = iota + 1
	KindFailure
)

// String returns "success" or "failure".
func (k ResultKind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ResultKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// RenderResult is the classified outcome of one render call.
//
// For KindSuccess only Markup is set. For KindFailure Message and Position
// are set, plus Length and Class when the engine supplies them. Source is
// always the exact text the result was derived from.
type RenderResult struct {
	Kind ResultKind `json:"kind"`

	Markup RenderedOutput `json:"markup,omitempty"`

	Message  string     `json:"message,omitempty"`
	Position int        `json:"position"`
	Length   int        `json:"length,omitempty"`
	Class    ErrorClass `json:"class,omitempty"`

	Source string `json:"source"`
}

// Success returns a successful result for source.
func Success(source string, markup RenderedOutput) RenderResult {
	return RenderResult{
		Kind:   KindSuccess,
		Markup: markup,
		Source: source,
	}
}

// Failure returns a failed result for source. Negative positions are
// recorded as 0.
func Failure(source, message string, position int) RenderResult {
	if position < 0 {
		position = 0
	}
	return RenderResult{
		Kind:     KindFailure,
		Message:  message,
		Position: position,
		Class:    ClassUnclassified,
		Source:   source,
	}
}

// OK reports whether the result is a success.
func (r RenderResult) OK() bool {
	return r.Kind == KindSuccess
}

// Diagnostic returns the two-line caret display for a failure, measuring
// the position in unit. It returns "" for successes.
func (r RenderResult) Diagnostic(unit PositionUnit) string {
	if r.Kind != KindFailure {
		return ""
	}
	return Diagnostic(r.Source, r.Position, unit)
}

// String summarizes the result for logs.
func (r RenderResult) String() string {
	switch r.Kind {
	case KindSuccess:
		return fmt.Sprintf("success(%d bytes)", len(r.Markup))
	case KindFailure:
		return fmt.Sprintf("failure(%s at %d: %s)", r.Class, r.Position, r.Message)
	default:
		return "unknown"
	}
}
