package pipeline

import "fmt"

// Strictness controls how the engine treats unknown or unsafe constructs.
type Strictness uint8

const (
	// StrictFail makes the engine fail on any unknown or disallowed construct.
	StrictFail Strictness = iota
	// StrictPermitTrusted lets the engine render unknown constructs as inline
	// error text instead of failing.
	StrictPermitTrusted
)

// String returns the configuration name of the strictness.
func (s Strictness) String() string {
	switch s {
	case StrictFail:
		return "fail-on-error"
	case StrictPermitTrusted:
		return "permit-trusted-extensions"
	default:
		return fmt.Sprintf("Strictness(%d)", uint8(s))
	}
}

// ParseStrictness parses the configuration name of a strictness.
func ParseStrictness(s string) (Strictness, error) {
	switch s {
	case "fail-on-error", "strict", "":
		return StrictFail, nil
	case "permit-trusted-extensions", "permit":
		return StrictPermitTrusted, nil
	}
	return StrictFail, fmt.Errorf("unknown strictness %q", s)
}

// DisplayMode is the layout intent passed through to the engine.
type DisplayMode uint8

const (
	DisplayInline DisplayMode = iota
	DisplayBlock
)

// String returns the configuration name of the display mode.
func (d DisplayMode) String() string {
	switch d {
	case DisplayInline:
		return "inline"
	case DisplayBlock:
		return "block"
	default:
		return fmt.Sprintf("DisplayMode(%d)", uint8(d))
	}
}

// ParseDisplayMode parses the configuration name of a display mode.
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch s {
	case "inline", "":
		return DisplayInline, nil
	case "block", "display":
		return DisplayBlock, nil
	}
	return DisplayInline, fmt.Errorf("unknown display mode %q", s)
}

// RenderOptions is the immutable engine configuration of a pipeline.
// It is fixed at construction and passed unchanged to every render call.
type RenderOptions struct {
	Strictness  Strictness  `json:"strictness"`
	DisplayMode DisplayMode `json:"displayMode"`

	// Trust permits constructs with side-effectful rendering hooks
	// (\htmlClass, \htmlId, \href).
	Trust bool `json:"trust"`
}

// String summarizes the options for logs.
func (o RenderOptions) String() string {
	return fmt.Sprintf("strict=%s display=%s trust=%t", o.Strictness, o.DisplayMode, o.Trust)
}

// DisplayPreset fails on errors, lays out as a block and trusts the input.
func DisplayPreset() RenderOptions {
	return RenderOptions{
		Strictness:  StrictFail,
		DisplayMode: DisplayBlock,
		Trust:       true,
	}
}

// InlinePreset fails on errors, lays out inline and does not trust the input.
func InlinePreset() RenderOptions {
	return RenderOptions{
		Strictness:  StrictFail,
		DisplayMode: DisplayInline,
		Trust:       false,
	}
}

// Preset returns the named option preset.
func Preset(name string) (RenderOptions, bool) {
	switch name {
	case "display":
		return DisplayPreset(), true
	case "inline":
		return InlinePreset(), true
	}
	return RenderOptions{}, false
}
