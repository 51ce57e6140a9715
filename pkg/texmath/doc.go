// Package texmath is a small TeX math engine producing MathML.
//
// It understands the subset of TeX used for inline formulas: groups,
// superscripts and subscripts, fractions, roots, \left...\right fences,
// text, operator names, accents, font variants, Greek letters and the common
// symbols. \htmlClass and \htmlId attach a class or id to a subformula and
// are only rendered when the options trust the input.
//
// Render implements pipeline.Engine. Failures are *pipeline.ParseError
// values with positions measured in runes:
//
//	_, err := texmath.New().Render(`\frac{1}`, pipeline.DisplayPreset())
//	// err: Expected group after '\frac' at position 8
//
// Under the permit-trusted-extensions strictness, undefined commands and
// untrusted constructs are rendered as red error text instead of failing.
package texmath
