// Package errors provides structured, actionable error messages for mathlive.
//
// Every error carries a code, a category and a plain-language message.
// Render failures additionally carry the offending formula and a column, so
// the terminal output can point at the exact character.
//
// # Error Categories
//
//   - render: the markup could not be rendered (syntax, untrusted constructs)
//   - config: mathlive.json / mathlive.yaml problems
//   - cli: command line usage errors
//   - publish: snapshot upload failures
//   - server: live preview server failures
//
// # Error Codes
//
// Each error has a unique code (e.g., "M001") that maps to a short message,
// a detailed explanation and a documentation URL.
//
// # Usage
//
//	res := p.Result()
//	if !res.OK() {
//	    errors.PrintError(errors.FromFailure(res, pipeline.UnitRune))
//	}
//
//	// Output:
//	// ERROR M001: Expected group after '\frac'
//	//
//	//   <stdin>:1:9
//	//
//	//   → 1 │ \frac{1}
//	//       │         ^
//	//
//	//   Learn more: https://mathlive.dev/docs/errors/M001
package errors
