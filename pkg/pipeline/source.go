package pipeline

import "github.com/vango-dev/mathlive/pkg/reactive"

// SourceCell holds the current source text.
// Reads inside a tracked computation register a dependency on the cell.
type SourceCell struct {
	signal *reactive.Signal[string]
}

// NewSourceCell creates a cell holding initial.
func NewSourceCell(initial string) *SourceCell {
	return &SourceCell{signal: reactive.NewSignal(initial)}
}

// Get returns the current text.
func (c *SourceCell) Get() string {
	return c.signal.Get()
}

// Peek returns the current text without registering a dependency.
func (c *SourceCell) Peek() string {
	return c.signal.Peek()
}

// Set replaces the text. Any string is accepted. Dependents are marked stale
// only when the text differs from the current one.
func (c *SourceCell) Set(text string) {
	c.signal.Set(text)
}
