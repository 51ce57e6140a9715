package pipeline

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// PositionUnit is the unit an engine measures positions in.
type PositionUnit uint8

const (
	// UnitRune counts Unicode code points. The bundled engine uses it.
	UnitRune PositionUnit = iota
	// UnitByte counts UTF-8 bytes.
	UnitByte
	// UnitUTF16 counts UTF-16 code units, as JavaScript engines do.
	UnitUTF16
)

// String returns the configuration name of the unit.
func (u PositionUnit) String() string {
	switch u {
	case UnitRune:
		return "rune"
	case UnitByte:
		return "byte"
	case UnitUTF16:
		return "utf16"
	default:
		return fmt.Sprintf("PositionUnit(%d)", uint8(u))
	}
}

// ParsePositionUnit parses the configuration name of a unit.
func ParsePositionUnit(s string) (PositionUnit, error) {
	switch s {
	case "rune", "char", "":
		return UnitRune, nil
	case "byte":
		return UnitByte, nil
	case "utf16":
		return UnitUTF16, nil
	}
	return UnitRune, fmt.Errorf("unknown position unit %q", s)
}

// Len returns the length of text in unit u.
func (u PositionUnit) Len(text string) int {
	switch u {
	case UnitByte:
		return len(text)
	case UnitUTF16:
		n := 0
		for _, r := range text {
			n += utf16Len(r)
		}
		return n
	default:
		return utf8.RuneCountInString(text)
	}
}

// Column converts a position in unit u to a rune column of text.
// The position is clamped to [0, u.Len(text)] first. A position inside a
// multi-unit character maps to the column of that character.
func (u PositionUnit) Column(text string, position int) int {
	position = clamp(position, 0, u.Len(text))

	switch u {
	case UnitByte:
		col := 0
		for offset := 0; offset < len(text); col++ {
			_, size := utf8.DecodeRuneInString(text[offset:])
			if offset+size > position {
				break
			}
			offset += size
		}
		return col
	case UnitUTF16:
		col, offset := 0, 0
		for _, r := range text {
			if offset+utf16Len(r) > position {
				break
			}
			offset += utf16Len(r)
			col++
		}
		return col
	default:
		return position
	}
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CaretLine returns the column of position, as spaces, followed by "^".
func CaretLine(text string, position int, unit PositionUnit) string {
	return strings.Repeat(" ", unit.Column(text, position)) + "^"
}

// Diagnostic returns text and its caret line, separated by a newline, so the
// caret sits under the character at position in a fixed-width font.
// Positions beyond the end of text put the caret just past the last
// character.
func Diagnostic(text string, position int, unit PositionUnit) string {
	return text + "\n" + CaretLine(text, position, unit)
}

// Underline is like Diagnostic but underlines length units starting at
// position with carets. The underline is at least one caret wide and stops
// at the end of text.
func Underline(text string, position, length int, unit PositionUnit) string {
	start := unit.Column(text, position)
	end := unit.Column(text, position+max(length, 0))
	width := max(end-start, 1)
	return text + "\n" + strings.Repeat(" ", start) + strings.Repeat("^", width)
}
