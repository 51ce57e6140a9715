package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiBlue  = "\033[34m"
	ansiCyan  = "\033[36m"
	ansiWhite = "\033[37m"
	ansiGray  = "\033[90m"
)

var colorEnabled = true

// DisableColors turns off ANSI colors in formatted output.
func DisableColors() {
	colorEnabled = false
}

// EnableColors turns ANSI colors back on.
func EnableColors() {
	colorEnabled = true
}

// paint wraps text in the given ANSI codes when colors are enabled.
func paint(text string, codes ...string) string {
	if !colorEnabled || len(codes) == 0 {
		return text
	}
	return strings.Join(codes, "") + text + ansiReset
}

// Style selects how an error is written.
type Style uint8

const (
	// StyleText is the multi-line terminal report.
	StyleText Style = iota
	// StyleCompact is one "file:line:col: code: message" line.
	StyleCompact
	// StyleJSON is one JSON object per line.
	StyleJSON
)

// ParseStyle parses "text", "compact" or "json".
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return StyleText, nil
	case "compact":
		return StyleCompact, nil
	case "json":
		return StyleJSON, nil
	}
	return StyleText, fmt.Errorf("unknown error format %q", s)
}

// String returns the name ParseStyle accepts.
func (s Style) String() string {
	switch s {
	case StyleCompact:
		return "compact"
	case StyleJSON:
		return "json"
	default:
		return "text"
	}
}

// Format returns the multi-line terminal report of the error.
func (e *Error) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	if e.Code != "" {
		b.WriteString(paint("ERROR ", ansiRed, ansiBold))
		b.WriteString(paint(e.Code+": ", ansiWhite, ansiBold))
	} else {
		b.WriteString(paint("ERROR: ", ansiRed, ansiBold))
	}
	b.WriteString(paint(e.Message, ansiWhite))
	b.WriteString("\n\n")

	if e.Location != nil {
		fmt.Fprintf(&b, "  %s\n\n", paint(e.Location.String(), ansiCyan))
		if len(e.Context) > 0 {
			e.writeContext(&b)
			b.WriteString("\n")
		}
	}

	if lines := wrapText(e.Detail, 70); len(lines) > 0 {
		for _, line := range lines {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s%s\n\n", paint("Hint: ", ansiCyan), e.Suggestion)
	}

	if e.Example != "" {
		fmt.Fprintf(&b, "  %s\n", paint("Example:", ansiCyan))
		for _, line := range strings.Split(e.Example, "\n") {
			fmt.Fprintf(&b, "    %s\n", line)
		}
		b.WriteString("\n")
	}

	if e.DocURL != "" {
		fmt.Fprintf(&b, "  %s%s\n", paint("Learn more: ", ansiGray), paint(e.DocURL, ansiBlue))
	}

	return b.String()
}

// writeContext writes the numbered context lines, marking the error line
// with an arrow and the error column with a caret.
func (e *Error) writeContext(b *strings.Builder) {
	first := e.Location.Line - len(e.Context)/2
	width := len(strconv.Itoa(first + len(e.Context)))
	gutter := paint(" │ ", ansiGray)

	for i, line := range e.Context {
		n := first + i
		if n != e.Location.Line {
			fmt.Fprintf(b, "    %*d%s%s\n", width, n, gutter, line)
			continue
		}

		fmt.Fprintf(b, "  %s%*d%s%s\n", paint("→ ", ansiRed), width, n, gutter, line)
		if e.Location.Column > 0 {
			fmt.Fprintf(b, "%s%s%s%s\n",
				strings.Repeat(" ", width+5),
				paint("│ ", ansiGray),
				strings.Repeat(" ", e.Location.Column-1),
				paint("^", ansiRed))
		}
	}
}

// FormatCompact returns the error on one line, prefixed with its location
// like compiler output.
func (e *Error) FormatCompact() string {
	parts := make([]string, 0, 3)
	if e.Location != nil {
		parts = append(parts, e.Location.String())
	}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

type jsonLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type jsonError struct {
	Code       string        `json:"code,omitempty"`
	Category   Category      `json:"category"`
	Message    string        `json:"message"`
	Detail     string        `json:"detail,omitempty"`
	Location   *jsonLocation `json:"location,omitempty"`
	Suggestion string        `json:"suggestion,omitempty"`
	DocURL     string        `json:"docUrl,omitempty"`
}

// FormatJSON returns the error as a single-line JSON object.
func (e *Error) FormatJSON() string {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
		DocURL:     e.DocURL,
	}
	if l := e.Location; l != nil {
		out.Location = &jsonLocation{File: l.File, Line: l.Line, Column: l.Column}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Message)
	}
	return string(data)
}

// wrapText breaks text into lines of at most width bytes at word
// boundaries. A single word longer than width gets its own line.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}

// Fprint writes err to w as a terminal report.
func Fprint(w io.Writer, err error) {
	FprintStyle(w, err, StyleText)
}

// FprintStyle writes err to w in style. Errors that are not an *Error are
// written as uncoded errors.
func FprintStyle(w io.Writer, err error, style Style) {
	var me *Error
	if !errors.As(err, &me) {
		me = &Error{Category: CategoryCLI, Message: err.Error()}
	}

	switch style {
	case StyleCompact:
		fmt.Fprintln(w, me.FormatCompact())
	case StyleJSON:
		fmt.Fprintln(w, me.FormatJSON())
	default:
		fmt.Fprint(w, me.Format())
	}
}

// PrintError writes err to stderr as a terminal report.
func PrintError(err error) {
	Fprint(os.Stderr, err)
}
