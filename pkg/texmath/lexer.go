package texmath

import (
	"fmt"
	"unicode"

	"github.com/vango-dev/mathlive/pkg/pipeline"
)

type tokenKind uint8

const (
	tokEOF     tokenKind = iota
	tokChar              // any single character
	tokCommand           // \name or \ followed by one non-letter
	tokOpen              // {
	tokClose             // }
	tokSup               // ^
	tokSub               // _
)

// token is a lexeme. pos and end are rune offsets into the source.
type token struct {
	kind tokenKind
	text string
	pos  int
	end  int
}

// quoted returns the token as it appears in error messages.
func (t token) quoted() string {
	if t.kind == tokEOF {
		return "'EOF'"
	}
	return "'" + t.text + "'"
}

func (t token) length() int {
	return t.end - t.pos
}

// lex splits src into tokens, dropping whitespace and % comments.
// The last token is always tokEOF.
func lex(src []rune) ([]token, error) {
	tokens := make([]token, 0, len(src)+1)

	for i := 0; i < len(src); {
		r := src[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '%':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case r == '\\':
			start := i
			i++
			if i >= len(src) {
				return nil, &pipeline.ParseError{
					Message:  "Unexpected end of input after '\\'",
					Position: start,
					Length:   1,
					Class:    pipeline.ClassSyntax,
				}
			}
			if isASCIILetter(src[i]) {
				for i < len(src) && isASCIILetter(src[i]) {
					i++
				}
			} else {
				i++
			}
			tokens = append(tokens, token{kind: tokCommand, text: string(src[start:i]), pos: start, end: i})
		default:
			kind := tokChar
			switch r {
			case '{':
				kind = tokOpen
			case '}':
				kind = tokClose
			case '^':
				kind = tokSup
			case '_':
				kind = tokSub
			}
			tokens = append(tokens, token{kind: kind, text: string(r), pos: i, end: i + 1})
			i++
		}
	}

	tokens = append(tokens, token{kind: tokEOF, pos: len(src), end: len(src)})
	return tokens, nil
}

func isASCIILetter(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "EOF"
	case tokChar:
		return "char"
	case tokCommand:
		return "command"
	case tokOpen:
		return "open"
	case tokClose:
		return "close"
	case tokSup:
		return "sup"
	case tokSub:
		return "sub"
	default:
		return fmt.Sprintf("tokenKind(%d)", uint8(k))
	}
}
