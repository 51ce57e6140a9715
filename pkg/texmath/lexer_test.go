package texmath

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/mathlive/pkg/pipeline"
)

func TestLex(t *testing.T) {
	tokens, err := lex([]rune(`\frac{1}`))
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}

	want := []token{
		{kind: tokCommand, text: `\frac`, pos: 0, end: 5},
		{kind: tokOpen, text: "{", pos: 5, end: 6},
		{kind: tokChar, text: "1", pos: 6, end: 7},
		{kind: tokClose, text: "}", pos: 7, end: 8},
		{kind: tokEOF, pos: 8, end: 8},
	}
	if diff := cmp.Diff(want, tokens, cmp.AllowUnexported(token{})); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestLexSkipsSpaceAndComments(t *testing.T) {
	tokens, err := lex([]rune("α ^ 2 % comment\n\\,x_"))
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}

	var kinds []tokenKind
	var texts []string
	for _, tok := range tokens {
		kinds = append(kinds, tok.kind)
		texts = append(texts, tok.text)
	}

	wantKinds := []tokenKind{tokChar, tokSup, tokChar, tokCommand, tokChar, tokSub, tokEOF}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	if texts[3] != `\,` {
		t.Errorf("control symbol = %q, want %q", texts[3], `\,`)
	}
	if tokens[0].pos != 0 || tokens[2].pos != 4 {
		t.Errorf("positions should count runes: got %d and %d", tokens[0].pos, tokens[2].pos)
	}
}

func TestLexTrailingBackslash(t *testing.T) {
	_, err := lex([]rune(`x+\`))
	pe, ok := err.(*pipeline.ParseError)
	if !ok {
		t.Fatalf("expected *pipeline.ParseError, got %T", err)
	}
	if pe.Position != 2 || pe.Class != pipeline.ClassSyntax {
		t.Errorf("got %+v", pe)
	}
}

func TestTokenQuoted(t *testing.T) {
	if got := (token{kind: tokEOF}).quoted(); got != "'EOF'" {
		t.Errorf("EOF quoted = %q", got)
	}
	if got := (token{kind: tokClose, text: "}"}).quoted(); got != "'}'" {
		t.Errorf("close quoted = %q", got)
	}
}
