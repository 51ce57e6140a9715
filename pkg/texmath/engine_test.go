package texmath

import (
	"strings"
	"testing"

	"github.com/vango-dev/mathlive/pkg/pipeline"
)

const mathOpen = `<math display="inline" xmlns="http://www.w3.org/1998/Math/MathML"><semantics>`

func inline(body, source string) string {
	return `<span class="mathlive">` + mathOpen + body +
		`<annotation encoding="application/x-tex">` + source + `</annotation></semantics></math></span>`
}

func TestRenderInline(t *testing.T) {
	tests := []struct {
		input string
		body  string
	}{
		{
			input: "x^2",
			body:  `<mrow><msup><mi>x</mi><mn>2</mn></msup></mrow>`,
		},
		{
			input: `\frac{1}{2}`,
			body:  `<mrow><mfrac><mn>1</mn><mn>2</mn></mfrac></mrow>`,
		},
		{
			input: `a+b`,
			body:  `<mrow><mi>a</mi><mo>+</mo><mi>b</mi></mrow>`,
		},
		{
			input: `\sqrt[3]{x}`,
			body:  `<mrow><mroot><mi>x</mi><mn>3</mn></mroot></mrow>`,
		},
		{
			input: `\left(a\right.`,
			body:  `<mrow><mrow><mo fence="true" stretchy="true">(</mo><mi>a</mi></mrow></mrow>`,
		},
		{
			input: `\text{if } x<0`,
			body:  `<mrow><mtext>if </mtext><mi>x</mi><mo>&lt;</mo><mn>0</mn></mrow>`,
		},
		{
			input: `\operatorname{sgn}\alpha`,
			body:  `<mrow><mi mathvariant="normal">sgn</mi><mi>α</mi></mrow>`,
		},
		{
			input: `\hat{x}`,
			body:  `<mrow><mover accent="true"><mi>x</mi><mo>^</mo></mover></mrow>`,
		},
		{
			input: "",
			body:  `<mrow></mrow>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := New().Render(tt.input, pipeline.InlinePreset())
			if err != nil {
				t.Fatalf("Render error: %v", err)
			}
			want := inline(tt.body, strings.ReplaceAll(tt.input, "<", "&lt;"))
			if string(got) != want {
				t.Errorf("Render(%q)\n got: %s\nwant: %s", tt.input, got, want)
			}
		})
	}
}

func TestRenderDisplay(t *testing.T) {
	got, err := New().Render(`\sum_{i=1}^n i`, pipeline.DisplayPreset())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	out := string(got)
	if !strings.HasPrefix(out, `<span class="mathlive-display"><span class="mathlive"><math display="block"`) {
		t.Errorf("display output should be a block: %s", out)
	}
	want := `<munderover><mo largeop="true" movablelimits="true">∑</mo><mrow><mi>i</mi><mo>=</mo><mn>1</mn></mrow><mi>n</mi></munderover>`
	if !strings.Contains(out, want) {
		t.Errorf("display sum should take limits:\n got: %s\nwant: %s", out, want)
	}

	got, err = New().Render(`\sum_{i=1}^n i`, pipeline.InlinePreset())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !strings.Contains(string(got), "<msubsup>") {
		t.Errorf("inline sum should use scripts: %s", got)
	}
}

func TestRenderTrustedExtensions(t *testing.T) {
	src := `-\frac{\hbar^2}{2m}\htmlClass{hl}{\frac{\partial^2\psi}{\partial x^2}} = \htmlClass{hl}{i\hbar}\frac{\partial \psi}{\htmlId{dt}{\partial t}}`

	got, err := New().Render(src, pipeline.DisplayPreset())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	out := string(got)
	for _, want := range []string{
		`<mrow class="hl"><mfrac>`,
		`<mrow class="hl"><mrow><mi>i</mi><mi>ℏ</mi></mrow></mrow>`,
		`<mrow id="dt">`,
		`<msup><mi>ℏ</mi><mn>2</mn></msup>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s\n%s", want, out)
		}
	}
}

func TestRenderPermitShowsErrors(t *testing.T) {
	opts := pipeline.RenderOptions{Strictness: pipeline.StrictPermitTrusted, DisplayMode: pipeline.DisplayInline}

	got, err := New().Render(`\foo`, opts)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	want := `<mtext class="mathlive-error" style="color:#cc0000" title="Undefined control sequence: \foo">\foo</mtext>`
	if !strings.Contains(string(got), want) {
		t.Errorf("got %s, want it to contain %s", got, want)
	}
}

func TestRenderFracError(t *testing.T) {
	_, err := New().Render(`\frac{1}`, pipeline.DisplayPreset())
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != `Expected group after '\frac' at position 8` {
		t.Errorf("Error() = %q", got)
	}
}

func TestRenderThroughPipeline(t *testing.T) {
	p := pipeline.New(New(), pipeline.DisplayPreset(), `\frac{1}`)
	defer p.Close()

	res := p.Result()
	if res.OK() || res.Position != 8 || res.Message != `Expected group after '\frac'` {
		t.Fatalf("Result() = %v", res)
	}
	if want := `\frac{1}` + "\n" + strings.Repeat(" ", 8) + "^"; p.Diagnostic() != want {
		t.Errorf("Diagnostic() = %q, want %q", p.Diagnostic(), want)
	}

	p.Edit(`\frac{1}{2}`)
	if res := p.Result(); !res.OK() || !strings.Contains(string(res.Markup), "<mfrac>") {
		t.Errorf("Result() after fix = %v", res)
	}
}
