package livepreview

import (
	"strings"
	"testing"

	"github.com/vango-dev/mathlive/pkg/pipeline"
	"github.com/vango-dev/mathlive/pkg/texmath"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keeps math", `<math><mi>a</mi></math>`, `<math><mi>a</mi></math>`},
		{"drops script", `<math><mi>a</mi><script>alert(1)</script></math>`, `<math><mi>a</mi></math>`},
		{"drops handlers", `<mi onclick="x()">a</mi>`, `<mi>a</mi>`},
		{"drops ids", `<mrow id="dt" class="hl"><mi>t</mi></mrow>`, `<mrow class="hl"><mi>t</mi></mrow>`},
		{"keeps bare children", `<math><mrow><mfrac><mi>a</mi><mn>2</mn></mfrac><msqrt><mi>x</mi></msqrt></mrow></math>`, `<math><mrow><mfrac><mi>a</mi><mn>2</mn></mfrac><msqrt><mi>x</mi></msqrt></mrow></math>`},
		{"keeps variant", `<mi mathvariant="normal">sin</mi>`, `<mi mathvariant="normal">sin</mi>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeKeepsEngineOutput(t *testing.T) {
	out, err := texmath.New().Render(`\sqrt[3]{x}+\frac{a}{b}`, pipeline.InlinePreset())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	got := Sanitize(string(out))
	for _, want := range []string{
		`<math display="inline" xmlns="http://www.w3.org/1998/Math/MathML">`,
		`<mroot><mi>x</mi><mn>3</mn></mroot>`,
		`<mfrac><mi>a</mi><mi>b</mi></mfrac>`,
		`<annotation encoding="application/x-tex">`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("sanitized output missing %q:\n%s", want, got)
		}
	}
}
