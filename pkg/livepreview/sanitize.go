package livepreview

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	mathPolicyOnce sync.Once
	mathPolicy     *bluemonday.Policy
)

// Sanitize filters rendered markup through a MathML allow-list. Elements
// and attributes outside the list are dropped, including ids.
func Sanitize(raw string) string {
	return strings.TrimSpace(mathSanitizer().Sanitize(raw))
}

func mathSanitizer() *bluemonday.Policy {
	mathPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		elements := []string{
			"span", "math", "semantics", "annotation", "mrow", "mi", "mn",
			"mo", "mtext", "mspace", "mfrac", "msqrt", "mroot", "msub",
			"msup", "msubsup", "munder", "mover", "munderover", "mstyle",
		}
		policy.AllowElements(elements...)
		// bluemonday drops bare elements outside its HTML list, which would
		// flatten <mi>a</mi> to a.
		policy.AllowNoAttrs().OnElements(elements...)

		policy.AllowAttrs("class").Globally()
		policy.AllowAttrs("xmlns", "display").OnElements("math")
		policy.AllowAttrs("encoding").OnElements("annotation")
		policy.AllowAttrs("mathvariant").OnElements("mi")
		policy.AllowAttrs("fence", "stretchy", "largeop", "movablelimits").OnElements("mo")
		policy.AllowAttrs("accent").OnElements("mover")
		policy.AllowAttrs("displaystyle", "scriptlevel").OnElements("mstyle")
		policy.AllowAttrs("width").OnElements("mspace")
		policy.AllowAttrs("title").OnElements("mtext")
		policy.AllowStyles("color").OnElements("mtext")

		mathPolicy = policy
	})
	return mathPolicy
}
