package markup

import "io"

// Page contains everything needed to render a complete HTML document.
type Page struct {
	Title string

	// Lang defaults to "en".
	Lang string

	// Styles are inline CSS blocks.
	Styles []string

	// Scripts are inline scripts placed at the end of the body.
	Scripts []string

	Body *Node
}

// Document returns the page as an <html> node.
func (p Page) Document() *Node {
	lang := p.Lang
	if lang == "" {
		lang = "en"
	}

	head := El("head",
		El("meta", A("charset", "utf-8")),
		El("meta", A("name", "viewport"), A("content", "width=device-width, initial-scale=1")),
		El("title", Text(p.Title)),
	)
	for _, css := range p.Styles {
		head.Append(El("style", Raw(css)))
	}

	body := El("body", p.Body)
	for _, js := range p.Scripts {
		body.Append(El("script", Raw(js)))
	}

	return El("html", A("lang", lang), head, body)
}

// RenderPage writes the page as a complete HTML document.
func (r *Renderer) RenderPage(w io.Writer, page Page) error {
	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	return r.RenderToWriter(w, page.Document())
}
