// Package markup builds HTML as a tree of nodes and renders it.
//
// The math engine emits its output as a Node tree, and the live preview and
// snapshot publisher wrap that output into complete documents with Page.
//
//	node := markup.El("span", markup.Class("mfrac"),
//	    markup.El("span", markup.Class("num"), markup.Text("1")),
//	    markup.El("span", markup.Class("den"), markup.Text("2")),
//	)
//	html, err := markup.NewRenderer(markup.RendererConfig{}).RenderToString(node)
//
// Text nodes and attribute values are escaped. Raw nodes are written as is
// and must only hold trusted HTML.
package markup
