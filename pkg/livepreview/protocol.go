package livepreview

import "github.com/vango-dev/mathlive/pkg/pipeline"

// ClientMessage is sent by the browser on every input event. It carries the
// full text of the input, not a delta.
type ClientMessage struct {
	Text string `json:"text"`
}

// Update is sent to the browser for every fresh render result.
//
// On success only HTML is set. On failure Message, Position and Diagnostic
// describe where the text went wrong; the preview is replaced by them.
type Update struct {
	// Seq increases with every update of a session.
	Seq uint64 `json:"seq,omitempty"`

	OK   bool   `json:"ok"`
	HTML string `json:"html,omitempty"`

	Message    string `json:"message,omitempty"`
	Position   int    `json:"position"`
	Length     int    `json:"length,omitempty"`
	Class      string `json:"class,omitempty"`
	Diagnostic string `json:"diagnostic,omitempty"`
	Underline  string `json:"underline,omitempty"`
}

// RenderRequest is the body of a POST /render request.
type RenderRequest struct {
	Text string `json:"text"`

	// Preset optionally replaces the server's render options.
	Preset string `json:"preset,omitempty"`
}

// newUpdate converts a render result into its wire form.
func (s *Server) newUpdate(res pipeline.RenderResult, opts pipeline.RenderOptions) Update {
	if res.OK() {
		html := string(res.Markup)
		if s.config.Sanitize && !opts.Trust {
			html = Sanitize(html)
		}
		return Update{OK: true, HTML: html}
	}

	unit := s.config.PositionUnit
	u := Update{
		Message:    res.Message,
		Position:   res.Position,
		Length:     res.Length,
		Class:      res.Class.String(),
		Diagnostic: res.Diagnostic(unit),
	}
	if res.Length > 0 {
		u.Underline = pipeline.Underline(res.Source, res.Position, res.Length, unit)
	}
	return u
}
