// Package livepreview serves a browser editor that renders math markup as
// it is typed.
//
// Every WebSocket connection owns one render pipeline. The browser sends the
// full text of the input on each change; the session edits the pipeline's
// source and pushes the fresh result back as an Update. Failures are sent as
// a message with the caret diagnostic, never alongside rendered output.
//
// Routes:
//
//	GET  /          editor page, with the initial text already rendered
//	GET  /render    one-off render of ?text=
//	POST /render    one-off render of a JSON RenderRequest
//	GET  /ws        live session
//	GET  /metrics   Prometheus metrics, when enabled
//	GET  /healthz   liveness probe
//
// When the render options do not trust the input and Config.Sanitize is
// set, rendered markup is filtered through a MathML allow-list before it is
// sent to the browser.
package livepreview
