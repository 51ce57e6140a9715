// Package middleware provides engine middlewares for render pipelines.
//
// A middleware has the shape func(pipeline.Engine) pipeline.Engine and is
// installed with pipeline.WithMiddleware. Middlewares see every call the
// pipeline makes to its engine, including failed ones.
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware starts one span per render call, carrying the
// render options and source length. Failures set the span status to Error
// and record the error class and position.
//
//	pipeline.WithMiddleware(
//	    middleware.OpenTelemetry(
//	        middleware.WithTracerName("my-app"),
//	        middleware.WithBaseContext(ctx),
//	    ),
//	)
//
// # Prometheus Metrics
//
// The Prometheus middleware collects:
//   - mathlive_renders_total: Render calls by result and error class
//   - mathlive_render_duration_seconds: Render duration histogram
//   - mathlive_source_length_runes: Source length histogram
//
// The live preview server also reports mathlive_active_sessions and
// mathlive_websocket_errors_total through RecordSessionOpen,
// RecordSessionClose and RecordWebSocketError.
//
//	pipeline.WithMiddleware(middleware.Prometheus())
//
// Then expose the metrics:
//
//	http.Handle("/metrics", promhttp.Handler())
package middleware
