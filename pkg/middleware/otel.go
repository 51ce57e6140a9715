package middleware

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/vango-dev/mathlive/pkg/pipeline"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for mathlive.
const defaultTracerName = "mathlive"

// SpanName is the name of the span started for each render call.
const SpanName = "mathlive.render"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "mathlive").
	TracerName string

	// TracerProvider supplies the tracer. If nil, the global provider is used.
	TracerProvider trace.TracerProvider

	// BaseContext returns the parent context for each span.
	// If nil, context.Background is used.
	BaseContext func() context.Context

	// IncludeSource records the source text as a span attribute.
	// Disabled by default.
	IncludeSource bool

	// Filter determines which calls to trace.
	// Return true to trace the call, false to skip.
	// If nil, all calls are traced.
	Filter func(text string, opts pipeline.RenderOptions) bool

	// AttributeExtractor adds custom attributes for each traced call.
	AttributeExtractor func(text string, opts pipeline.RenderOptions) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithBaseContext sets the context spans are parented on.
func WithBaseContext(ctx context.Context) OTelOption {
	return func(c *OTelConfig) {
		c.BaseContext = func() context.Context { return ctx }
	}
}

// WithIncludeSource enables recording the source text on spans.
func WithIncludeSource(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeSource = include
	}
}

// WithRenderFilter sets a filter function for render calls.
func WithRenderFilter(filter func(text string, opts pipeline.RenderOptions) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(text string, opts pipeline.RenderOptions) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates an engine middleware that traces every render call.
//
// Each span carries the render options and source length. Failures are
// recorded on the span with their class and position, and the span status
// is set to Error.
//
// Example:
//
//	p := pipeline.New(engine, opts, initial,
//	    pipeline.WithMiddleware(middleware.OpenTelemetry(
//	        middleware.WithBaseContext(r.Context()),
//	    )),
//	)
//
// The tracer uses the global OpenTelemetry tracer provider unless
// WithTracerProvider is given. Configure it in main() before rendering:
//
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) pipeline.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	var tracer trace.Tracer
	if config.TracerProvider != nil {
		tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		tracer = otel.Tracer(config.TracerName)
	}

	return func(next pipeline.Engine) pipeline.Engine {
		return pipeline.EngineFunc(func(text string, opts pipeline.RenderOptions) (pipeline.RenderedOutput, error) {
			if config.Filter != nil && !config.Filter(text, opts) {
				return next.Render(text, opts)
			}

			attrs := []attribute.KeyValue{
				attribute.String("mathlive.strict", opts.Strictness.String()),
				attribute.String("mathlive.display_mode", opts.DisplayMode.String()),
				attribute.Bool("mathlive.trust", opts.Trust),
				attribute.Int("mathlive.source_length", utf8.RuneCountInString(text)),
			}
			if config.IncludeSource {
				attrs = append(attrs, attribute.String("mathlive.source", text))
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(text, opts)...)
			}

			ctx := context.Background()
			if config.BaseContext != nil {
				ctx = config.BaseContext()
			}

			_, span := tracer.Start(ctx, SpanName,
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			out, err := next.Render(text, opts)

			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				span.SetAttributes(attribute.String("mathlive.error_class", pipeline.ClassOf(err).String()))
				var pos pipeline.Positioned
				if errors.As(err, &pos) {
					span.SetAttributes(attribute.Int("mathlive.error_position", pos.Offset()))
				}
			} else {
				span.SetStatus(codes.Ok, "")
				span.SetAttributes(attribute.Int("mathlive.output_length", len(out)))
			}

			return out, err
		})
	}
}
