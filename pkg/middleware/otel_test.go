package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vango-dev/mathlive/pkg/pipeline"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type recordedSpan struct {
	noop.Span

	name   string
	kind   trace.SpanKind
	parent context.Context
	attrs  []attribute.KeyValue
	errs   []error
	status codes.Code
	ended  bool
}

func (s *recordedSpan) SetAttributes(kv ...attribute.KeyValue) {
	s.attrs = append(s.attrs, kv...)
}

func (s *recordedSpan) RecordError(err error, _ ...trace.EventOption) {
	s.errs = append(s.errs, err)
}

func (s *recordedSpan) SetStatus(code codes.Code, _ string) {
	s.status = code
}

func (s *recordedSpan) End(...trace.SpanEndOption) {
	s.ended = true
}

func (s *recordedSpan) attr(key string) (attribute.Value, bool) {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

type recordingTracer struct {
	noop.Tracer
	spans *[]*recordedSpan
}

func (t recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	span := &recordedSpan{
		name:   name,
		kind:   cfg.SpanKind(),
		parent: ctx,
		attrs:  append([]attribute.KeyValue(nil), cfg.Attributes()...),
	}
	*t.spans = append(*t.spans, span)
	return trace.ContextWithSpan(ctx, span), span
}

type recordingProvider struct {
	noop.TracerProvider
	names []string
	spans []*recordedSpan
}

func (p *recordingProvider) Tracer(name string, _ ...trace.TracerOption) trace.Tracer {
	p.names = append(p.names, name)
	return recordingTracer{spans: &p.spans}
}

func TestOpenTelemetryMiddleware_Success(t *testing.T) {
	tp := &recordingProvider{}
	engine := OpenTelemetry(WithTracerProvider(tp))(scriptedEngine(nil))

	out, err := engine.Render("a+b", pipeline.DisplayPreset())
	if err != nil || out != "<math>a+b</math>" {
		t.Fatalf("Render = %q, %v", out, err)
	}

	if len(tp.names) != 1 || tp.names[0] != "mathlive" {
		t.Errorf("tracer names = %v, want [mathlive]", tp.names)
	}
	if len(tp.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(tp.spans))
	}
	span := tp.spans[0]
	if span.name != SpanName {
		t.Errorf("span name = %q, want %q", span.name, SpanName)
	}
	if span.kind != trace.SpanKindInternal {
		t.Errorf("span kind = %v, want internal", span.kind)
	}
	if !span.ended {
		t.Error("span was not ended")
	}
	if span.status != codes.Ok {
		t.Errorf("status = %v, want Ok", span.status)
	}

	checks := map[string]attribute.Value{
		"mathlive.strict":        attribute.StringValue("fail-on-error"),
		"mathlive.display_mode":  attribute.StringValue("block"),
		"mathlive.trust":         attribute.BoolValue(true),
		"mathlive.source_length": attribute.IntValue(3),
		"mathlive.output_length": attribute.IntValue(len(out)),
	}
	for key, want := range checks {
		got, ok := span.attr(key)
		if !ok {
			t.Errorf("missing attribute %s", key)
			continue
		}
		if got != want {
			t.Errorf("%s = %v, want %v", key, got.Emit(), want.Emit())
		}
	}
	if _, ok := span.attr("mathlive.source"); ok {
		t.Error("source should not be recorded by default")
	}
}

func TestOpenTelemetryMiddleware_Failure(t *testing.T) {
	tp := &recordingProvider{}
	want := pipeline.NewParseError(8, 0, "Expected group after '\\frac'")
	engine := OpenTelemetry(WithTracerProvider(tp))(scriptedEngine(map[string]error{`\frac{1}`: want}))

	if _, err := engine.Render(`\frac{1}`, pipeline.InlinePreset()); err != want {
		t.Fatalf("Render error = %v, want %v", err, want)
	}

	span := tp.spans[0]
	if span.status != codes.Error {
		t.Errorf("status = %v, want Error", span.status)
	}
	if len(span.errs) != 1 || !errors.Is(span.errs[0], want) {
		t.Errorf("recorded errors = %v", span.errs)
	}
	if got, _ := span.attr("mathlive.error_class"); got.AsString() != "syntax" {
		t.Errorf("error_class = %q, want syntax", got.AsString())
	}
	if got, _ := span.attr("mathlive.error_position"); got.AsInt64() != 8 {
		t.Errorf("error_position = %d, want 8", got.AsInt64())
	}
	if !span.ended {
		t.Error("span was not ended")
	}
}

func TestOpenTelemetryMiddleware_UnpositionedFailure(t *testing.T) {
	tp := &recordingProvider{}
	engine := OpenTelemetry(WithTracerProvider(tp))(scriptedEngine(map[string]error{"x": errors.New("boom")}))

	_, _ = engine.Render("x", pipeline.InlinePreset())

	span := tp.spans[0]
	if got, _ := span.attr("mathlive.error_class"); got.AsString() != "unclassified" {
		t.Errorf("error_class = %q, want unclassified", got.AsString())
	}
	if _, ok := span.attr("mathlive.error_position"); ok {
		t.Error("error_position should be absent for unpositioned errors")
	}
}

type ctxKey struct{}

func TestOpenTelemetryMiddleware_Options(t *testing.T) {
	tp := &recordingProvider{}
	base := context.WithValue(context.Background(), ctxKey{}, "request")

	engine := OpenTelemetry(
		WithTracerProvider(tp),
		WithTracerName("custom"),
		WithBaseContext(base),
		WithIncludeSource(true),
		WithRenderFilter(func(text string, _ pipeline.RenderOptions) bool {
			return text != "skip"
		}),
		WithAttributeExtractor(func(string, pipeline.RenderOptions) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	)(scriptedEngine(nil))

	if out, err := engine.Render("skip", pipeline.InlinePreset()); err != nil || out != "<math>skip</math>" {
		t.Fatalf("filtered Render = %q, %v", out, err)
	}
	if len(tp.spans) != 0 {
		t.Fatalf("filtered call produced %d spans", len(tp.spans))
	}

	_, _ = engine.Render(`\alpha`, pipeline.InlinePreset())
	if len(tp.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(tp.spans))
	}

	span := tp.spans[0]
	if tp.names[0] != "custom" {
		t.Errorf("tracer name = %q, want custom", tp.names[0])
	}
	if span.parent.Value(ctxKey{}) != "request" {
		t.Error("span was not started from the base context")
	}
	if got, _ := span.attr("mathlive.source"); got.AsString() != `\alpha` {
		t.Errorf("source = %q", got.AsString())
	}
	if got, _ := span.attr("test.attr"); got.AsString() != "ok" {
		t.Errorf("test.attr = %q, want ok", got.AsString())
	}
}

func TestOpenTelemetryConfig(t *testing.T) {
	config := defaultOTelConfig()

	if config.TracerName != "mathlive" {
		t.Errorf("TracerName = %q, want mathlive", config.TracerName)
	}
	if config.TracerProvider != nil || config.BaseContext != nil {
		t.Error("provider and base context should default to nil")
	}
	if config.IncludeSource {
		t.Error("IncludeSource should default to false")
	}
}

func TestMiddlewareChain(t *testing.T) {
	resetGlobalMetricsForTest()
	tp := &recordingProvider{}

	p := pipeline.New(scriptedEngine(nil), pipeline.InlinePreset(), "a+b",
		pipeline.WithMiddleware(
			OpenTelemetry(WithTracerProvider(tp)),
			Prometheus(WithRegistry(prometheus.NewRegistry())),
		),
	)
	defer p.Close()

	if res := p.Result(); !res.OK() {
		t.Fatalf("Result() = %v, want success", res)
	}
	if len(tp.spans) != 1 {
		t.Errorf("spans = %d, want 1", len(tp.spans))
	}
	if got := metricCounterValue(t, currentMetrics().rendersTotal.WithLabelValues("success", "none")); got != 1 {
		t.Errorf("renders_total(success)=%v, want 1", got)
	}
}
