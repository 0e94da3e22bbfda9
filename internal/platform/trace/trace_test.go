package trace

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracer_UsesGlobalProvider(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	old := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(old) })

	_, span := Tracer().Start(context.Background(), "rewrite")
	span.End()

	ended := rec.Ended()
	if len(ended) != 1 {
		t.Fatalf("ended spans: got %d, want 1", len(ended))
	}
	if ended[0].Name() != "rewrite" {
		t.Fatalf("span name: got %q", ended[0].Name())
	}
	if ended[0].InstrumentationScope().Name != TracerName {
		t.Fatalf("scope: got %q, want %q", ended[0].InstrumentationScope().Name, TracerName)
	}
}
