package tracing

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSetup_DisabledLeavesGlobalProvider(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), Config{})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if otel.GetTracerProvider() != before {
		t.Fatalf("expected global provider untouched")
	}
}

func TestSetup_InstallsProvider(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	shutdown, err := Setup(context.Background(), Config{Endpoint: "127.0.0.1:4317", Insecure: true, SampleRate: 1})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); !ok {
		t.Fatalf("expected sdk provider, got %T", otel.GetTracerProvider())
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = shutdown(ctx)
}

func TestSampler(t *testing.T) {
	cases := map[float64]string{
		1:    sdktrace.AlwaysSample().Description(),
		2:    sdktrace.AlwaysSample().Description(),
		0:    sdktrace.NeverSample().Description(),
		-1:   sdktrace.NeverSample().Description(),
		0.25: sdktrace.TraceIDRatioBased(0.25).Description(),
	}
	for rate, want := range cases {
		if got := Sampler(rate).Description(); got != want {
			t.Fatalf("rate %v: expected %s, got %s", rate, want, got)
		}
	}
}
