package tracing

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/wyfcoding/quantpricing/config"
	"github.com/wyfcoding/quantpricing/money"
)

func installProvider(t *testing.T, cfg config.TracingConfig) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp, err := NewProvider(context.Background(), cfg, sdktrace.WithSyncer(exporter))
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return exporter
}

func TestStartAnnotateFail(t *testing.T) {
	exporter := installProvider(t, config.TracingConfig{ServiceName: "pricing", SampleRatio: 1})

	ctx, span := Start(context.Background(), "valuation.account", Attr("account.id", "ACC-1"))
	Annotate(ctx, "positions", 3)
	Annotate(ctx, "net_worth", money.New(11300))
	Fail(ctx, errors.New("boom"))
	Fail(ctx, nil)

	if TraceID(ctx) == "" {
		t.Error("expected trace id inside span")
	}
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("exported spans = %d, want 1", len(spans))
	}
	got := spans[0]
	if got.Name != "valuation.account" {
		t.Errorf("span name = %q", got.Name)
	}
	if got.Status.Code != codes.Error || got.Status.Description != "boom" {
		t.Errorf("status = %+v", got.Status)
	}

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range got.Attributes {
		attrs[kv.Key] = kv.Value
	}
	if attrs["account.id"].AsString() != "ACC-1" || attrs["positions"].AsInt64() != 3 {
		t.Errorf("attributes = %v", attrs)
	}
	if attrs["net_worth"].AsString() != "11300.00" {
		t.Errorf("net_worth = %v", attrs["net_worth"])
	}

	var service string
	for _, kv := range got.Resource.Attributes() {
		if kv.Key == "service.name" {
			service = kv.Value.AsString()
		}
	}
	if service != "pricing" {
		t.Errorf("service.name = %q", service)
	}
}

func TestSamplerDropsWhenRatioZero(t *testing.T) {
	exporter := installProvider(t, config.TracingConfig{ServiceName: "pricing", SampleRatio: 0})

	ctx, span := Start(context.Background(), "dropped")
	Annotate(ctx, "ignored", true)
	span.End()

	if n := len(exporter.GetSpans()); n != 0 {
		t.Errorf("exported spans = %d, want 0", n)
	}
}

func TestAttr(t *testing.T) {
	tests := []struct {
		value any
		want  attribute.Value
	}{
		{"s", attribute.StringValue("s")},
		{true, attribute.BoolValue(true)},
		{int64(7), attribute.Int64Value(7)},
		{2.5, attribute.Float64Value(2.5)},
		{[]int{1}, attribute.StringValue("[1]")},
	}
	for _, tt := range tests {
		if got := Attr("k", tt.value).Value; got != tt.want {
			t.Errorf("Attr(%v) = %v, want %v", tt.value, got.Emit(), tt.want.Emit())
		}
	}
}

func TestTraceIDWithoutSpan(t *testing.T) {
	if id := TraceID(context.Background()); id != "" {
		t.Errorf("TraceID = %q, want empty", id)
	}
}

func TestInitEnabledInstallsProvider(t *testing.T) {
	prevTP := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})

	shutdown, err := Init(context.Background(), config.TracingConfig{
		Enabled:      true,
		ServiceName:  "pricing",
		OTLPEndpoint: "127.0.0.1:4317",
		SampleRatio:  1,
	})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); !ok {
		t.Errorf("global provider = %T, want *sdktrace.TracerProvider", otel.GetTracerProvider())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}

func TestInitDisabled(t *testing.T) {
	shutdown, err := Init(context.Background(), config.TracingConfig{})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}
