package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestLoggerWritesStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewFromConfig(Config{Service: "pricing", Module: "valuation", Level: "info", Writer: &buf})

	l.InfoContext(context.Background(), "portfolio valued", "total", 1250.5)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if entry["service"] != "pricing" || entry["module"] != "valuation" {
		t.Errorf("missing service/module attrs: %v", entry)
	}
	if entry["total"] != 1250.5 {
		t.Errorf("total = %v", entry["total"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("expected timestamp key")
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewFromConfig(Config{Service: "s", Module: "m", Level: "warn", Writer: &buf})

	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info logged at warn level: %s", buf.String())
	}

	SetLevel("debug")
	defer SetLevel("info")
	l.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("debug not logged after SetLevel: %q", buf.String())
	}
}

func TestTraceHandlerInjectsIDs(t *testing.T) {
	var buf bytes.Buffer
	l := NewFromConfig(Config{Service: "s", Module: "m", Level: "info", Writer: &buf})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	l.WithModule("child").InfoContext(ctx, "traced")
	out := buf.String()
	if !strings.Contains(out, traceID.String()) || !strings.Contains(out, spanID.String()) {
		t.Errorf("trace ids missing: %s", out)
	}
}

func TestFileAndConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "pricing.log")
	l := NewFromConfig(Config{Service: "s", Module: "m", Level: "info", File: path, Console: true, Format: "text", Writer: &buf})

	l.Info("both targets")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "both targets") {
		t.Errorf("file output missing message: %s", data)
	}
	if !strings.Contains(buf.String(), "msg=\"both targets\"") {
		t.Errorf("console output missing message: %s", buf.String())
	}
}
