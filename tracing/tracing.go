// Package tracing 封装 OpenTelemetry 链路追踪：安装全局 TracerProvider，开启 Span 并记录属性与错误.
package tracing

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/wyfcoding/quantpricing/config"
)

const tracerName = "github.com/wyfcoding/quantpricing"

// Init 按配置创建 OTLP/gRPC 导出器并安装为全局 TracerProvider.
// 未启用时保持 otel 默认的空实现，返回的 shutdown 什么也不做.
func Init(ctx context.Context, cfg config.TracingConfig) (shutdown func(context.Context) error, err error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create otlp exporter: %w", err)
	}

	tp, err := NewProvider(ctx, cfg, sdktrace.WithBatcher(exporter))
	if err != nil {
		return nil, err
	}
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	slog.Info("tracer provider initialized", "service", cfg.ServiceName, "endpoint", cfg.OTLPEndpoint)
	return tp.Shutdown, nil
}

// NewProvider 创建带服务资源与采样策略的 TracerProvider，导出方式由 opts 决定.
func NewProvider(ctx context.Context, cfg config.TracingConfig, opts ...sdktrace.TracerProviderOption) (*sdktrace.TracerProvider, error) {
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceNameKey.String(cfg.ServiceName)))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	opts = append([]sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	}, opts...)
	return sdktrace.NewTracerProvider(opts...), nil
}

// Start 在全局 Tracer 上开启一个 Span，调用方负责 End.
//
//nolint:spancheck // Span 生命周期由调用方管理.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// Annotate 为当前 Span 追加一个属性，Span 未被采样时直接返回.
func Annotate(ctx context.Context, key string, value any) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(Attr(key, value))
}

// Attr 把常见 Go 值转换为 Span 属性，其余类型按 fmt 格式化为字符串.
func Attr(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}

// Fail 在当前 Span 上记录错误并把状态置为 Error，err 为 nil 时忽略.
func Fail(ctx context.Context, err error) {
	if err == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// TraceID 返回 ctx 中的追踪 ID，没有时返回空串.
func TraceID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return ""
}
