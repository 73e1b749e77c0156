// Package logging 提供了统一的结构化日志（slog）封装，支持日志文件切割与 OpenTelemetry 追踪上下文注入。
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// defaultLogger 是全局默认的Logger实例，采用单例模式。
	defaultLogger *Logger
	once          sync.Once

	// level 为所有由本包创建的 Handler 共享，支持配置热更新时动态调整。
	level = new(slog.LevelVar)
)

// Config 定义日志配置
type Config struct {
	Service    string
	Module     string
	Level      string
	Format     string    // json（默认）或 text
	File       string    // 日志文件路径，为空则只输出到 Writer
	MaxSize    int       // 每个日志文件最大尺寸 (MB)
	MaxBackups int       // 保留旧日志文件的最大个数
	MaxAge     int       // 保留旧日志文件的最大天数
	Compress   bool      // 是否压缩旧日志
	Console    bool      // 配置了 File 时是否同时输出到 Writer
	Writer     io.Writer // 控制台输出目标，默认 os.Stdout
}

// Logger 封装了原生的 `*slog.Logger`，并附带服务名和模块名。
type Logger struct {
	*slog.Logger
	Service string
	Module  string
}

// TraceHandler 从 `context.Context` 中提取 `trace_id` 和 `span_id` 注入到日志记录中。
type TraceHandler struct {
	slog.Handler
}

// Handle 实现 `slog.Handler` 接口。
func (h *TraceHandler) Handle(ctx context.Context, r slog.Record) error {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		)
	}
	return h.Handler.Handle(ctx, r)
}

func (h *TraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TraceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *TraceHandler) WithGroup(name string) slog.Handler {
	return &TraceHandler{Handler: h.Handler.WithGroup(name)}
}

// ParseLevel 将配置中的级别字符串映射为 slog.Level，未知值按 info 处理。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetLevel 动态调整全局日志级别。
func SetLevel(s string) {
	level.Set(ParseLevel(s))
}

func newHandler(w io.Writer, format string) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "timestamp"
			}
			return a
		},
	}
	if format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// NewFromConfig 创建一个新的Logger实例。
func NewFromConfig(cfg Config) *Logger {
	level.Set(ParseLevel(cfg.Level))

	console := cfg.Writer
	if console == nil {
		console = os.Stdout
	}

	var handler slog.Handler
	if cfg.File != "" {
		fileHandler := newHandler(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}, "json")
		handler = fileHandler
		if cfg.Console {
			handler = newMultiHandler(fileHandler, newHandler(console, cfg.Format))
		}
	} else {
		handler = newHandler(console, cfg.Format)
	}

	logger := slog.New(&TraceHandler{Handler: handler}).With(
		slog.String("service", cfg.Service),
		slog.String("module", cfg.Module),
	)

	return &Logger{
		Logger:  logger,
		Service: cfg.Service,
		Module:  cfg.Module,
	}
}

// NewLogger 以简单参数创建 logger。
func NewLogger(service, module string, lvl ...string) *Logger {
	l := "info"
	if len(lvl) > 0 {
		l = lvl[0]
	}
	return NewFromConfig(Config{Service: service, Module: module, Level: l})
}

// InitLogger 初始化全局默认日志记录器，只生效一次。
func InitLogger(cfg Config) {
	once.Do(func() {
		defaultLogger = NewFromConfig(cfg)
		slog.SetDefault(defaultLogger.Logger)
	})
}

// Default 返回默认日志记录器实例
func Default() *Logger {
	InitLogger(Config{Service: "quantpricing", Module: "default", Level: "info"})
	return defaultLogger
}

// WithModule 派生一个模块名不同的子 Logger。
func (l *Logger) WithModule(module string) *Logger {
	return &Logger{
		Logger:  l.Logger.With(slog.String("submodule", module)),
		Service: l.Service,
		Module:  module,
	}
}

// Info 记录 Info 级别日志
func Info(ctx context.Context, msg string, args ...any) {
	Default().InfoContext(ctx, msg, args...)
}

// Warn 记录 Warn 级别日志
func Warn(ctx context.Context, msg string, args ...any) {
	Default().WarnContext(ctx, msg, args...)
}

// Error 记录 Error 级别日志
func Error(ctx context.Context, msg string, args ...any) {
	Default().ErrorContext(ctx, msg, args...)
}

// Debug 记录 Debug 级别日志
func Debug(ctx context.Context, msg string, args ...any) {
	Default().DebugContext(ctx, msg, args...)
}

// LogDuration 记录操作耗时
func (l *Logger) LogDuration(ctx context.Context, operation string, args ...any) func() {
	start := time.Now()
	return func() {
		logArgs := append(args, "duration", time.Since(start))
		l.InfoContext(ctx, fmt.Sprintf("%s finished", operation), logArgs...)
	}
}
