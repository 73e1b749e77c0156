// Package metrics 封装独立注册表上的 Prometheus 指标.
package metrics

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 封装了基于 Prometheus 的指标采集注册表及估值相关的标准指标。
type Metrics struct {
	registry *prometheus.Registry

	ValuationsTotal   *prometheus.CounterVec   // 账户估值次数 (维度: status)
	ValuationDuration *prometheus.HistogramVec // 单账户估值耗时
	PositionsValued   *prometheus.CounterVec   // 已估值持仓数 (维度: asset_class)
	StraddlesDetected prometheus.Counter       // 识别出的跨式组合数
	BuildInfo         *prometheus.GaugeVec
}

// NewMetrics 初始化并返回一个新的指标采集器。
// 它会自动注册 Go 运行时指标和进程指标。
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: reg}

	m.ValuationsTotal = m.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "valuations_total",
		Help:      "Total number of account valuations",
	}, []string{"status"})

	m.ValuationDuration = m.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "valuation_duration_seconds",
		Help:      "Account valuation latency in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"status"})

	m.PositionsValued = m.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "positions_valued_total",
		Help:      "Total number of positions valued",
	}, []string{"asset_class"})

	m.StraddlesDetected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "straddles_detected_total",
		Help:      "Total number of straddles detected",
	})
	reg.MustRegister(m.StraddlesDetected)

	slog.Info("unified metrics registry initialized", "namespace", namespace)
	return m
}

// RegisterBuildInfo 注册构建信息指标。
func (m *Metrics) RegisterBuildInfo(service, version string) {
	if m == nil || m.BuildInfo != nil {
		return
	}
	if service == "" {
		service = "unknown"
	}
	if version == "" {
		version = "unknown"
	}

	m.BuildInfo = m.NewGaugeVec(prometheus.GaugeOpts{
		Name: "build_info",
		Help: "Build information for the service",
	}, []string{"service", "version"})
	m.BuildInfo.WithLabelValues(service, version).Set(1)
}

// NewCounterVec 创建并注册一个新的计数器指标。
func (m *Metrics) NewCounterVec(opts prometheus.CounterOpts, labelNames []string) *prometheus.CounterVec {
	cv := prometheus.NewCounterVec(opts, labelNames)
	m.registry.MustRegister(cv)
	return cv
}

// NewGaugeVec 创建并注册一个新的仪表盘指标。
func (m *Metrics) NewGaugeVec(opts prometheus.GaugeOpts, labelNames []string) *prometheus.GaugeVec {
	gv := prometheus.NewGaugeVec(opts, labelNames)
	m.registry.MustRegister(gv)
	return gv
}

// NewHistogramVec 创建并注册一个新的直方图指标。
func (m *Metrics) NewHistogramVec(opts prometheus.HistogramOpts, labelNames []string) *prometheus.HistogramVec {
	hv := prometheus.NewHistogramVec(opts, labelNames)
	m.registry.MustRegister(hv)
	return hv
}

// Registry 返回内部注册表。
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler 返回用于暴露指标的 HTTP 处理器。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
