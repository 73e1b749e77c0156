// Package valuation 并发地对多个账户执行组合估值，并输出指标、日志与链路追踪。
package valuation

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/wyfcoding/quantpricing/algorithm/types"
	"github.com/wyfcoding/quantpricing/config"
	"github.com/wyfcoding/quantpricing/logging"
	"github.com/wyfcoding/quantpricing/metrics"
	"github.com/wyfcoding/quantpricing/money"
	"github.com/wyfcoding/quantpricing/portfolio"
	"github.com/wyfcoding/quantpricing/tracing"
	"github.com/wyfcoding/quantpricing/xerrors"
)

const (
	statusOK       = "ok"
	statusInactive = "inactive"
	statusError    = "error"
)

// Report 单个组合的估值结果。
type Report struct {
	Total         float64
	Exposure      map[types.AssetClass]float64
	Straddles     []portfolio.Straddle
	Expired       []string // 已到期衍生品的代码，按组合顺序
	PositionCount int
}

// AccountReport 单个账户的估值结果。非活跃账户的 Report 为 nil。
type AccountReport struct {
	AccountID string
	NetWorth  money.Money
	Report    *Report
	Inactive  bool
}

// Engine 估值引擎。
type Engine struct {
	workers int
	timeout time.Duration
	metrics *metrics.Metrics
	logger  *logging.Logger
}

// Option 引擎可选项。
type Option func(*Engine)

// WithMetrics 设置指标采集器。
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithLogger 设置日志记录器。
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine 按配置创建估值引擎，workers 小于 1 时按 1 处理。
func NewEngine(cfg config.ValuationConfig, opts ...Option) *Engine {
	e := &Engine{
		workers: max(cfg.Workers, 1),
		timeout: cfg.Timeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.Default().WithModule("valuation")
	}
	return e
}

// ValuePortfolio 计算组合总值、敞口、跨式组合与到期衍生品。nil 组合得到空报告。
func (e *Engine) ValuePortfolio(ctx context.Context, p *portfolio.Portfolio) Report {
	_, span := tracing.Start(ctx, "valuation.portfolio")
	defer span.End()

	if p == nil {
		p, _ = portfolio.New()
	}

	report := Report{
		Total:         p.TotalValue(),
		Exposure:      p.ExposureByAssetClass(),
		Straddles:     p.DetectStraddles(),
		Expired:       make([]string, 0),
		PositionCount: p.Len(),
	}
	for _, d := range p.Expired() {
		report.Expired = append(report.Expired, d.Ticker())
	}

	if e.metrics != nil {
		for _, pos := range p.Positions() {
			e.metrics.PositionsValued.WithLabelValues(string(pos.AssetClass())).Inc()
		}
		e.metrics.StraddlesDetected.Add(float64(len(report.Straddles)))
	}
	return report
}

// ValueAccounts 并发估值多个账户，结果与输入顺序一致。
// 任一账户失败或 ctx 结束时返回错误，不返回部分结果。
func (e *Engine) ValueAccounts(ctx context.Context, accounts []*portfolio.Account) ([]AccountReport, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	done := e.logger.LogDuration(ctx, "value accounts", "accounts", len(accounts), "workers", e.workers)
	defer done()

	reports := make([]AccountReport, len(accounts))
	p := pool.New().
		WithContext(ctx).
		WithMaxGoroutines(e.workers).
		WithCancelOnError().
		WithFirstError()

	for i, acc := range accounts {
		p.Go(func(ctx context.Context) error {
			r, err := e.valueAccount(ctx, acc)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		e.logger.ErrorContext(ctx, "account valuation failed", "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (e *Engine) valueAccount(ctx context.Context, acc *portfolio.Account) (AccountReport, error) {
	start := time.Now()
	ctx, span := tracing.Start(ctx, "valuation.account")
	defer span.End()

	if err := ctx.Err(); err != nil {
		tracing.Fail(ctx, err)
		e.observe(statusError, start)
		return AccountReport{}, err
	}
	if acc == nil {
		err := xerrors.Detailed(xerrors.ErrInvalidInput, "account must not be nil")
		tracing.Fail(ctx, err)
		e.observe(statusError, start)
		return AccountReport{}, err
	}
	tracing.Annotate(ctx, "account.id", acc.ID())

	if acc.Inactive() {
		tracing.Annotate(ctx, "account.inactive", true)
		e.logger.DebugContext(ctx, "skip inactive account", "account", acc.ID())
		e.observe(statusInactive, start)
		return AccountReport{AccountID: acc.ID(), NetWorth: acc.Cash(), Inactive: true}, nil
	}

	report := e.ValuePortfolio(ctx, acc.Portfolio())
	netWorth := acc.Cash().AddFloat(report.Total)
	tracing.Annotate(ctx, "account.positions", report.PositionCount)
	tracing.Annotate(ctx, "account.net_worth", netWorth)

	e.logger.DebugContext(ctx, "account valued",
		"account", acc.ID(),
		"positions", report.PositionCount,
		"net_worth", netWorth.String(),
		"straddles", len(report.Straddles))
	e.observe(statusOK, start)

	return AccountReport{AccountID: acc.ID(), NetWorth: netWorth, Report: &report}, nil
}

func (e *Engine) observe(status string, start time.Time) {
	if e.metrics == nil {
		return
	}
	e.metrics.ValuationsTotal.WithLabelValues(status).Inc()
	e.metrics.ValuationDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
}
