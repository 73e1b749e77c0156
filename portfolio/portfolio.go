// Package portfolio 聚合持仓估值，按资产类别统计敞口并识别跨式组合等策略。
//
// Portfolio 不加锁：聚合方法都是对当前持仓集合的只读遍历，
// 并发读取时由调用方保证期间不修改持仓集合。
package portfolio

import (
	"slices"
	"time"

	"github.com/wyfcoding/quantpricing/algorithm/types"
	"github.com/wyfcoding/quantpricing/instrument"
	"github.com/wyfcoding/quantpricing/xerrors"
)

// Portfolio 按插入顺序保存的持仓集合。
type Portfolio struct {
	positions []instrument.Position
}

// New 创建组合。
func New(positions ...instrument.Position) (*Portfolio, error) {
	p := &Portfolio{positions: make([]instrument.Position, 0, len(positions))}
	for _, pos := range positions {
		if err := p.Add(pos); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// FromSpecs 由声明式输入构造组合，遇到第一个非法持仓即返回错误。
func FromSpecs(specs []instrument.Spec, asOf time.Time, d instrument.Defaults) (*Portfolio, error) {
	p := &Portfolio{positions: make([]instrument.Position, 0, len(specs))}
	for i, s := range specs {
		pos, err := instrument.Build(s, asOf, d)
		if err != nil {
			if e, ok := xerrors.FromError(err); ok {
				e.WithContext("index", i)
			}
			return nil, err
		}
		p.positions = append(p.positions, pos)
	}
	return p, nil
}

// Add 追加持仓。
func (p *Portfolio) Add(pos instrument.Position) error {
	if pos == nil {
		return xerrors.Detailed(xerrors.ErrInvalidPosition, "position must not be nil")
	}
	p.positions = append(p.positions, pos)
	return nil
}

// RemoveAt 移除第 i 个持仓，其余持仓保持原有顺序。
func (p *Portfolio) RemoveAt(i int) (instrument.Position, error) {
	if i < 0 || i >= len(p.positions) {
		return nil, xerrors.Detailed(xerrors.ErrInvalidInput, "index %d out of range [0, %d)", i, len(p.positions))
	}
	removed := p.positions[i]
	p.positions = slices.Delete(p.positions, i, i+1)
	return removed, nil
}

// Len 持仓数量。
func (p *Portfolio) Len() int { return len(p.positions) }

// Positions 返回持仓切片的副本。
func (p *Portfolio) Positions() []instrument.Position {
	out := make([]instrument.Position, len(p.positions))
	copy(out, p.positions)
	return out
}

// TotalValue 所有持仓当前估值之和。
func (p *Portfolio) TotalValue() float64 {
	var total float64
	for _, pos := range p.positions {
		total += pos.CurrentValue()
	}
	return total
}

// ExposureByAssetClass 按资产类别汇总估值，只包含至少有一个持仓的类别。
func (p *Portfolio) ExposureByAssetClass() map[types.AssetClass]float64 {
	exposure := make(map[types.AssetClass]float64)
	for _, pos := range p.positions {
		exposure[pos.AssetClass()] += pos.CurrentValue()
	}
	return exposure
}

// Reprice 以新行情重新定价，返回新组合；原组合不变。
func (p *Portfolio) Reprice(quotes map[string]instrument.Quote) (*Portfolio, error) {
	out := &Portfolio{positions: make([]instrument.Position, 0, len(p.positions))}
	for _, pos := range p.positions {
		q, ok := quotes[pos.Ticker()]
		if !ok {
			return nil, xerrors.Detailed(xerrors.ErrMissingQuote, "no quote for %s", pos.Ticker()).
				WithContext("ticker", pos.Ticker())
		}
		repriced, err := pos.Requote(q)
		if err != nil {
			return nil, err
		}
		out.positions = append(out.positions, repriced)
	}
	return out, nil
}

// AverageMarketPrice 持仓单位现价的算术平均，空组合为 0。
func (p *Portfolio) AverageMarketPrice() float64 {
	if len(p.positions) == 0 {
		return 0
	}
	var sum float64
	for _, pos := range p.positions {
		sum += pos.Quote().Price
	}
	return sum / float64(len(p.positions))
}

// DividendPayers 派息股票持仓。
func (p *Portfolio) DividendPayers() []*instrument.Stock {
	var out []*instrument.Stock
	for _, pos := range p.positions {
		if s, ok := pos.(*instrument.Stock); ok && s.PaysDividends() {
			out = append(out, s)
		}
	}
	return out
}

// Derivatives 期货与期权持仓。
func (p *Portfolio) Derivatives() []instrument.Derivative {
	var out []instrument.Derivative
	for _, pos := range p.positions {
		switch d := pos.(type) {
		case *instrument.Futures:
			out = append(out, d)
		case *instrument.Option:
			out = append(out, d)
		case *instrument.Stock:
		}
	}
	return out
}

// Expired 已到期的衍生品持仓。
func (p *Portfolio) Expired() []instrument.Derivative {
	var out []instrument.Derivative
	for _, d := range p.Derivatives() {
		if d.IsExpired() {
			out = append(out, d)
		}
	}
	return out
}

// HighestStrikeCall 行权价最高的看涨期权，并列时取最早加入的一个。
func (p *Portfolio) HighestStrikeCall() (*instrument.Option, bool) {
	var best *instrument.Option
	for _, pos := range p.positions {
		o, ok := pos.(*instrument.Option)
		if !ok || o.Type() != types.OptionTypeCall {
			continue
		}
		if best == nil || o.Strike() > best.Strike() {
			best = o
		}
	}
	return best, best != nil
}

// HedgingRatio 期权持仓数占衍生品持仓数的百分比。没有衍生品时 ok 为 false。
func (p *Portfolio) HedgingRatio() (ratio float64, ok bool) {
	var derivatives, options int
	for _, pos := range p.positions {
		switch pos.AssetClass() {
		case types.AssetClassOption:
			options++
			derivatives++
		case types.AssetClassFutures:
			derivatives++
		case types.AssetClassStock:
		}
	}
	if derivatives == 0 {
		return 0, false
	}
	return float64(options) / float64(derivatives) * 100, true
}
