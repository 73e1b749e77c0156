package portfolio

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/wyfcoding/quantpricing/instrument"
	"github.com/wyfcoding/quantpricing/xerrors"
)

// Facts 筛选表达式可访问的持仓字段。
// 例如 `AssetClass == "FUTURES" && Multiplier > 10`。
type Facts struct {
	Ticker        string
	AssetClass    string
	OptionType    string
	Quantity      float64
	EntryPrice    float64
	Price         float64
	Value         float64
	Multiplier    float64
	Strike        float64
	TimeToExpiry  float64
	Short         bool
	Expired       bool
	PaysDividends bool
}

// FactsOf 提取持仓的可筛选字段。
func FactsOf(pos instrument.Position) Facts {
	f := Facts{
		Ticker:     pos.Ticker(),
		AssetClass: string(pos.AssetClass()),
		Quantity:   pos.Quantity(),
		EntryPrice: pos.EntryPrice(),
		Price:      pos.Quote().Price,
		Value:      pos.CurrentValue(),
		Short:      pos.Quantity() < 0,
	}
	switch v := pos.(type) {
	case *instrument.Stock:
		f.PaysDividends = v.PaysDividends()
	case *instrument.Futures:
		f.Multiplier = v.Multiplier()
		f.TimeToExpiry = v.TimeToExpiry()
		f.Expired = v.IsExpired()
	case *instrument.Option:
		f.Multiplier = v.Multiplier()
		f.TimeToExpiry = v.TimeToExpiry()
		f.Expired = v.IsExpired()
		f.Strike = v.Strike()
		f.OptionType = string(v.Type())
	}
	return f
}

// Selector 预编译的持仓筛选表达式，可在多个组合间复用。
type Selector struct {
	source  string
	program *vm.Program
}

// NewSelector 编译筛选表达式，表达式结果必须为布尔值。
func NewSelector(expression string) (*Selector, error) {
	program, err := expr.Compile(expression, expr.Env(Facts{}), expr.AsBool())
	if err != nil {
		return nil, xerrors.Detailed(xerrors.ErrInvalidExpression, "compile %q: %v", expression, err).WithCause(err)
	}
	return &Selector{source: expression, program: program}, nil
}

// String 返回表达式原文。
func (s *Selector) String() string { return s.source }

// Match 判断单个持仓是否满足表达式。
func (s *Selector) Match(pos instrument.Position) (bool, error) {
	out, err := expr.Run(s.program, FactsOf(pos))
	if err != nil {
		return false, xerrors.Detailed(xerrors.ErrInvalidExpression, "run %q on %s: %v", s.source, pos.Ticker(), err).WithCause(err)
	}
	matched, _ := out.(bool)
	return matched, nil
}

// Select 按表达式筛选持仓，保持组合顺序。
func (p *Portfolio) Select(expression string) ([]instrument.Position, error) {
	sel, err := NewSelector(expression)
	if err != nil {
		return nil, err
	}
	return p.SelectWith(sel)
}

// SelectWith 使用预编译的 Selector 筛选持仓。
func (p *Portfolio) SelectWith(sel *Selector) ([]instrument.Position, error) {
	var out []instrument.Position
	for _, pos := range p.positions {
		ok, err := sel.Match(pos)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, pos)
		}
	}
	return out, nil
}
