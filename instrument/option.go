package instrument

import (
	"github.com/wyfcoding/quantpricing/algorithm/finance"
	"github.com/wyfcoding/quantpricing/algorithm/types"
	"github.com/wyfcoding/quantpricing/xerrors"
)

// Option 欧式期权持仓，按 BSM 模型估值。
type Option struct {
	derivative
	strike     float64
	optionType types.OptionType
}

// NewOption 创建期权持仓。定价参数在此处一次性校验，之后的估值不会失败。
func NewOption(ticker string, quantity, entryPrice float64, c Contract, strike float64, optionType types.OptionType, q Quote) (*Option, error) {
	d, err := newDerivative(ticker, quantity, entryPrice, c, q)
	if err != nil {
		return nil, err
	}
	if strike <= 0 || !finite(strike) {
		return nil, invalidPosition(d.ticker, "strike must be positive, got %v", strike)
	}
	if !optionType.Valid() {
		return nil, xerrors.Detailed(xerrors.ErrInvalidOptionType, "unknown option type %q", optionType).
			WithContext("ticker", d.ticker)
	}
	o := &Option{derivative: d, strike: strike, optionType: optionType}
	if err := finance.ValidateInputs(q.Price, strike, o.TimeToExpiry(), q.Volatility, q.RiskFreeRate); err != nil {
		if e, ok := xerrors.FromError(err); ok {
			e.WithContext("ticker", d.ticker)
		}
		return nil, err
	}
	return o, nil
}

func (o *Option) AssetClass() types.AssetClass { return types.AssetClassOption }

// Strike 行权价。
func (o *Option) Strike() float64 { return o.strike }

// Type 看涨或看跌。
func (o *Option) Type() types.OptionType { return o.optionType }

// TheoreticalValue 单位标的的 BSM 理论价格；已到期时等于内在价值。
func (o *Option) TheoreticalValue() float64 {
	// 参数已在构造时校验。
	v, _ := finance.TheoreticalValue(
		o.quote.Price, o.strike, o.TimeToExpiry(), o.quote.Volatility, o.quote.RiskFreeRate, o.optionType,
	)
	return v
}

// IntrinsicValue 单位标的的内在价值。
func (o *Option) IntrinsicValue() float64 {
	return finance.IntrinsicValue(o.quote.Price, o.strike, o.optionType)
}

func (o *Option) CurrentValue() float64 {
	return o.quantity * o.contract.Multiplier * o.TheoreticalValue()
}

func (o *Option) Requote(q Quote) (Position, error) {
	return asPosition(NewOption(o.ticker, o.quantity, o.entryPrice, o.contract, o.strike, o.optionType, q))
}
