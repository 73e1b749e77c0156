// Package finance - 期权定价算法（Black-Scholes-Merton 解析模型）。
package finance

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/quantpricing/algorithm/types"
	"github.com/wyfcoding/quantpricing/xerrors"
)

// Terms 是 BSM 公式的中间量，价格及后续的敏感度计算都由同一组 d1/d2 推导。
type Terms struct {
	D1       float64
	D2       float64
	Discount float64 // e^(-rT)
	SqrtT    float64
}

// ComputeTerms 计算 d1、d2 与贴现因子。调用方需保证 t > 0 且 vol > 0。
func ComputeTerms(spot, strike, t, vol, rate float64) Terms {
	sqrtT := math.Sqrt(t)
	d1 := (math.Log(spot/strike) + (rate+0.5*vol*vol)*t) / (vol * sqrtT)
	return Terms{
		D1:       d1,
		D2:       d1 - vol*sqrtT,
		Discount: math.Exp(-rate * t),
		SqrtT:    sqrtT,
	}
}

// Price 由中间量计算期权理论价格。
func (tm Terms) Price(spot, strike float64, optionType types.OptionType) float64 {
	if optionType == types.OptionTypeCall {
		return spot*NormCDF(tm.D1) - strike*tm.Discount*NormCDF(tm.D2)
	}
	return strike*tm.Discount*NormCDF(-tm.D2) - spot*NormCDF(-tm.D1)
}

// IntrinsicValue 期权内在价值：看涨 max(S-K, 0)，看跌 max(K-S, 0)。
func IntrinsicValue(spot, strike float64, optionType types.OptionType) float64 {
	if optionType == types.OptionTypeCall {
		return math.Max(spot-strike, 0)
	}
	return math.Max(strike-spot, 0)
}

// ValidateInputs 校验定价参数的定义域。
func ValidateInputs(spot, strike, t, vol, rate float64) error {
	for _, x := range [...]float64{spot, strike, t, vol, rate} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return xerrors.Detailed(xerrors.ErrInvalidInput, "pricing parameters must be finite, got %v", x)
		}
	}
	switch {
	case spot <= 0:
		return xerrors.Detailed(xerrors.ErrInvalidInput, "spot must be positive, got %v", spot)
	case strike <= 0:
		return xerrors.Detailed(xerrors.ErrInvalidInput, "strike must be positive, got %v", strike)
	case vol < 0:
		return xerrors.Detailed(xerrors.ErrInvalidInput, "volatility must be non-negative, got %v", vol)
	case t < 0:
		return xerrors.Detailed(xerrors.ErrInvalidInput, "time to expiry must be non-negative, got %v", t)
	}
	return nil
}

// TheoreticalValue 计算欧式期权的 BSM 理论价格（单位标的）。
// 到期 (t == 0) 或零波动率时退化为内在价值；浮点误差导致的微小负值截断为 0。
func TheoreticalValue(spot, strike, t, vol, rate float64, optionType types.OptionType) (float64, error) {
	if !optionType.Valid() {
		return 0, xerrors.Detailed(xerrors.ErrInvalidOptionType, "unknown option type %q", optionType)
	}
	if err := ValidateInputs(spot, strike, t, vol, rate); err != nil {
		return 0, err
	}
	if t == 0 || vol == 0 {
		return IntrinsicValue(spot, strike, optionType), nil
	}
	price := ComputeTerms(spot, strike, t, vol, rate).Price(spot, strike, optionType)
	return math.Max(price, 0), nil
}

// BlackScholesCalculator Black-Scholes 期权定价计算器（decimal 接口）。
type BlackScholesCalculator struct{}

// NewBlackScholesCalculator 创建 Black-Scholes 计算器。
func NewBlackScholesCalculator() *BlackScholesCalculator {
	return &BlackScholesCalculator{}
}

// CalculatePrice 计算期权价格，输入输出均为 decimal，内部以 float64 求值。
func (bsc *BlackScholesCalculator) CalculatePrice(optionType types.OptionType, spot, strike, expiry, rate, vol decimal.Decimal) (decimal.Decimal, error) {
	price, err := TheoreticalValue(
		spot.InexactFloat64(),
		strike.InexactFloat64(),
		expiry.InexactFloat64(),
		vol.InexactFloat64(),
		rate.InexactFloat64(),
		optionType,
	)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(price), nil
}

// CalculateCallPrice 计算看涨期权价格。
func (bsc *BlackScholesCalculator) CalculateCallPrice(spot, strike, expiry, rate, vol decimal.Decimal) (decimal.Decimal, error) {
	return bsc.CalculatePrice(types.OptionTypeCall, spot, strike, expiry, rate, vol)
}

// CalculatePutPrice 计算看跌期权价格。
func (bsc *BlackScholesCalculator) CalculatePutPrice(spot, strike, expiry, rate, vol decimal.Decimal) (decimal.Decimal, error) {
	return bsc.CalculatePrice(types.OptionTypePut, spot, strike, expiry, rate, vol)
}
