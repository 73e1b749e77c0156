package instrument

import (
	"time"

	"github.com/wyfcoding/quantpricing/algorithm/types"
	"github.com/wyfcoding/quantpricing/datetime"
	"github.com/wyfcoding/quantpricing/xerrors"
)

// Contract 衍生品合约条款。
type Contract struct {
	Multiplier float64   // 合约乘数，如股票期权通常为 100
	Expiration time.Time // 到期日
}

// Derivative 衍生品持仓（期货、期权）的公共能力。
type Derivative interface {
	Position
	Multiplier() float64
	Expiration() time.Time
	// TimeToExpiry 距到期的年化期限 (ACT/365F)，已到期为 0。
	TimeToExpiry() float64
	// IsExpired 到期日早于估值日。到期当日仍视为存续（T=0，按内在价值估值）。
	// 过期是可报告的状态，不是错误。
	IsExpired() bool
}

type derivative struct {
	position
	contract Contract
}

func newDerivative(ticker string, quantity, entryPrice float64, c Contract, q Quote) (derivative, error) {
	p, err := newPosition(ticker, quantity, entryPrice, q)
	if err != nil {
		return derivative{}, err
	}
	switch {
	case c.Multiplier <= 0 || !finite(c.Multiplier):
		return derivative{}, invalidPosition(p.ticker, "multiplier must be positive, got %v", c.Multiplier)
	case c.Expiration.IsZero():
		return derivative{}, invalidPosition(p.ticker, "expiration date is required")
	case q.AsOf.IsZero():
		return derivative{}, xerrors.Detailed(xerrors.ErrInvalidInput, "quote as-of date is required for derivatives").
			WithContext("ticker", p.ticker)
	}
	return derivative{position: p, contract: c}, nil
}

func (d derivative) Multiplier() float64   { return d.contract.Multiplier }
func (d derivative) Expiration() time.Time { return d.contract.Expiration }
func (d derivative) Contract() Contract    { return d.contract }

func (d derivative) TimeToExpiry() float64 {
	return datetime.YearFraction(d.quote.AsOf, d.contract.Expiration)
}

func (d derivative) IsExpired() bool {
	expiry := datetime.StartOfDay(d.contract.Expiration.UTC())
	return expiry.Before(datetime.StartOfDay(d.quote.AsOf.UTC()))
}

// Futures 期货持仓。估值为逐日盯市口径的盈亏：数量 × 乘数 × (现价 − 开仓价)。
type Futures struct {
	derivative
}

// NewFutures 创建期货持仓。
func NewFutures(ticker string, quantity, entryPrice float64, c Contract, q Quote) (*Futures, error) {
	d, err := newDerivative(ticker, quantity, entryPrice, c, q)
	if err != nil {
		return nil, err
	}
	return &Futures{derivative: d}, nil
}

func (f *Futures) AssetClass() types.AssetClass { return types.AssetClassFutures }

func (f *Futures) CurrentValue() float64 {
	return f.quantity * f.contract.Multiplier * (f.quote.Price - f.entryPrice)
}

func (f *Futures) Requote(q Quote) (Position, error) {
	return asPosition(NewFutures(f.ticker, f.quantity, f.entryPrice, f.contract, q))
}
