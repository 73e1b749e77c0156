// Package instrument 定义可估值持仓的统一能力及其股票、期货、期权变体。
//
// Position 是封闭接口：只有本包内的 *Stock、*Futures、*Option 实现它，
// 调用方通过 AssetClass() 或对这三种类型做穷尽 switch 进行分派。
// 持仓一经创建不可变，重新定价通过 Requote 生成新值。
package instrument

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/wyfcoding/quantpricing/algorithm/types"
	"github.com/wyfcoding/quantpricing/xerrors"
)

// Quote 外部提供的行情快照。
type Quote struct {
	Price        float64   // 现价 / 标的价格
	Volatility   float64   // 年化波动率，如 0.2 表示 20%
	RiskFreeRate float64   // 年化无风险利率
	AsOf         time.Time // 估值日
}

// Position 持仓的统一估值能力。
type Position interface {
	Ticker() string
	Quantity() float64
	EntryPrice() float64
	Quote() Quote
	AssetClass() types.AssetClass
	// CurrentValue 当前估值，空头持仓为负。
	CurrentValue() float64
	// Requote 以新行情返回一个新的同类持仓，原持仓不变。
	Requote(q Quote) (Position, error)

	sealed()
}

type position struct {
	ticker     string
	quantity   float64
	entryPrice float64
	quote      Quote
}

func newPosition(ticker string, quantity, entryPrice float64, q Quote) (position, error) {
	ticker = strings.TrimSpace(ticker)
	switch {
	case ticker == "":
		return position{}, xerrors.Detailed(xerrors.ErrInvalidPosition, "ticker must not be empty")
	case quantity == 0 || !finite(quantity):
		return position{}, invalidPosition(ticker, "quantity must be non-zero, got %v", quantity)
	case entryPrice < 0 || !finite(entryPrice):
		return position{}, invalidPosition(ticker, "entry price must be non-negative, got %v", entryPrice)
	case q.Price < 0 || !finite(q.Price):
		return position{}, xerrors.Detailed(xerrors.ErrInvalidInput, "market price must be finite and non-negative, got %v", q.Price).
			WithContext("ticker", ticker)
	}
	return position{ticker: ticker, quantity: quantity, entryPrice: entryPrice, quote: q}, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func invalidPosition(ticker, format string, args ...any) *xerrors.Error {
	return xerrors.Detailed(xerrors.ErrInvalidPosition, format, args...).WithContext("ticker", ticker)
}

func (p position) Ticker() string      { return p.ticker }
func (p position) Quantity() float64   { return p.quantity }
func (p position) EntryPrice() float64 { return p.entryPrice }
func (p position) Quote() Quote        { return p.quote }

// IsShort 是否为空头持仓。
func (p position) IsShort() bool { return p.quantity < 0 }

func (p position) String() string {
	return fmt.Sprintf("%s (%g units @ %.2f)", p.ticker, p.quantity, p.quote.Price)
}

func (position) sealed() {}

// asPosition 避免把 nil 指针包装成非 nil 接口。
func asPosition[T Position](p T, err error) (Position, error) {
	if err != nil {
		return nil, err
	}
	return p, nil
}
