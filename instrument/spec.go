package instrument

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wyfcoding/quantpricing/algorithm/types"
	"github.com/wyfcoding/quantpricing/datetime"
	"github.com/wyfcoding/quantpricing/xerrors"
)

// 持仓种类。
const (
	KindStock   = "stock"
	KindFutures = "futures"
	KindOption  = "option"
)

// Spec 持仓的声明式输入，通常由外部加载的持仓文件解码而来。
type Spec struct {
	Kind          string   `mapstructure:"kind"           json:"kind"           validate:"required,oneof=stock futures option"`
	Ticker        string   `mapstructure:"ticker"         json:"ticker"         validate:"required"`
	Quantity      float64  `mapstructure:"quantity"       json:"quantity"       validate:"ne=0"`
	EntryPrice    float64  `mapstructure:"entry_price"    json:"entry_price"    validate:"gte=0"`
	Price         float64  `mapstructure:"price"          json:"price"          validate:"gte=0"`
	Volatility    *float64 `mapstructure:"volatility"     json:"volatility"     validate:"omitempty,gte=0"`
	RiskFreeRate  *float64 `mapstructure:"risk_free_rate" json:"risk_free_rate"`
	Multiplier    float64  `mapstructure:"multiplier"     json:"multiplier"     validate:"required_unless=Kind stock"`
	Expiration    string   `mapstructure:"expiration"     json:"expiration"     validate:"required_unless=Kind stock"`
	Strike        float64  `mapstructure:"strike"         json:"strike"         validate:"required_if=Kind option"`
	OptionType    string   `mapstructure:"option_type"    json:"option_type"    validate:"required_if=Kind option"`
	PaysDividends bool     `mapstructure:"pays_dividends" json:"pays_dividends"`
}

// Defaults 输入未提供时使用的行情参数。
type Defaults struct {
	Volatility   float64
	RiskFreeRate float64
}

var validate = validator.New()

// Quote 组装该持仓在 asOf 估值日的行情。
func (s Spec) Quote(asOf time.Time, d Defaults) Quote {
	q := Quote{Price: s.Price, Volatility: d.Volatility, RiskFreeRate: d.RiskFreeRate, AsOf: asOf}
	if s.Volatility != nil {
		q.Volatility = *s.Volatility
	}
	if s.RiskFreeRate != nil {
		q.RiskFreeRate = *s.RiskFreeRate
	}
	return q
}

// Build 校验 Spec 并构造对应的持仓。
func Build(s Spec, asOf time.Time, d Defaults) (Position, error) {
	if err := validate.Struct(s); err != nil {
		return nil, xerrors.Detailed(xerrors.ErrInvalidPosition, "spec %q: %v", s.Ticker, err).WithCause(err)
	}
	q := s.Quote(asOf, d)

	if s.Kind == KindStock {
		var opts []StockOption
		if s.PaysDividends {
			opts = append(opts, PayingDividends())
		}
		return asPosition(NewStock(s.Ticker, s.Quantity, s.EntryPrice, q, opts...))
	}

	expiry, err := datetime.ParseExpiry(strings.TrimSpace(s.Expiration))
	if err != nil {
		return nil, xerrors.Detailed(xerrors.ErrInvalidPosition, "spec %q: %v", s.Ticker, err).WithCause(err)
	}
	c := Contract{Multiplier: s.Multiplier, Expiration: expiry}

	if s.Kind == KindFutures {
		return asPosition(NewFutures(s.Ticker, s.Quantity, s.EntryPrice, c, q))
	}

	optionType, err := types.ParseOptionType(s.OptionType)
	if err != nil {
		return nil, err
	}
	return asPosition(NewOption(s.Ticker, s.Quantity, s.EntryPrice, c, s.Strike, optionType, q))
}
