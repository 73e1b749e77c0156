package instrument

import "github.com/wyfcoding/quantpricing/algorithm/types"

// Stock 股票持仓。估值采用总名义价值：数量 × 现价，不扣减成本价。
type Stock struct {
	position
	paysDividends bool
}

// StockOption 股票持仓的可选属性。
type StockOption func(*Stock)

// PayingDividends 标记该股票派发股息。
func PayingDividends() StockOption {
	return func(s *Stock) {
		s.paysDividends = true
	}
}

// NewStock 创建股票持仓。
func NewStock(ticker string, quantity, entryPrice float64, q Quote, opts ...StockOption) (*Stock, error) {
	p, err := newPosition(ticker, quantity, entryPrice, q)
	if err != nil {
		return nil, err
	}
	s := &Stock{position: p}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Stock) AssetClass() types.AssetClass { return types.AssetClassStock }

func (s *Stock) CurrentValue() float64 {
	return s.quantity * s.quote.Price
}

// PaysDividends 是否派息。
func (s *Stock) PaysDividends() bool { return s.paysDividends }

func (s *Stock) Requote(q Quote) (Position, error) {
	p, err := newPosition(s.ticker, s.quantity, s.entryPrice, q)
	if err != nil {
		return nil, err
	}
	return &Stock{position: p, paysDividends: s.paysDividends}, nil
}
