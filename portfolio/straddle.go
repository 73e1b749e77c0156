package portfolio

import (
	"sort"

	"github.com/wyfcoding/quantpricing/algorithm/types"
	"github.com/wyfcoding/quantpricing/datetime"
	"github.com/wyfcoding/quantpricing/instrument"
)

// Straddle 一组多头跨式组合：同标的、同行权价、同到期日的多头看涨与多头看跌。
// First/Second 按两条腿在组合中出现的先后排列。
type Straddle struct {
	First       *instrument.Option
	Second      *instrument.Option
	FirstIndex  int
	SecondIndex int
}

// Call 看涨腿。
func (s Straddle) Call() *instrument.Option {
	if s.First.Type() == types.OptionTypeCall {
		return s.First
	}
	return s.Second
}

// Put 看跌腿。
func (s Straddle) Put() *instrument.Option {
	if s.First.Type() == types.OptionTypePut {
		return s.First
	}
	return s.Second
}

type legKey struct {
	ticker string
	strike float64
	expiry string
}

type leg struct {
	option *instrument.Option
	index  int
}

// DetectStraddles 识别组合中的多头跨式组合。
//
// 只有数量为正的期权参与配对。同一 (标的, 行权价, 到期日) 下存在多条腿时，
// 按插入顺序将最早未配对的看涨与最早未配对的看跌配成一组，多余的腿不报告。
// 结果按首条腿在组合中的位置排序。
func (p *Portfolio) DetectStraddles() []Straddle {
	calls := make(map[legKey][]leg)
	puts := make(map[legKey][]leg)
	straddles := make([]Straddle, 0)

	for i, pos := range p.positions {
		o, ok := pos.(*instrument.Option)
		if !ok || o.Quantity() <= 0 {
			continue
		}
		key := legKey{ticker: o.Ticker(), strike: o.Strike(), expiry: datetime.FormatDate(o.Expiration().UTC())}
		current := leg{option: o, index: i}

		same, opposite := calls, puts
		if o.Type() == types.OptionTypePut {
			same, opposite = puts, calls
		}

		if waiting := opposite[key]; len(waiting) > 0 {
			first := waiting[0]
			opposite[key] = waiting[1:]
			straddles = append(straddles, Straddle{
				First:       first.option,
				Second:      current.option,
				FirstIndex:  first.index,
				SecondIndex: current.index,
			})
			continue
		}
		same[key] = append(same[key], current)
	}

	sort.SliceStable(straddles, func(i, j int) bool {
		return straddles[i].FirstIndex < straddles[j].FirstIndex
	})
	return straddles
}

// HasStraddle 组合中是否至少存在一组多头跨式。
func (p *Portfolio) HasStraddle() bool {
	return len(p.DetectStraddles()) > 0
}
