// Package money 提供了基于 shopspring/decimal 的高精度货币计算与处理能力.
package money

import (
	"github.com/shopspring/decimal"
)

// Money 封装了高精度的金额处理.
type Money struct {
	value decimal.Decimal
}

// Zero 零金额.
var Zero = Money{value: decimal.Zero}

// New 从 float64 创建 Money.
func New(val float64) Money {
	return Money{value: decimal.NewFromFloat(val)}
}

// NewFromDecimal 从 decimal 创建 Money.
func NewFromDecimal(d decimal.Decimal) Money {
	return Money{value: d}
}

// NewFromString 从字符串解析金额.
func NewFromString(val string) (Money, error) {
	d, err := decimal.NewFromString(val)
	if err != nil {
		return Money{}, err
	}
	return Money{value: d}, nil
}

// Decimal 返回底层 decimal 值.
func (m Money) Decimal() decimal.Decimal {
	return m.value
}

// ToFloat 转换为 float64.
func (m Money) ToFloat() float64 {
	f, _ := m.value.Float64()
	return f
}

// String 返回格式化后的字符串 (默认 2 位小数).
func (m Money) String() string {
	return m.value.StringFixed(2)
}

// Add 加法.
func (m Money) Add(other Money) Money {
	return Money{value: m.value.Add(other.value)}
}

// AddFloat 加上一个以 float64 表示的估值结果.
func (m Money) AddFloat(val float64) Money {
	return Money{value: m.value.Add(decimal.NewFromFloat(val))}
}

// Sub 减法.
func (m Money) Sub(other Money) Money {
	return Money{value: m.value.Sub(other.value)}
}

// Round 四舍五入到指定小数位.
func (m Money) Round(places int32) Money {
	return Money{value: m.value.Round(places)}
}

// Equal 判断金额是否相等.
func (m Money) Equal(other Money) bool {
	return m.value.Equal(other.value)
}

// IsNegative 判断是否为负数.
func (m Money) IsNegative() bool {
	return m.value.IsNegative()
}

// Format 格式化为指定位数的字符串.
func (m Money) Format(places int32) string {
	return m.value.StringFixed(places)
}
