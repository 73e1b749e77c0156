// Package datetime 提供日期解析、合约到期日推算与计息年化工具。
package datetime

import (
	"fmt"
	"time"
)

// DaysPerYear ACT/365F 计息基准下的年天数。
const DaysPerYear = 365.0

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// FormatDate 将时间格式化为标准日期字符串 "YYYY-MM-DD"。
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate 解析一个形如 "YYYY-MM-DD" 的日期字符串，结果为 UTC 零点。
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// StartOfDay 获取给定时间 t 所在天的开始时间（即当天00:00:00）。
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ThirdFriday 返回指定年月的第三个星期五，即标准月度合约的到期日。
func ThirdFriday(year int, month time.Month) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(time.Friday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+14)
}

// ParseExpiry 解析合约到期日。
// 支持完整日期 "YYYY-MM-DD"，以及月度合约代码 "YYYY-MM"（取当月第三个星期五）。
func ParseExpiry(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	m, err := time.Parse(monthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse expiry %q: expected YYYY-MM-DD or YYYY-MM", s)
	}
	return ThirdFriday(m.Year(), m.Month()), nil
}

// YearFraction 按 ACT/365F 计算 from 到 to 之间的年化期限，按自然日计数。
// to 不晚于 from 时返回 0。
func YearFraction(from, to time.Time) float64 {
	start := StartOfDay(from.UTC())
	end := StartOfDay(to.UTC())
	if !end.After(start) {
		return 0
	}
	days := end.Sub(start).Hours() / 24
	return days / DaysPerYear
}
