package types

import (
	"strings"

	"github.com/wyfcoding/quantpricing/xerrors"
)

// AssetClass 定义持仓所属的资产类别。
type AssetClass string

const (
	AssetClassStock   AssetClass = "STOCK"
	AssetClassFutures AssetClass = "FUTURES" // 期货
	AssetClassOption  AssetClass = "OPTION"  // 期权
)

// AssetClasses 按报告顺序列出全部资产类别。
var AssetClasses = []AssetClass{AssetClassStock, AssetClassFutures, AssetClassOption}

// OptionType 定义期权类型。
type OptionType string

const (
	OptionTypeCall OptionType = "CALL"
	OptionTypePut  OptionType = "PUT"
)

// Valid 判断期权类型是否为 CALL 或 PUT。
func (t OptionType) Valid() bool {
	return t == OptionTypeCall || t == OptionTypePut
}

// ParseOptionType 解析期权类型，大小写不敏感，兼容 "C"/"P" 简写。
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CALL", "C":
		return OptionTypeCall, nil
	case "PUT", "P":
		return OptionTypePut, nil
	default:
		return "", xerrors.Detailed(xerrors.ErrInvalidOptionType, "unknown option type %q", s)
	}
}
