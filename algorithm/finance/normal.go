package finance

import "gonum.org/v1/gonum/stat/distuv"

// NormCDF 标准正态分布累积分布函数 N(x)。
// 通过误差函数恒等式 N(x) = 0.5·erfc(-x/√2) 计算，满足 N(0) = 0.5 且 N(-x) = 1 - N(x)。
func NormCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormPDF 标准正态分布概率密度函数 φ(x)。
func NormPDF(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}
