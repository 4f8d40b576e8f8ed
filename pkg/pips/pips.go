package pips

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	AssetForex   = "forex"
	AssetFutures = "futures"
)

// Multiplier 价格差换算成 pips/points 的倍数
func Multiplier(assetClass, pair string) decimal.Decimal {
	if assetClass == AssetFutures {
		return decimal.NewFromInt(1)
	}
	if strings.Contains(strings.ToUpper(pair), "JPY") {
		return decimal.NewFromInt(100)
	}
	return decimal.NewFromInt(10000)
}

// Geometry 由入场、止损、止盈价格推导出的风险回报
type Geometry struct {
	RiskPips   float64
	RewardPips float64
	RRRatio    float64
}

// Compute 止损或止盈为 0 表示未设置，对应距离记 0
func Compute(assetClass, pair string, entry, stop, target float64) Geometry {
	m := Multiplier(assetClass, pair)
	e := decimal.NewFromFloat(entry)

	var risk, reward decimal.Decimal
	if stop > 0 {
		risk = e.Sub(decimal.NewFromFloat(stop)).Abs().Mul(m).Round(1)
	}
	if target > 0 {
		reward = decimal.NewFromFloat(target).Sub(e).Abs().Mul(m).Round(1)
	}

	g := Geometry{
		RiskPips:   risk.InexactFloat64(),
		RewardPips: reward.InexactFloat64(),
	}
	if risk.IsPositive() {
		g.RRRatio = reward.Div(risk).Round(2).InexactFloat64()
	}
	return g
}
