package stats

import (
	"time"

	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

// Entry 参与统计的交易快照，与展示口径无关
type Entry struct {
	ID          string
	Date        time.Time
	ExitDate    *time.Time
	Pair        string
	Setup       string
	Emotion     string
	Session     string
	AccountType string
	Pnl         float64 // pips / points
	PnlCurrency float64 // gross
	Commission  float64
	Swap        float64
}

// NetCurrency gross - commission - swap
func (e Entry) NetCurrency() float64 {
	return decimal.NewFromFloat(e.PnlCurrency).
		Sub(decimal.NewFromFloat(e.Commission)).
		Sub(decimal.NewFromFloat(e.Swap)).
		InexactFloat64()
}

// HoldTime 返回持仓时长，没有平仓时间或平仓早于开仓时 ok 为 false
func (e Entry) HoldTime() (d time.Duration, ok bool) {
	if e.ExitDate == nil || !e.ExitDate.After(e.Date) {
		return 0, false
	}
	return e.ExitDate.Sub(e.Date), true
}

// Basis 决定一笔交易取哪个数值，以及按哪个时区切分自然日
type Basis struct {
	Mode           ViewMode
	StartingEquity float64
	Location       *time.Location
}

// Value 单笔交易在当前口径下的数值，所有面板都必须通过它取值
func (b Basis) Value(e Entry) float64 {
	switch b.Mode {
	case Currency:
		return e.NetCurrency()
	case Percentage:
		equity := b.StartingEquity
		if equity <= 0 {
			equity = 1
		}
		return decimal.NewFromFloat(e.NetCurrency()).
			Div(decimal.NewFromFloat(equity)).
			Mul(decimal.NewFromInt(100)).
			InexactFloat64()
	default:
		return e.Pnl
	}
}

// Baseline 资金曲线起点
func (b Basis) Baseline() float64 {
	if b.Mode == Currency {
		return b.StartingEquity
	}
	return 0
}

// Day 本地自然日 yyyy-mm-dd
func (b Basis) Day(t time.Time) string {
	return t.In(b.location()).Format(dayLayout)
}

func (b Basis) location() *time.Location {
	if b.Location == nil {
		return time.UTC
	}
	return b.Location
}

// Resolve 按口径取单笔交易的数值
func Resolve(e Entry, mode ViewMode, startingEquity float64) float64 {
	return Basis{Mode: mode, StartingEquity: startingEquity}.Value(e)
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
