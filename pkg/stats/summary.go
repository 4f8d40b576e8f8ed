package stats

import (
	"sort"
	"time"
)

// DayTotal 单个自然日的合计
type DayTotal struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Summary 一次统计的结果快照
type Summary struct {
	Mode          ViewMode  `json:"mode"`
	TotalTrades   int       `json:"total_trades"`
	Wins          int       `json:"wins"`
	Losses        int       `json:"losses"`
	Breakeven     int       `json:"breakeven"`
	GrossProfit   float64   `json:"gross_profit"`
	GrossLoss     float64   `json:"gross_loss"`
	NetTotal      float64   `json:"net_total"`
	WinRate       float64   `json:"win_rate"`  // 0-100
	LossRate      float64   `json:"loss_rate"` // 0-1
	ProfitFactor  float64   `json:"profit_factor"`
	Expectancy    float64   `json:"expectancy"`
	AvgWin        float64   `json:"avg_win"`
	AvgLoss       float64   `json:"avg_loss"`
	MaxWinStreak  int       `json:"max_win_streak"`
	MaxLossStreak int       `json:"max_loss_streak"`
	HeldTrades    int       `json:"held_trades"`
	AvgHoldHours  float64   `json:"avg_hold_hours"`
	LargestWin    float64   `json:"largest_win"`
	LargestLoss   float64   `json:"largest_loss"`
	BestDay       *DayTotal `json:"best_day"`
	WorstDay      *DayTotal `json:"worst_day"`
}

// ProfitFactor GP/GL；没有亏损时返回 GP（GP 也为 0 时返回 0）
func ProfitFactor(grossProfit, grossLoss float64) float64 {
	if grossLoss > 0 {
		return grossProfit / grossLoss
	}
	if grossProfit > 0 {
		return grossProfit
	}
	return 0
}

// Summarize 汇总胜率、盈亏比、期望、连胜连败、持仓时长和极值
func Summarize(entries []Entry, basis Basis) Summary {
	s := Summary{Mode: basis.Mode, TotalTrades: len(entries)}
	if len(entries) == 0 {
		return s
	}

	var (
		held    time.Duration
		winSum  float64
		lossSum float64
	)
	for _, e := range SortByDate(entries) {
		v := basis.Value(e)
		s.NetTotal += v
		switch {
		case v > 0:
			s.Wins++
			winSum += v
			if v > s.LargestWin {
				s.LargestWin = v
			}
		case v < 0:
			s.Losses++
			lossSum += v
			if v < s.LargestLoss {
				s.LargestLoss = v
			}
		default:
			s.Breakeven++
		}
		if d, ok := e.HoldTime(); ok {
			held += d
			s.HeldTrades++
		}
	}

	s.GrossProfit = winSum
	s.GrossLoss = -lossSum
	total := float64(s.TotalTrades)
	s.WinRate = float64(s.Wins) / total * 100
	s.LossRate = float64(s.Losses) / total
	if s.Wins > 0 {
		s.AvgWin = winSum / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = lossSum / float64(s.Losses)
	}
	s.ProfitFactor = ProfitFactor(s.GrossProfit, s.GrossLoss)
	s.Expectancy = s.WinRate/100*s.AvgWin + s.LossRate*s.AvgLoss
	s.MaxWinStreak, s.MaxLossStreak = Streaks(entries, basis)
	if s.HeldTrades > 0 {
		s.AvgHoldHours = (held / time.Duration(s.HeldTrades)).Hours()
	}

	days := DailyTotals(entries, basis)
	for i := range days {
		d := days[i]
		if s.BestDay == nil || d.Value > s.BestDay.Value {
			s.BestDay = &d
		}
		if s.WorstDay == nil || d.Value < s.WorstDay.Value {
			s.WorstDay = &d
		}
	}
	return s
}

// Streaks 按开仓时间升序扫描，返回最长连胜和最长连败；持平交易不计入也不打断
func Streaks(entries []Entry, basis Basis) (maxWin, maxLoss int) {
	streak := 0
	for _, e := range SortByDate(entries) {
		v := basis.Value(e)
		switch {
		case v > 0:
			if streak > 0 {
				streak++
			} else {
				streak = 1
			}
			maxWin = max(maxWin, streak)
		case v < 0:
			if streak < 0 {
				streak--
			} else {
				streak = -1
			}
			maxLoss = max(maxLoss, -streak)
		}
	}
	return maxWin, maxLoss
}

// DailyTotals 按本地自然日分组求和，日期升序
func DailyTotals(entries []Entry, basis Basis) []DayTotal {
	index := make(map[string]int)
	var days []DayTotal
	for _, e := range SortByDate(entries) {
		key := basis.Day(e.Date)
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, DayTotal{Date: key})
		}
		days[i].Value += basis.Value(e)
	}
	return days
}

// SortByDate 返回按开仓时间升序排列的副本
func SortByDate(entries []Entry) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
