package stats

import (
	"math"
	"strconv"
)

// Dashboard 首页三个指标卡
type Dashboard struct {
	Mode           ViewMode `json:"mode"`
	TotalTrades    int      `json:"total_trades"`
	NetPnl         float64  `json:"net_pnl"`
	NetDisplay     string   `json:"net_display"`
	WinRate        int      `json:"win_rate"`
	ProfitFactor   float64  `json:"profit_factor"`
	StartingEquity float64  `json:"starting_equity"`
	Balance        float64  `json:"balance"`
	Currency       string   `json:"currency"`
}

func NewDashboard(entries []Entry, basis Basis, currency string) Dashboard {
	s := Summarize(entries, basis)

	var netCurrency float64
	for _, e := range entries {
		netCurrency += e.NetCurrency()
	}

	return Dashboard{
		Mode:           basis.Mode,
		TotalTrades:    s.TotalTrades,
		NetPnl:         round(s.NetTotal, 2),
		NetDisplay:     FormatValue(s.NetTotal, basis.Mode, currency),
		WinRate:        int(math.Round(s.WinRate)),
		ProfitFactor:   round(s.ProfitFactor, 2),
		StartingEquity: basis.StartingEquity,
		Balance:        round(basis.StartingEquity+netCurrency, 2),
		Currency:       currency,
	}
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"AUD": "A$",
	"CAD": "C$",
	"CHF": "CHF ",
}

// CurrencySymbol 未知币种返回 "XXX "
func CurrencySymbol(currency string) string {
	if s, ok := currencySymbols[currency]; ok {
		return s
	}
	if currency == "" {
		return "$"
	}
	return currency + " "
}

// FormatValue 按口径格式化带符号的数值：+10、+$100.00、+1%
func FormatValue(v float64, mode ViewMode, currency string) string {
	v = round(v, 2)
	sign := ""
	switch {
	case v > 0:
		sign = "+"
	case v < 0:
		sign = "-"
	}
	abs := math.Abs(v)

	switch mode {
	case Currency:
		return sign + CurrencySymbol(currency) + strconv.FormatFloat(abs, 'f', 2, 64)
	case Percentage:
		return sign + strconv.FormatFloat(abs, 'f', -1, 64) + "%"
	default:
		return sign + strconv.FormatFloat(abs, 'f', -1, 64)
	}
}
