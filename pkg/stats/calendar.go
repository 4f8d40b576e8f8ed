package stats

import "time"

type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeLoss      Outcome = "loss"
	OutcomeBreakeven Outcome = "breakeven"
)

func OutcomeOf(v float64) Outcome {
	switch {
	case v > 0:
		return OutcomeWin
	case v < 0:
		return OutcomeLoss
	default:
		return OutcomeBreakeven
	}
}

type CalendarDay struct {
	Date    string  `json:"date"`
	Day     int     `json:"day"`
	Count   int     `json:"count"`
	Wins    int     `json:"wins"`
	Value   float64 `json:"value"`
	Outcome Outcome `json:"outcome"`
}

// CalendarMonth 月历，LeadingBlanks 为周一开头时月初前的空格数
type CalendarMonth struct {
	Year          int           `json:"year"`
	Month         time.Month    `json:"month"`
	LeadingBlanks int           `json:"leading_blanks"`
	DaysInMonth   int           `json:"days_in_month"`
	Days          []CalendarDay `json:"days"`
	Count         int           `json:"count"`
	Value         float64       `json:"value"`
}

// Calendar 统计某个月每天的交易，只返回有交易的日期
func Calendar(entries []Entry, basis Basis, year int, month time.Month) CalendarMonth {
	loc := basis.location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	next := first.AddDate(0, 1, 0)

	cal := CalendarMonth{
		Year:          year,
		Month:         month,
		LeadingBlanks: (int(first.Weekday()) + 6) % 7,
		DaysInMonth:   next.AddDate(0, 0, -1).Day(),
		Days:          []CalendarDay{},
	}

	index := make(map[int]int)
	for _, e := range SortByDate(entries) {
		local := e.Date.In(loc)
		if local.Before(first) || !local.Before(next) {
			continue
		}
		i, ok := index[local.Day()]
		if !ok {
			i = len(cal.Days)
			index[local.Day()] = i
			cal.Days = append(cal.Days, CalendarDay{Date: local.Format(dayLayout), Day: local.Day()})
		}
		v := basis.Value(e)
		cal.Days[i].Count++
		cal.Days[i].Value += v
		if v > 0 {
			cal.Days[i].Wins++
		}
		cal.Count++
		cal.Value += v
	}
	for i := range cal.Days {
		cal.Days[i].Outcome = OutcomeOf(cal.Days[i].Value)
	}
	return cal
}
