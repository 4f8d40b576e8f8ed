package stats

const StartLabel = "Start"

// Point 资金曲线上的一个点
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"` // 当日合计
	Total float64 `json:"total"` // 累计值
}

type Series struct {
	Mode       ViewMode `json:"mode"`
	Baseline   float64  `json:"baseline"`
	Points     []Point  `json:"points"`
	Sufficient bool     `json:"sufficient"`
}

// Final 最后一个点的累计值
func (s Series) Final() float64 {
	if len(s.Points) == 0 {
		return s.Baseline
	}
	return s.Points[len(s.Points)-1].Total
}

// EquityCurve 每个自然日一个点，首个点为起始资金
func EquityCurve(entries []Entry, basis Basis) Series {
	baseline := basis.Baseline()
	series := Series{
		Mode:     basis.Mode,
		Baseline: baseline,
		Points:   []Point{{Label: StartLabel, Total: baseline}},
	}

	running := baseline
	for _, d := range DailyTotals(entries, basis) {
		running += d.Value
		series.Points = append(series.Points, Point{
			Label: d.Date,
			Value: d.Value,
			Total: running,
		})
	}
	series.Sufficient = len(series.Points) >= 2
	return series
}
