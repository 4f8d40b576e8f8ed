package stats

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func genEntry() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, 24*90),
		gen.Float64Range(-500, 500),
		gen.Float64Range(-5000, 5000),
		gen.Float64Range(0, 20),
	).Map(func(v []interface{}) Entry {
		return Entry{
			Date:        epoch.Add(time.Duration(v[0].(int)) * time.Hour),
			Pnl:         math.Round(v[1].(float64)*10) / 10,
			PnlCurrency: math.Round(v[2].(float64)*100) / 100,
			Commission:  math.Round(v[3].(float64)*100) / 100,
		}
	})
}

func genMode() gopter.Gen {
	return gen.OneConstOf(Pips, Currency, Percentage)
}

func TestSummaryProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("series ends at baseline plus net total", prop.ForAll(
		func(entries []Entry, mode ViewMode, equity float64) bool {
			basis := Basis{Mode: mode, StartingEquity: equity}
			series := EquityCurve(entries, basis)
			want := basis.Baseline() + Summarize(entries, basis).NetTotal
			return math.Abs(series.Final()-want) < 1e-6*math.Max(1, math.Abs(want))
		},
		gen.SliceOf(genEntry()),
		genMode(),
		gen.Float64Range(0, 100000),
	))

	properties.Property("streaks are bounded by trade count", prop.ForAll(
		func(entries []Entry, mode ViewMode) bool {
			s := Summarize(entries, Basis{Mode: mode, StartingEquity: 10000})
			return s.MaxWinStreak <= s.Wins &&
				s.MaxLossStreak <= s.Losses &&
				s.MaxWinStreak+s.MaxLossStreak <= s.TotalTrades
		},
		gen.SliceOf(genEntry()),
		genMode(),
	))

	properties.Property("counters partition the trades", prop.ForAll(
		func(entries []Entry, mode ViewMode) bool {
			s := Summarize(entries, Basis{Mode: mode, StartingEquity: 10000})
			return s.Wins+s.Losses+s.Breakeven == s.TotalTrades &&
				s.GrossProfit >= 0 && s.GrossLoss >= 0 &&
				s.WinRate >= 0 && s.WinRate <= 100 &&
				!math.IsNaN(s.ProfitFactor) && !math.IsInf(s.ProfitFactor, 0)
		},
		gen.SliceOf(genEntry()),
		genMode(),
	))

	properties.Property("series points are strictly ordered by day", prop.ForAll(
		func(entries []Entry) bool {
			points := EquityCurve(entries, Basis{Mode: Pips}).Points
			for i := 2; i < len(points); i++ {
				if points[i-1].Label >= points[i].Label {
					return false
				}
			}
			return points[0].Label == StartLabel
		},
		gen.SliceOf(genEntry()),
	))

	properties.Property("breakdown counts add up to total", prop.ForAll(
		func(entries []Entry) bool {
			basis := Basis{Mode: Pips}
			n := 0
			for _, b := range BySetup(entries, basis) {
				n += b.Count
			}
			return n == len(entries)
		},
		gen.SliceOf(genEntry()),
	))

	properties.TestingRun(t)
}
