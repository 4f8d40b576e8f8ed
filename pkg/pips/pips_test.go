package pips

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiplier(t *testing.T) {
	tests := []struct {
		name       string
		assetClass string
		pair       string
		want       int64
	}{
		{"major pair", AssetForex, "EURUSD", 10000},
		{"yen pair", AssetForex, "USDJPY", 100},
		{"yen cross lower case", AssetForex, "gbpjpy", 100},
		{"futures", AssetFutures, "NQ", 1},
		{"futures ignores yen", AssetFutures, "6JPY", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Multiplier(tt.assetClass, tt.pair).IntPart())
		})
	}
}

func TestCompute(t *testing.T) {
	g := Compute(AssetForex, "EURUSD", 1.1000, 1.0950, 1.1100)
	assert.Equal(t, 50.0, g.RiskPips)
	assert.Equal(t, 100.0, g.RewardPips)
	assert.Equal(t, 2.0, g.RRRatio)

	g = Compute(AssetForex, "USDJPY", 150.00, 149.50, 151.25)
	assert.Equal(t, 50.0, g.RiskPips)
	assert.Equal(t, 125.0, g.RewardPips)
	assert.Equal(t, 2.5, g.RRRatio)

	g = Compute(AssetFutures, "ES", 5000, 4990, 5030)
	assert.Equal(t, 10.0, g.RiskPips)
	assert.Equal(t, 30.0, g.RewardPips)
	assert.Equal(t, 3.0, g.RRRatio)
}

func TestComputeWithoutStop(t *testing.T) {
	g := Compute(AssetForex, "EURUSD", 1.1000, 0, 1.1100)
	assert.Equal(t, 0.0, g.RiskPips)
	assert.Equal(t, 100.0, g.RewardPips)
	assert.Equal(t, 0.0, g.RRRatio)

	g = Compute(AssetForex, "EURUSD", 1.1000, 1.0950, 0)
	assert.Equal(t, 50.0, g.RiskPips)
	assert.Equal(t, 0.0, g.RewardPips)
	assert.Equal(t, 0.0, g.RRRatio)
}
