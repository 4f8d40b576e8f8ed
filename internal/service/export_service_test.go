package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := f.signUp(t, "trader@example.com")

	req := tradeReq(at(1, 9), 12.5, 125)
	req.Setup = "Breakout"
	req.Emotion = "Confident"
	req.Comment = "waited; then entered"
	req.ChartURL = "https://charts.example/abc"
	_, err := f.trades.Create(ctx, userId, req)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := f.export.Export(ctx, userId, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"Date;Pair;Direction;Entry Price;Stop Loss;Take Profit;PnL (Pips);R:R Ratio;Setup;Emotion;Chart URL;Asset Class;Comment",
		lines[0])
	assert.Equal(t,
		`2024-03-01T09:00:00Z;EURUSD;LONG;1,1;1,095;1,11;12,5;2;Breakout;Confident;https://charts.example/abc;forex;"waited; then entered"`,
		lines[1])
}

func TestExportFilename(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "PipVault_Backup_2024-03-09.csv", f.export.Filename(time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)))
}

func TestDecimalComma(t *testing.T) {
	s, err := DecimalComma(-1234.5).MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "-1234,5", s)

	s, err = DecimalComma(0).MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "0", s)
}
