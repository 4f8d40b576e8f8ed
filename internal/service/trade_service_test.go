package service

import (
	"context"
	"testing"

	"github.com/dushixiang/pipvault/internal/xe"
	"github.com/dushixiang/pipvault/pkg/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var emptyFilter = stats.Filter{}

func TestCreateTradeDerivesGeometry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := f.signUp(t, "trader@example.com")

	trade, err := f.trades.Create(ctx, userId, tradeReq(at(1, 9), 20, 200))
	require.NoError(t, err)
	assert.Len(t, trade.ID, 26)
	assert.Equal(t, "forex", trade.AssetClass)
	assert.Equal(t, 50.0, trade.RiskPips)
	assert.Equal(t, 100.0, trade.RewardPips)
	assert.Equal(t, 2.0, trade.RRRatio)

	req := tradeReq(at(1, 9), 20, 200)
	req.TakeProfit = 1.1150
	updated, err := f.trades.Update(ctx, userId, trade.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.RewardPips)
	assert.Equal(t, 3.0, updated.RRRatio)

	got, err := f.trades.Get(ctx, userId, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got.RRRatio)
}

func TestTradesAreScopedToOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.signUp(t, "owner@example.com")
	other := f.signUp(t, "other@example.com")

	trade, err := f.trades.Create(ctx, owner, tradeReq(at(1, 9), 20, 200))
	require.NoError(t, err)

	_, err = f.trades.Get(ctx, other, trade.ID)
	assert.ErrorIs(t, err, xe.ErrNotFound)
	_, err = f.trades.Update(ctx, other, trade.ID, tradeReq(at(1, 9), 1, 1))
	assert.ErrorIs(t, err, xe.ErrNotFound)
	assert.ErrorIs(t, f.trades.Delete(ctx, other, trade.ID), xe.ErrNotFound)

	list, err := f.trades.List(ctx, other, emptyFilter)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, f.trades.Delete(ctx, owner, trade.ID))
	_, err = f.trades.Get(ctx, owner, trade.ID)
	assert.ErrorIs(t, err, xe.ErrNotFound)
}

func TestListOrderAndFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := f.signUp(t, "trader@example.com")

	for i, setup := range []string{"Breakout", "Reversal", "Breakout"} {
		req := tradeReq(at(i+1, 9), 10, 100)
		req.Setup = setup
		_, err := f.trades.Create(ctx, userId, req)
		require.NoError(t, err)
	}

	all, err := f.trades.List(ctx, userId, emptyFilter)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].Date.After(all[2].Date))

	breakouts, err := f.trades.List(ctx, userId, stats.Filter{Setup: "Breakout"})
	require.NoError(t, err)
	assert.Len(t, breakouts, 2)

	deleted, err := f.trades.DeleteAll(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}

func TestSeedDemo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := f.signUp(t, "trader@example.com")

	trades, err := f.trades.SeedDemo(ctx, userId, 25, 30)
	require.NoError(t, err)
	assert.Len(t, trades, 25)

	stored, err := f.trades.List(ctx, userId, emptyFilter)
	require.NoError(t, err)
	assert.Len(t, stored, 25)
	for _, trade := range stored {
		assert.NotEmpty(t, trade.Pair)
		assert.NotEmpty(t, trade.Session)
		assert.Greater(t, trade.RiskPips, 0.0)
		require.NotNil(t, trade.ExitDate)
		assert.True(t, trade.ExitDate.After(trade.Date))
	}
}
