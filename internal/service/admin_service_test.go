package service

import (
	"context"
	"testing"

	"github.com/dushixiang/pipvault/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminOverview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	overview, err := f.admin.Overview(ctx)
	require.NoError(t, err)
	assert.Zero(t, overview.TotalUsers)
	assert.Empty(t, overview.RecentUsers)

	admin := f.signUp(t, "admin@pipvault.test")
	trader := f.signUp(t, "trader@example.com")
	for day := 1; day <= 3; day++ {
		_, err := f.trades.Create(ctx, trader, tradeReq(at(day, 9), 10, 100))
		require.NoError(t, err)
	}

	overview, err = f.admin.Overview(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, overview.TotalUsers)
	assert.EqualValues(t, 3, overview.TotalTrades)
	require.Len(t, overview.RecentUsers, 2)

	emails := map[string]string{}
	roles := map[string]string{}
	for _, u := range overview.RecentUsers {
		emails[u.ID] = u.Email
		roles[u.ID] = u.Role
	}
	assert.Equal(t, "admin@pipvault.test", emails[admin])
	assert.Equal(t, "trader@example.com", emails[trader])
	assert.Equal(t, models.RoleAdmin, roles[admin])
	assert.Equal(t, models.RoleUser, roles[trader])
}
