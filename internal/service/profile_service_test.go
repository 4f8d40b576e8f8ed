package service

import (
	"context"
	"testing"

	"github.com/dushixiang/pipvault/internal/models"
	"github.com/dushixiang/pipvault/internal/xe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestProfileGetCreatesMissing(t *testing.T) {
	f := newFixture(t)
	userId := "01HNOPROFILE00000000000000"
	require.NoError(t, f.db.Create(&models.User{ID: userId, Email: "legacy@example.com", PasswordHash: "x"}).Error)

	profile, err := f.profiles.Get(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, userId, profile.ID)
	assert.Equal(t, "forex", profile.AssetClass)
	assert.Equal(t, []string{"Demo", "Challenge", "Funded", "Live"}, []string(profile.AccountTypes))
}

func TestProfileGetUnknownUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.profiles.Get(ctx, "01HNOUSER00000000000000000")
	assert.ErrorIs(t, err, xe.ErrInvalidToken)

	var count int64
	require.NoError(t, f.db.Model(&models.Profile{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProfileUpdatePartial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := f.signUp(t, "trader@example.com")

	profile, err := f.profiles.Update(ctx, userId, UpdateProfileRequest{
		FirstName:      ptr("Ada"),
		StartingEquity: ptr(25000.0),
		Currency:       ptr("eur"),
		Strategies:     ptr([]string{"Scalp"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.FirstName)
	assert.Equal(t, 25000.0, profile.StartingEquity)
	assert.Equal(t, "EUR", profile.Currency)

	reloaded, err := f.profiles.Get(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, []string{"Scalp"}, []string(reloaded.Strategies))
	assert.Equal(t, []string{"London", "New York", "Asia"}, []string(reloaded.Sessions))

	_, err = f.profiles.Update(ctx, userId, UpdateProfileRequest{Timezone: ptr("Not/AZone")})
	assert.ErrorIs(t, err, xe.ErrInvalidTimezone)
}

func TestViewModeToggleCycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := f.signUp(t, "trader@example.com")

	var modes []string
	for i := 0; i < 3; i++ {
		p, err := f.profiles.ToggleViewMode(ctx, userId)
		require.NoError(t, err)
		modes = append(modes, p.ViewMode)
	}
	assert.Equal(t, []string{"currency", "percentage", "pips"}, modes)

	p, err := f.profiles.SetViewMode(ctx, userId, "percentage")
	require.NoError(t, err)
	assert.Equal(t, "percentage", p.ViewMode)

	_, err = f.profiles.SetViewMode(ctx, userId, "points")
	assert.ErrorIs(t, err, xe.ErrInvalidViewMode)
	_, err = f.profiles.SetViewMode(ctx, userId, "")
	assert.ErrorIs(t, err, xe.ErrInvalidViewMode)
}

func TestResetSettingsKeepsStrategies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := f.signUp(t, "trader@example.com")

	_, err := f.profiles.Update(ctx, userId, UpdateProfileRequest{
		StartingEquity: ptr(500.0),
		Sessions:       ptr([]string{"Sydney"}),
		Strategies:     ptr([]string{"Scalp", "Swing"}),
	})
	require.NoError(t, err)

	profile, err := f.profiles.ResetSettings(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, 10000.0, profile.StartingEquity)
	assert.Equal(t, []string{"London", "New York", "Asia"}, []string(profile.Sessions))
	assert.Equal(t, []string{"Scalp", "Swing"}, []string(profile.Strategies))
}

func TestResetAccountDeletesTrades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userId := f.signUp(t, "trader@example.com")

	_, err := f.trades.Create(ctx, userId, tradeReq(at(1, 9), 10, 100))
	require.NoError(t, err)
	_, err = f.profiles.Update(ctx, userId, UpdateProfileRequest{StartingEquity: ptr(500.0)})
	require.NoError(t, err)

	profile, err := f.profiles.ResetAccount(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, 10000.0, profile.StartingEquity)

	trades, err := f.trades.List(ctx, userId, emptyFilter)
	require.NoError(t, err)
	assert.Empty(t, trades)
}
