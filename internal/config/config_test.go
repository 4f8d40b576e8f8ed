package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	c := Default()

	assert.Equal(t, 24, c.Auth.TokenTTLHours)
	assert.Equal(t, 30, c.Auth.CodeTTLMinutes)
	assert.Equal(t, "/dashboard", c.Auth.RedirectDefault)
	assert.Equal(t, 10000.0, c.Journal.StartingEquity)
	assert.Equal(t, "USD", c.Journal.Currency)
	assert.Equal(t, []string{"London", "New York", "Asia"}, c.Journal.Sessions)
	assert.Equal(t, []string{"Trend Continuation", "Breakout", "Reversal"}, c.Journal.Strategies)
	assert.Equal(t, []string{"Demo", "Challenge", "Funded", "Live"}, c.Journal.AccountTypes)
	assert.Equal(t, "forex", c.Journal.AssetClass)
	assert.Equal(t, "0 8 * * 1", c.Digest.Cron)
}

func TestNormalizeKeepsConfiguredValues(t *testing.T) {
	c := &Config{
		Auth:    AuthConf{TokenTTLHours: 2, AdminEmails: []string{" Admin@Example.com "}},
		Journal: JournalConf{StartingEquity: 2500, Currency: "EUR"},
	}
	c.Normalize()

	assert.Equal(t, 2, c.Auth.TokenTTLHours)
	assert.Equal(t, 2500.0, c.Journal.StartingEquity)
	assert.Equal(t, "EUR", c.Journal.Currency)
	assert.True(t, c.IsAdminEmail("admin@example.com"))
	assert.True(t, c.IsAdminEmail("ADMIN@example.com"))
	assert.False(t, c.IsAdminEmail("user@example.com"))
}

func TestNormalizeSecretFromEnv(t *testing.T) {
	t.Setenv(EnvJwtSecret, "from-env")

	c := &Config{Auth: AuthConf{JwtSecret: "from-file"}}
	c.Normalize()

	assert.Equal(t, "from-env", c.Auth.JwtSecret)
}
