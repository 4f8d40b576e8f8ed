package internal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dushixiang/pipvault/internal/config"
	"github.com/dushixiang/pipvault/internal/xe"
	"github.com/dushixiang/pipvault/pkg/nostd"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "pipvault.db") + "?_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	conf := config.Default()
	conf.Auth.JwtSecret = "test-secret"
	conf.Auth.AdminEmails = []string{"admin@pipvault.test"}

	log := zap.NewNop()
	components, err := InitializeApp(log, db, conf)
	require.NoError(t, err)

	e := echo.New()
	require.NoError(t, Setup(e, log, components))
	return e
}

func call(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

func signIn(t *testing.T, e *echo.Echo, email string) string {
	t.Helper()
	body := `{"email":"` + email + `","password":"secret1"}`
	rec := call(e, http.MethodPost, "/api/auth/sign-up", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = call(e, http.MethodPost, "/api/auth/sign-in", "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode(t, rec)["token"].(string)
}

const tradeBody = `{
	"date": "2024-03-01T09:00:00Z",
	"pair": "eurusd",
	"direction": "LONG",
	"entry_price": 1.1,
	"stop_loss": 1.095,
	"take_profit": 1.11,
	"pnl": 10,
	"pnl_currency": 100,
	"session": "London"
}`

func TestSignUpErrors(t *testing.T) {
	e := newTestServer(t)

	rec := call(e, http.MethodPost, "/api/auth/sign-up", "", `{"email":"not-an-email","password":"1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, xe.ErrInvalidParams.Code, body["code"])
	fields := body["fields"].(map[string]interface{})
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")

	signIn(t, e, "trader@example.com")
	rec = call(e, http.MethodPost, "/api/auth/sign-up", "", `{"email":"Trader@Example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(e, http.MethodPost, "/api/auth/sign-in", "", `{"email":"trader@example.com","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCallbackRedirects(t *testing.T) {
	e := newTestServer(t)

	rec := call(e, http.MethodPost, "/api/auth/sign-up", "", `{"email":"trader@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	code := decode(t, rec)["code"].(string)

	rec = call(e, http.MethodGet, "/api/auth/callback?code="+code+"&next=/trades", "", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/trades", rec.Header().Get(echo.HeaderLocation))
	assert.Contains(t, rec.Header().Get(echo.HeaderSetCookie), nostd.Token+"=")

	// 登录码只能使用一次
	rec = call(e, http.MethodGet, "/api/auth/callback?code="+code, "", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?error=Could+not+verify+email", rec.Header().Get(echo.HeaderLocation))
}

func TestCallbackRejectsOpenRedirect(t *testing.T) {
	e := newTestServer(t)

	rec := call(e, http.MethodPost, "/api/auth/sign-up", "", `{"email":"trader@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	code := decode(t, rec)["code"].(string)

	rec = call(e, http.MethodGet, "/api/auth/callback?code="+code+"&next=//evil.example", "", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newTestServer(t)

	rec := call(e, http.MethodGet, "/api/stats/dashboard", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(e, http.MethodGet, "/api/stats/dashboard", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTradeAndStatsFlow(t *testing.T) {
	e := newTestServer(t)
	token := signIn(t, e, "trader@example.com")

	rec := call(e, http.MethodPost, "/api/trades", token, tradeBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	trade := decode(t, rec)
	assert.Equal(t, "EURUSD", trade["pair"])
	id := trade["id"].(string)

	rec = call(e, http.MethodGet, "/api/trades/"+id, token, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = call(e, http.MethodGet, "/api/trades/01HZZZZZZZZZZZZZZZZZZZZZZZ", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(e, http.MethodGet, "/api/stats/dashboard?mode=currency", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "+$100.00", decode(t, rec)["net_display"])

	rec = call(e, http.MethodGet, "/api/stats/summary?mode=bogus", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.EqualValues(t, xe.ErrInvalidViewMode.Code, decode(t, rec)["code"])

	rec = call(e, http.MethodGet, "/api/stats/summary?from=yesterday", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(e, http.MethodGet, "/api/trades/export", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "PipVault_Backup_")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Date;Pair;Direction;"))

	rec = call(e, http.MethodDelete, "/api/trades/"+id, token, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = call(e, http.MethodDelete, "/api/trades/"+id, token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTradeValidation(t *testing.T) {
	e := newTestServer(t)
	token := signIn(t, e, "trader@example.com")

	rec := call(e, http.MethodPost, "/api/trades", token, `{"pair":"EURUSD","direction":"SIDEWAYS"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	fields := decode(t, rec)["fields"].(map[string]interface{})
	assert.Contains(t, fields, "direction")
	assert.Contains(t, fields, "entry_price")
}

func TestAdminOverviewRequiresAdmin(t *testing.T) {
	e := newTestServer(t)

	userToken := signIn(t, e, "trader@example.com")
	rec := call(e, http.MethodGet, "/api/admin/overview", userToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken := signIn(t, e, "admin@pipvault.test")
	rec = call(e, http.MethodGet, "/api/admin/overview", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode(t, rec)["total_users"])
}

func TestTokenRejectedAfterAccountDeleted(t *testing.T) {
	e := newTestServer(t)
	token := signIn(t, e, "trader@example.com")

	rec := call(e, http.MethodDelete, "/api/auth/account", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(e, http.MethodGet, "/api/profile", token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(e, http.MethodPost, "/api/trades", token, tradeBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(e, http.MethodGet, "/api/trades", token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(e, http.MethodGet, "/api/auth/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
