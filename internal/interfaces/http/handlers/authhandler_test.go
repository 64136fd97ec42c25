package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-inc/helpdesk/internal/application/user/usecases"
	"github.com/helpdesk-inc/helpdesk/internal/interfaces/http/handlers/testutil"
	"github.com/helpdesk-inc/helpdesk/internal/shared/authorization"
	"github.com/helpdesk-inc/helpdesk/internal/shared/config"
	apperrors "github.com/helpdesk-inc/helpdesk/internal/shared/errors"
	"github.com/helpdesk-inc/helpdesk/internal/shared/utils"
)

type mockLoginUC struct {
	got    usecases.LoginCommand
	called bool
	result *usecases.LoginResult
	err    error
}

func (m *mockLoginUC) Execute(_ context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error) {
	m.got, m.called = cmd, true
	return m.result, m.err
}

var cookieCfg = config.CookieConfig{Path: "/", SameSite: "Lax"}

func sessionCookie(t *testing.T, h http.Header) *http.Cookie {
	t.Helper()
	for _, c := range (&http.Response{Header: h}).Cookies() {
		if c.Name == utils.SessionCookie {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mockUC := &mockLoginUC{result: &usecases.LoginResult{
		Auth:      authorization.AuthContext{UserID: 1, Username: "admin", Role: authorization.RoleAdmin, IsAuthenticated: true},
		Token:     "signed.jwt.token",
		ExpiresIn: time.Hour,
	}}
	handler := NewAuthHandler(mockUC, cookieCfg, testutil.NewMockLogger())

	c, w := testutil.NewFormContext(http.MethodPost, "/login", map[string]string{"username": "admin", "password": "s3cret"})

	handler.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", mockUC.got.Username)
	assert.Equal(t, testutil.RemoteIP, mockUC.got.IPAddress)

	cookie := sessionCookie(t, w.Header())
	require.NotNil(t, cookie)
	assert.Equal(t, "signed.jwt.token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 3600, cookie.MaxAge)
}

func TestAuthHandler_Login_WrongCredentials(t *testing.T) {
	handler := NewAuthHandler(&mockLoginUC{err: apperrors.NewInvalidCredentialsError()}, cookieCfg, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/login", LoginRequest{Username: "admin", Password: "nope"})

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, sessionCookie(t, w.Header()))
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	mockUC := &mockLoginUC{}
	handler := NewAuthHandler(mockUC, cookieCfg, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/login", map[string]string{"username": "admin"})

	handler.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, mockUC.called)
}

func TestAuthHandler_Logout(t *testing.T) {
	handler := NewAuthHandler(&mockLoginUC{}, cookieCfg, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/logout", nil)
	testutil.SetAuthContext(c, testutil.AdminSession())

	handler.Logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w.Header())
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

type stubPinger struct{ err error }

func (s stubPinger) PingContext(context.Context) error { return s.err }

func TestHealthHandler(t *testing.T) {
	c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
	NewHealthHandler(stubPinger{}, testutil.NewMockLogger()).HealthCheck(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)

	c, w = testutil.NewTestContext(http.MethodGet, "/health", nil)
	NewHealthHandler(stubPinger{err: errors.New("db gone")}, testutil.NewMockLogger()).HealthCheck(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
