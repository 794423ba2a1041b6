package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/roktoseba/ui-gateway/internal/domain/auth"
	"github.com/roktoseba/ui-gateway/internal/service"
)

func cookieByName(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandlers_Login(t *testing.T) {
	h := &AuthHandlers{Svc: &stubAuthService{
		BeginLoginFunc: func(_ context.Context, redirectURL string) (*service.BeginLoginResult, error) {
			assert.Equal(t, "/dashboard", redirectURL)
			return &service.BeginLoginResult{
				AuthURL: "https://idp.example/authorize?state=st-1",
				State:   "st-1",
				Nonce:   "no-1",
			}, nil
		},
	}}

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodGet, "/auth/login?redirect_uri=%2Fdashboard", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://idp.example/authorize?state=st-1", rec.Header().Get("Location"))

	state := cookieByName(t, rec, "oauth_state")
	require.NotNil(t, state)
	assert.Equal(t, "st-1", state.Value)
	assert.True(t, state.HttpOnly)

	nonce := cookieByName(t, rec, "oauth_nonce")
	require.NotNil(t, nonce)
	assert.Equal(t, "no-1", nonce.Value)

	redirect := cookieByName(t, rec, "post_login_redirect")
	require.NotNil(t, redirect)
	assert.Equal(t, "/dashboard", redirect.Value)
}

func TestAuthHandlers_LoginRejectsAbsoluteRedirect(t *testing.T) {
	h := &AuthHandlers{Svc: &stubAuthService{
		BeginLoginFunc: func(_ context.Context, redirectURL string) (*service.BeginLoginResult, error) {
			// An off-origin redirect target collapses to the root.
			assert.Equal(t, "/", redirectURL)
			return &service.BeginLoginResult{AuthURL: "https://idp.example/authorize"}, nil
		},
	}}

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodGet, "/auth/login?redirect_uri=https%3A%2F%2Fevil.example", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestAuthHandlers_LoginSecureCookiesBehindProxy(t *testing.T) {
	h := &AuthHandlers{Svc: &stubAuthService{
		BeginLoginFunc: func(context.Context, string) (*service.BeginLoginResult, error) {
			return &service.BeginLoginResult{AuthURL: "https://idp.example/authorize"}, nil
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	state := cookieByName(t, rec, "oauth_state")
	require.NotNil(t, state)
	assert.True(t, state.Secure)
}

func TestAuthHandlers_CallbackMissingParams(t *testing.T) {
	h := &AuthHandlers{Svc: &stubAuthService{}}

	tests := []struct {
		name   string
		target string
	}{
		{"missing code", "/auth/callback?state=st-1"},
		{"missing state", "/auth/callback?code=abc"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Callback(rec, httptest.NewRequest(http.MethodGet, tc.target, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAuthHandlers_CallbackStateMismatch(t *testing.T) {
	h := &AuthHandlers{Svc: &stubAuthService{}}

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=st-1", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "st-other"})
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_state")
}

func TestAuthHandlers_CallbackMissingNonceCookie(t *testing.T) {
	h := &AuthHandlers{Svc: &stubAuthService{}}

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=st-1", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "st-1"})
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing_nonce")
}

func TestAuthHandlers_CallbackSuccess(t *testing.T) {
	session := domainauth.GatewaySession{
		ID:        "sess-1",
		Identity:  domainauth.Identity{Email: "donor@example.com"},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	h := &AuthHandlers{Svc: &stubAuthService{
		CompleteLoginFunc: func(_ context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error) {
			assert.Equal(t, "abc", input.Code)
			assert.Equal(t, "st-1", input.State)
			assert.Equal(t, "no-1", input.Nonce)
			return &service.CompleteLoginResult{Session: session}, nil
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=st-1", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "st-1"})
	req.AddCookie(&http.Cookie{Name: "oauth_nonce", Value: "no-1"})
	req.AddCookie(&http.Cookie{Name: "post_login_redirect", Value: "/dashboard/profile"})
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard/profile", rec.Header().Get("Location"))

	sessionCookie := cookieByName(t, rec, "session_id")
	require.NotNil(t, sessionCookie)
	assert.Equal(t, "sess-1", sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
	assert.Positive(t, sessionCookie.MaxAge)

	// Temporary OAuth cookies are torn down.
	state := cookieByName(t, rec, "oauth_state")
	require.NotNil(t, state)
	assert.Negative(t, state.MaxAge)
}

func TestAuthHandlers_CallbackRejectsAbsolutePostLoginRedirect(t *testing.T) {
	h := &AuthHandlers{Svc: &stubAuthService{
		CompleteLoginFunc: func(context.Context, service.CompleteLoginInput) (*service.CompleteLoginResult, error) {
			return &service.CompleteLoginResult{Session: domainauth.GatewaySession{
				ID: "sess-1", ExpiresAt: time.Now().Add(time.Hour),
			}}, nil
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=st-1", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "st-1"})
	req.AddCookie(&http.Cookie{Name: "oauth_nonce", Value: "no-1"})
	req.AddCookie(&http.Cookie{Name: "post_login_redirect", Value: "https://evil.example/phish"})
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestAuthHandlers_Logout(t *testing.T) {
	var loggedOut string
	h := &AuthHandlers{Svc: &stubAuthService{
		LogoutFunc: func(_ context.Context, sessionID string) error {
			loggedOut = sessionID
			return nil
		},
	}}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, "sess-1", loggedOut)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	sessionCookie := cookieByName(t, rec, "session_id")
	require.NotNil(t, sessionCookie)
	assert.Empty(t, sessionCookie.Value)
	assert.Negative(t, sessionCookie.MaxAge)
}

func TestAuthHandlers_LogoutAJAX(t *testing.T) {
	h := &AuthHandlers{Svc: &stubAuthService{
		LogoutFunc: func(context.Context, string) error { return nil },
	}}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout?redirect_uri=%2F", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"success"`)
}

func TestAuthHandlers_LogoutServiceFailureStillClearsCookie(t *testing.T) {
	h := &AuthHandlers{Svc: &stubAuthService{
		LogoutFunc: func(context.Context, string) error { return assert.AnError },
	}}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	// The browser-side session ends even when the server-side teardown fails.
	assert.Equal(t, http.StatusFound, rec.Code)
	sessionCookie := cookieByName(t, rec, "session_id")
	require.NotNil(t, sessionCookie)
	assert.Negative(t, sessionCookie.MaxAge)
}

func TestAuthHandlers_StatusAnonymous(t *testing.T) {
	h := &AuthHandlers{Svc: &stubAuthService{}}

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/auth/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)
	assert.Contains(t, rec.Body.String(), string(domainauth.StateAnonymous))
}

func TestAuthHandlers_StatusResolving(t *testing.T) {
	rt := newTestRuntime(t, runtimeParams{
		Identity:      testIdentity("donor@example.com"),
		ExchangeDelay: time.Second,
	})
	h := &AuthHandlers{Svc: &stubAuthService{}}

	rec := httptest.NewRecorder()
	h.Status(rec, requestWithRuntime("/auth/status", rt))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)
	assert.Contains(t, rec.Body.String(), string(domainauth.StateResolving))
}

func TestAuthHandlers_StatusAuthenticated(t *testing.T) {
	rt := newTestRuntime(t, runtimeParams{
		Identity: testIdentity("admin@example.com"),
		Role:     string(domainauth.RoleAdmin),
		Settle:   true,
	})
	h := &AuthHandlers{Svc: &stubAuthService{}}

	rec := httptest.NewRecorder()
	h.Status(rec, requestWithRuntime("/auth/status", rt))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"authenticated":true`)
	assert.Contains(t, body, "admin@example.com")
	assert.Contains(t, body, `"role":"admin"`)
}
