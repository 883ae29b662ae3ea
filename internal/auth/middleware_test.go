package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/planovahq/planova-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionTestHandler(t *testing.T, captured **models.SessionClaims) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = GetSessionFromContext(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireSession_ValidToken(t *testing.T) {
	tm := NewTokenManager(testSecret, DefaultSessionExpiry)
	token, err := tm.Issue("acct_123", "ann@x.com")
	require.NoError(t, err)

	var claims *models.SessionClaims
	handler := RequireSession(tm)(sessionTestHandler(t, &claims))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/enable-2fa", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, claims)
	assert.Equal(t, "acct_123", claims.AccountID)
	assert.Equal(t, "ann@x.com", claims.Email)
}

func TestRequireSession_MissingHeader(t *testing.T) {
	tm := NewTokenManager(testSecret, DefaultSessionExpiry)

	var claims *models.SessionClaims
	handler := RequireSession(tm)(sessionTestHandler(t, &claims))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/enable-2fa", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, claims)
}

func TestRequireSession_MalformedHeader(t *testing.T) {
	tm := NewTokenManager(testSecret, DefaultSessionExpiry)
	handler := RequireSession(tm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for _, header := range []string{"Bearer", "Basic abc123", "bearer token"} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/enable-2fa", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestRequireSession_ExpiredToken(t *testing.T) {
	past := time.Now().Add(-8 * 24 * time.Hour)

	issuer := NewTokenManager(testSecret, DefaultSessionExpiry)
	issuer.SetClock(func() time.Time { return past })
	token, err := issuer.Issue("acct_123", "ann@x.com")
	require.NoError(t, err)

	tm := NewTokenManager(testSecret, DefaultSessionExpiry)
	handler := RequireSession(tm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/enable-2fa", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetSessionFromContext_Outside(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetSessionFromContext(req))
}
