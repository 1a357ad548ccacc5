package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postboard/postboard/internal/auth"
)

func newGate() (*AuthMiddleware, *auth.TokenManager) {
	tm := auth.NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	return NewAuthMiddleware(tm), tm
}

func gatedProbe(m *AuthMiddleware) (http.Handler, *string) {
	var seen string
	h := m.Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, _ := UserID(r.Context())
		seen = uid
		w.WriteHeader(http.StatusOK)
	}))
	return h, &seen
}

func TestAuthPassesValidAccessToken(t *testing.T) {
	m, tm := newGate()
	h, seen := gatedProbe(m)

	token, err := tm.IssueAccessToken("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/users/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", *seen)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	m, _ := newGate()
	h, _ := gatedProbe(m)

	req := httptest.NewRequest(http.MethodPost, "/users/logout", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	m, tm := newGate()
	h, _ := gatedProbe(m)

	token, err := tm.IssueAccessToken("user-1")
	require.NoError(t, err)

	for _, header := range []string{"Basic abc", token, "Bearer"} {
		req := httptest.NewRequest(http.MethodPost, "/users/logout", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthRejectsRefreshToken(t *testing.T) {
	m, tm := newGate()
	h, _ := gatedProbe(m)

	refresh, err := tm.IssueRefreshToken("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/users/logout", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	expired := auth.NewTokenManager("access-secret", "refresh-secret", -time.Minute, 7*24*time.Hour)
	m := NewAuthMiddleware(expired)
	h, _ := gatedProbe(m)

	token, err := expired.IssueAccessToken("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/users/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
