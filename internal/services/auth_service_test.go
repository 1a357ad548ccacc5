package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postboard/postboard/internal/auth"
	"github.com/postboard/postboard/internal/repository/memory"
)

func newTestService() (*AuthService, *memory.UsersRepo) {
	repo := memory.NewUsersRepo()
	tm := auth.NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	return NewAuthService(repo, tm, 4, nil), repo
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, pair, err := svc.Register(ctx, "testuser", "test@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "testuser", u.Username)
	assert.NotEqual(t, "password123", u.PasswordHash)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, u.HasRefreshToken(pair.RefreshToken))
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name                      string
		username, email, password string
	}{
		{"missing username", "", "test@example.com", "password123"},
		{"missing email", "testuser", "", "password123"},
		{"missing password", "testuser", "test@example.com", ""},
		{"short username", "ab", "test@example.com", "password123"},
		{"bad email", "testuser", "not-an-email", "password123"},
		{"short password", "testuser", "test@example.com", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tt.username, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRegisterConflict(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "testuser", "test@example.com", "password123")
	require.NoError(t, err)

	// same email, different username
	_, _, err = svc.Register(ctx, "otheruser", "test@example.com", "password123")
	assert.ErrorIs(t, err, ErrConflict)

	// same username, different email
	_, _, err = svc.Register(ctx, "testuser", "other@example.com", "password123")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLoginAppendsSession(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	reg, regPair, err := svc.Register(ctx, "testuser", "test@example.com", "password123")
	require.NoError(t, err)

	u, pair, err := svc.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, u.ID)
	assert.NotEqual(t, regPair.RefreshToken, pair.RefreshToken)

	stored, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, stored.HasRefreshToken(regPair.RefreshToken), "earlier session must survive a new login")
	assert.True(t, stored.HasRefreshToken(pair.RefreshToken))
}

func TestLoginUndifferentiatedFailure(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "testuser", "test@example.com", "password123")
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(ctx, "test@example.com", "wrong-password")
	_, _, unknownEmail := svc.Login(ctx, "nobody@example.com", "password123")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "", "password123")
	assert.ErrorIs(t, err, ErrValidation)
	_, _, err = svc.Login(ctx, "test@example.com", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRefreshRotation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, pair, err := svc.Register(ctx, "testuser", "test@example.com", "password123")
	require.NoError(t, err)

	rotated, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// the predecessor is single-use: replaying it must fail
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// the successor still works
	_, err = svc.Refresh(ctx, rotated.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshFailures(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.Refresh(ctx, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Refresh(ctx, "garbage-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// cryptographically valid token for a deleted user
	u, pair, err := svc.Register(ctx, "testuser", "test@example.com", "password123")
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, u.ID))
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, pair, err := svc.Register(ctx, "testuser", "test@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, u.ID, pair.RefreshToken))

	// the token still carries a valid signature; only the list check fails
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutOnlyTargetsOneSession(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	u, first, err := svc.Register(ctx, "testuser", "test@example.com", "password123")
	require.NoError(t, err)
	_, second, err := svc.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, u.ID, first.RefreshToken))

	stored, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, stored.HasRefreshToken(first.RefreshToken))
	assert.True(t, stored.HasRefreshToken(second.RefreshToken))
}

func TestLogoutWithoutTokenKeepsSessions(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	u, pair, err := svc.Register(ctx, "testuser", "test@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, u.ID, ""))

	stored, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, stored.HasRefreshToken(pair.RefreshToken))
}

func TestLogoutUserGone(t *testing.T) {
	svc, _ := newTestService()
	err := svc.Logout(context.Background(), "no-such-user", "token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfileAllowList(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	u, pair, err := svc.Register(ctx, "testuser", "test@example.com", "password123")
	require.NoError(t, err)
	hashBefore := u.PasswordHash

	updated, err := svc.UpdateProfile(ctx, u.ID, "newname", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "newname", updated.Username)
	assert.Equal(t, "new@example.com", updated.Email)

	stored, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, hashBefore, stored.PasswordHash, "profile update must not touch the credential hash")
	assert.True(t, stored.HasRefreshToken(pair.RefreshToken), "profile update must not touch sessions")
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, _, err := svc.Register(ctx, "testuser", "test@example.com", "password123")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, u.ID, "newname", "")
	require.NoError(t, err)
	assert.Equal(t, "newname", updated.Username)
	assert.Equal(t, "test@example.com", updated.Email)
}

func TestUpdateProfileNotFound(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.UpdateProfile(context.Background(), "no-such-user", "newname", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, _, err := svc.Register(ctx, "testuser", "test@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, u.ID))
	assert.ErrorIs(t, svc.Delete(ctx, u.ID), ErrNotFound)
	_, err = svc.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPruneExpiredSessions(t *testing.T) {
	repo := memory.NewUsersRepo()
	live := auth.NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	expired := auth.NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, -time.Minute)
	svc := NewAuthService(repo, live, 4, nil)
	ctx := context.Background()

	u, pair, err := svc.Register(ctx, "testuser", "test@example.com", "password123")
	require.NoError(t, err)

	dead, err := expired.IssueRefreshToken(u.ID)
	require.NoError(t, err)
	stored, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	stored.AddRefreshToken(dead)
	require.NoError(t, repo.UpdateRefreshTokens(ctx, u.ID, stored.RefreshTokens))

	require.NoError(t, svc.pruneExpired(ctx, u.ID))

	after, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, after.HasRefreshToken(pair.RefreshToken))
	assert.False(t, after.HasRefreshToken(dead))
}
