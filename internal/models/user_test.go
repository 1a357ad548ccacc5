package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		wantErr  bool
	}{
		{"valid", "testuser", "test@example.com", false},
		{"trims whitespace", "  testuser  ", "test@example.com", false},
		{"username too short", "ab", "test@example.com", true},
		{"whitespace-only username", "   ", "test@example.com", true},
		{"email without at", "testuser", "example.com", true},
		{"email without tld", "testuser", "test@example", true},
		{"email with spaces", "testuser", "te st@example.com", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{Username: tt.username, Email: tt.email}
			err := u.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSessionListOps(t *testing.T) {
	u := User{}

	u.AddRefreshToken("t1")
	u.AddRefreshToken("t2")
	assert.True(t, u.HasRefreshToken("t1"))
	assert.True(t, u.HasRefreshToken("t2"))

	u.RemoveRefreshToken("t1")
	assert.False(t, u.HasRefreshToken("t1"))
	assert.Equal(t, []string{"t2"}, u.RefreshTokens)

	// removing an absent token is a no-op
	u.RemoveRefreshToken("missing")
	assert.Equal(t, []string{"t2"}, u.RefreshTokens)
}

func TestRemoveRefreshTokenExactMatchOnly(t *testing.T) {
	u := User{RefreshTokens: []string{"abc", "abcd"}}
	u.RemoveRefreshToken("abc")
	assert.Equal(t, []string{"abcd"}, u.RefreshTokens)
}

func TestReplaceRefreshToken(t *testing.T) {
	u := User{RefreshTokens: []string{"old", "other"}}
	u.ReplaceRefreshToken("old", "new")
	assert.Equal(t, []string{"other", "new"}, u.RefreshTokens)
}

func TestReplaceRefreshTokenWithAbsentOld(t *testing.T) {
	// a stale rotation must still install the new session
	u := User{RefreshTokens: []string{"other"}}
	u.ReplaceRefreshToken("gone", "new")
	assert.Equal(t, []string{"other", "new"}, u.RefreshTokens)
}

func TestClearSessions(t *testing.T) {
	u := User{RefreshTokens: []string{"t1", "t2"}}
	u.ClearSessions()
	assert.Empty(t, u.RefreshTokens)
}
