package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User is the identity record. The refresh-token list is the set of sessions
// currently honored for this user, one entry per active device.
type User struct {
	ID            string    `json:"_id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	RefreshTokens []string  `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (u *User) Validate() error {
	u.Username = strings.TrimSpace(u.Username)
	if len(u.Username) < 3 {
		return errors.New("username must be at least 3 characters")
	}
	if !emailPattern.MatchString(u.Email) {
		return errors.New("invalid email")
	}
	return nil
}

// AddRefreshToken appends a session. Callers rely on random signing for
// uniqueness; no dedup here.
func (u *User) AddRefreshToken(token string) {
	u.RefreshTokens = append(u.RefreshTokens, token)
}

// RemoveRefreshToken removes the first exact match. Removing a token that is
// not present is a no-op.
func (u *User) RemoveRefreshToken(token string) {
	for i, t := range u.RefreshTokens {
		if t == token {
			u.RefreshTokens = append(u.RefreshTokens[:i], u.RefreshTokens[i+1:]...)
			return
		}
	}
}

// ReplaceRefreshToken rotates a session: the old token is removed and the new
// one appended. The append proceeds even when old is absent, so a rotation
// racing a concurrent refresh cannot strand the user without a session.
func (u *User) ReplaceRefreshToken(oldToken, newToken string) {
	u.RemoveRefreshToken(oldToken)
	u.AddRefreshToken(newToken)
}

// HasRefreshToken reports whether the session list currently honors token.
func (u *User) HasRefreshToken(token string) bool {
	for _, t := range u.RefreshTokens {
		if t == token {
			return true
		}
	}
	return false
}

// ClearSessions empties the session list, logging the user out everywhere.
func (u *User) ClearSessions() {
	u.RefreshTokens = nil
}
