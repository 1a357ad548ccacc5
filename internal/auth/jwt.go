package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every access-token verification failure: bad
// signature, expired, or not an access token at all.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager signs and verifies access and refresh tokens. The two classes
// use independent secrets, so compromise of one cannot forge the other.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

func (tm *TokenManager) sign(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (tm *TokenManager) IssueAccessToken(userID string) (string, error) {
	return tm.sign(userID, tm.accessSecret, tm.accessTTL)
}

func (tm *TokenManager) IssueRefreshToken(userID string) (string, error) {
	return tm.sign(userID, tm.refreshSecret, tm.refreshTTL)
}

// VerifyAccess validates an access token and returns its claims, or
// ErrInvalidToken.
func (tm *TokenManager) VerifyAccess(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return tm.accessSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyRefresh validates a refresh token and returns its claims, or nil.
// The soft-fail return is deliberate: refresh callers branch on presence and
// collapse every failure mode into one outcome, unlike the access path.
func (tm *TokenManager) VerifyRefresh(tokenStr string) *Claims {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return tm.refreshSecret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	return claims
}
