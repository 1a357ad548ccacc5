package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/postboard/postboard/internal/auth"
	"github.com/postboard/postboard/internal/metrics"
	"github.com/postboard/postboard/internal/models"
	"github.com/postboard/postboard/internal/repository"
	"github.com/postboard/postboard/internal/worker"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService owns the credential and session lifecycle: registration,
// login, refresh-token rotation, logout, and the profile/delete paths that
// must not touch credentials.
type AuthService struct {
	users      repository.Users
	tm         *auth.TokenManager
	bcryptCost int
	wp         *worker.Pool
}

func NewAuthService(users repository.Users, tm *auth.TokenManager, bcryptCost int, wp *worker.Pool) *AuthService {
	return &AuthService{users: users, tm: tm, bcryptCost: bcryptCost, wp: wp}
}

// Register creates a user and its first session. This is the only path that
// creates users.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (models.User, TokenPair, error) {
	if username == "" || email == "" || password == "" {
		return models.User{}, TokenPair{}, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}
	u := models.User{Username: username, Email: email}
	if err := u.Validate(); err != nil {
		return models.User{}, TokenPair{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if len(password) < 6 {
		return models.User{}, TokenPair{}, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	taken, err := s.users.ExistsByUsernameOrEmail(ctx, u.Username, u.Email)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	if taken {
		return models.User{}, TokenPair{}, ErrConflict
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	u.PasswordHash = hash

	created, err := s.users.Create(ctx, u)
	if errors.Is(err, repository.ErrDuplicate) {
		// lost the race against a concurrent registration
		return models.User{}, TokenPair{}, ErrConflict
	}
	if err != nil {
		return models.User{}, TokenPair{}, err
	}

	pair, err := s.issuePair(created.ID)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	created.AddRefreshToken(pair.RefreshToken)
	if err := s.users.UpdateRefreshTokens(ctx, created.ID, created.RefreshTokens); err != nil {
		return models.User{}, TokenPair{}, err
	}
	metrics.AuthAttempts.WithLabelValues("register", "ok").Inc()
	return created, pair, nil
}

// Login verifies credentials and appends a new session, so each device keeps
// its own refresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, TokenPair, error) {
	if email == "" || password == "" {
		return models.User{}, TokenPair{}, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		metrics.AuthAttempts.WithLabelValues("login", "denied").Inc()
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		metrics.AuthAttempts.WithLabelValues("login", "denied").Inc()
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issuePair(u.ID)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	u.AddRefreshToken(pair.RefreshToken)
	if err := s.users.UpdateRefreshTokens(ctx, u.ID, u.RefreshTokens); err != nil {
		return models.User{}, TokenPair{}, err
	}
	s.pruneLater(u.ID)
	metrics.AuthAttempts.WithLabelValues("login", "ok").Inc()
	return u, pair, nil
}

// Refresh rotates a session: the presented token is retired and a new pair
// issued. A token that fails signature or expiry checks, names a user that no
// longer exists, or is absent from that user's session list (revoked) all
// yield ErrInvalidToken.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, fmt.Errorf("%w: refresh token is required", ErrValidation)
	}

	claims := s.tm.VerifyRefresh(refreshToken)
	if claims == nil {
		metrics.AuthAttempts.WithLabelValues("refresh", "denied").Inc()
		return TokenPair{}, ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		metrics.AuthAttempts.WithLabelValues("refresh", "denied").Inc()
		return TokenPair{}, ErrInvalidToken
	}
	if err != nil {
		return TokenPair{}, err
	}
	// the signature alone is not enough: the token must still be on the
	// session list, which is what makes server-side revocation stick
	if !u.HasRefreshToken(refreshToken) {
		metrics.AuthAttempts.WithLabelValues("refresh", "denied").Inc()
		return TokenPair{}, ErrInvalidToken
	}

	pair, err := s.issuePair(u.ID)
	if err != nil {
		return TokenPair{}, err
	}
	u.ReplaceRefreshToken(refreshToken, pair.RefreshToken)
	if err := s.users.UpdateRefreshTokens(ctx, u.ID, u.RefreshTokens); err != nil {
		return TokenPair{}, err
	}
	s.pruneLater(u.ID)
	metrics.AuthAttempts.WithLabelValues("refresh", "ok").Inc()
	return pair, nil
}

// Logout removes the supplied session from the caller's session list. An
// empty refreshToken leaves the list untouched; other sessions stay valid
// either way.
func (s *AuthService) Logout(ctx context.Context, userID, refreshToken string) error {
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if refreshToken == "" {
		return nil
	}
	u.RemoveRefreshToken(refreshToken)
	return s.users.UpdateRefreshTokens(ctx, u.ID, u.RefreshTokens)
}

// UpdateProfile changes username and/or email only. Whatever else the caller
// sends, the credential hash and session list are unreachable here.
func (s *AuthService) UpdateProfile(ctx context.Context, id, username, email string) (models.User, error) {
	if username != "" {
		username = strings.TrimSpace(username)
		if len(username) < 3 {
			return models.User{}, fmt.Errorf("%w: username must be at least 3 characters", ErrValidation)
		}
	}
	if email != "" {
		check := models.User{Username: "___", Email: email}
		if err := check.Validate(); err != nil {
			return models.User{}, fmt.Errorf("%w: invalid email", ErrValidation)
		}
	}
	u, err := s.users.UpdateProfile(ctx, id, username, email)
	if errors.Is(err, repository.ErrNotFound) {
		return models.User{}, ErrNotFound
	}
	if errors.Is(err, repository.ErrDuplicate) {
		return models.User{}, ErrConflict
	}
	return u, err
}

// Delete removes the user record entirely; the sessions die with it.
func (s *AuthService) Delete(ctx context.Context, id string) error {
	err := s.users.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *AuthService) GetByID(ctx context.Context, id string) (models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

func (s *AuthService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *AuthService) issuePair(userID string) (TokenPair, error) {
	access, err := s.tm.IssueAccessToken(userID)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.tm.IssueRefreshToken(userID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// pruneLater queues a sweep that drops sessions whose tokens have expired, so
// the stored list tracks only tokens the verifier would still honor.
func (s *AuthService) pruneLater(userID string) {
	if s.wp == nil {
		return
	}
	s.wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.pruneExpired(ctx, userID); err != nil {
			slog.Warn("session prune", "user", userID, "err", err)
		}
	})
}

func (s *AuthService) pruneExpired(ctx context.Context, userID string) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	kept := u.RefreshTokens[:0:0]
	for _, t := range u.RefreshTokens {
		if s.tm.VerifyRefresh(t) != nil {
			kept = append(kept, t)
		}
	}
	dropped := len(u.RefreshTokens) - len(kept)
	if dropped == 0 {
		return nil
	}
	if err := s.users.UpdateRefreshTokens(ctx, userID, kept); err != nil {
		return err
	}
	metrics.SessionsPruned.Add(float64(dropped))
	return nil
}
