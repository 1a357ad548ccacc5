package repository

import (
	"context"
	"errors"

	"github.com/postboard/postboard/internal/models"
)

// ErrNotFound is returned by every repository when the requested record does
// not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert collides with a uniqueness
// constraint. The service pre-checks uniqueness, but racing registrations can
// still land here.
var ErrDuplicate = errors.New("duplicate record")

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	// ExistsByUsernameOrEmail reports whether any user already holds either
	// value; registration uses it for the uniqueness check.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	// UpdateProfile touches username and email only; the credential hash and
	// session list are unreachable through this path.
	UpdateProfile(ctx context.Context, id, username, email string) (models.User, error)
	// UpdateRefreshTokens durably replaces the session list in one statement.
	// Per-row write atomicity is the only concurrency control: two racing
	// updates resolve last-wins.
	UpdateRefreshTokens(ctx context.Context, id string, tokens []string) error
	Delete(ctx context.Context, id string) error
}

type Posts interface {
	Create(ctx context.Context, p models.Post) (models.Post, error)
	GetByID(ctx context.Context, id string) (models.Post, error)
	List(ctx context.Context, senderID string) ([]models.Post, error)
	Update(ctx context.Context, p models.Post) (models.Post, error)
}

type Comments interface {
	Create(ctx context.Context, c models.Comment) (models.Comment, error)
	GetByID(ctx context.Context, id string) (models.Comment, error)
	List(ctx context.Context, postID string) ([]models.Comment, error)
	Update(ctx context.Context, c models.Comment) (models.Comment, error)
	Delete(ctx context.Context, id string) error
}
