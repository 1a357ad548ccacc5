// Package memory holds in-memory repository implementations used by tests
// and local experiments. Semantics mirror the postgres implementations.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/postboard/postboard/internal/models"
	"github.com/postboard/postboard/internal/repository"
)

type UsersRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

var _ repository.Users = (*UsersRepo)(nil)

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{users: make(map[string]models.User)}
}

func clone(u models.User) models.User {
	out := u
	out.RefreshTokens = append([]string(nil), u.RefreshTokens...)
	return out
}

func (r *UsersRepo) Create(_ context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return models.User{}, repository.ErrDuplicate
		}
	}
	now := time.Now()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users[u.ID] = clone(u)
	return clone(u), nil
}

func (r *UsersRepo) GetByID(_ context.Context, id string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return clone(u), nil
}

func (r *UsersRepo) GetByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (r *UsersRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *UsersRepo) List(_ context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, clone(u))
	}
	return out, nil
}

func (r *UsersRepo) UpdateProfile(_ context.Context, id, username, email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	for otherID, other := range r.users {
		if otherID == id {
			continue
		}
		if (username != "" && other.Username == username) || (email != "" && other.Email == email) {
			return models.User{}, repository.ErrDuplicate
		}
	}
	if username != "" {
		u.Username = username
	}
	if email != "" {
		u.Email = email
	}
	u.UpdatedAt = time.Now()
	r.users[id] = clone(u)
	return clone(u), nil
}

func (r *UsersRepo) UpdateRefreshTokens(_ context.Context, id string, tokens []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.RefreshTokens = append([]string(nil), tokens...)
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return nil
}

func (r *UsersRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}
