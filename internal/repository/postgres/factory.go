package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
	repo "github.com/postboard/postboard/internal/repository"
)

type Repositories struct {
	Users    repo.Users
	Posts    repo.Posts
	Comments repo.Comments
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:    &usersRepo{pool},
		Posts:    &postsRepo{pool},
		Comments: &commentsRepo{pool},
	}
}
