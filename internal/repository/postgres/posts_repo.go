package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/postboard/postboard/internal/models"
	"github.com/postboard/postboard/internal/repository"
)

const postColumns = `id, sender_id, title, content, created_at, updated_at`

type postsRepo struct{ pool *pgxpool.Pool }

func NewPosts(pool *pgxpool.Pool) repository.Posts {
	return &postsRepo{pool: pool}
}

func scanPost(row pgx.Row) (models.Post, error) {
	var p models.Post
	err := row.Scan(&p.ID, &p.SenderID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Post{}, repository.ErrNotFound
	}
	return p, err
}

func (r *postsRepo) Create(ctx context.Context, p models.Post) (models.Post, error) {
	return scanPost(r.pool.QueryRow(ctx,
		`INSERT INTO posts(id, sender_id, title, content)
		 VALUES($1,$2,$3,$4)
		 RETURNING `+postColumns,
		uuid.NewString(), p.SenderID, p.Title, p.Content,
	))
}

func (r *postsRepo) GetByID(ctx context.Context, id string) (models.Post, error) {
	return scanPost(r.pool.QueryRow(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id=$1`, id))
}

// List returns newest-first; an empty senderID returns all posts.
func (r *postsRepo) List(ctx context.Context, senderID string) ([]models.Post, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+postColumns+` FROM posts
		 WHERE $1='' OR sender_id=$1
		 ORDER BY created_at DESC`, senderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.SenderID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *postsRepo) Update(ctx context.Context, p models.Post) (models.Post, error) {
	return scanPost(r.pool.QueryRow(ctx,
		`UPDATE posts SET sender_id=$2, title=$3, content=$4, updated_at=now()
		 WHERE id=$1
		 RETURNING `+postColumns,
		p.ID, p.SenderID, p.Title, p.Content,
	))
}
