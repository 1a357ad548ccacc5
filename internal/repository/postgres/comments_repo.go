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

const commentColumns = `id, post_id, sender_id, message, created_at, updated_at`

type commentsRepo struct{ pool *pgxpool.Pool }

func NewComments(pool *pgxpool.Pool) repository.Comments {
	return &commentsRepo{pool: pool}
}

func scanComment(row pgx.Row) (models.Comment, error) {
	var c models.Comment
	err := row.Scan(&c.ID, &c.PostID, &c.SenderID, &c.Message, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Comment{}, repository.ErrNotFound
	}
	return c, err
}

func (r *commentsRepo) Create(ctx context.Context, c models.Comment) (models.Comment, error) {
	return scanComment(r.pool.QueryRow(ctx,
		`INSERT INTO comments(id, post_id, sender_id, message)
		 VALUES($1,$2,$3,$4)
		 RETURNING `+commentColumns,
		uuid.NewString(), c.PostID, c.SenderID, c.Message,
	))
}

func (r *commentsRepo) GetByID(ctx context.Context, id string) (models.Comment, error) {
	return scanComment(r.pool.QueryRow(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id=$1`, id))
}

// List returns newest-first; an empty postID returns all comments.
func (r *commentsRepo) List(ctx context.Context, postID string) ([]models.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+commentColumns+` FROM comments
		 WHERE $1='' OR post_id=$1
		 ORDER BY created_at DESC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.SenderID, &c.Message, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *commentsRepo) Update(ctx context.Context, c models.Comment) (models.Comment, error) {
	return scanComment(r.pool.QueryRow(ctx,
		`UPDATE comments SET post_id=$2, sender_id=$3, message=$4, updated_at=now()
		 WHERE id=$1
		 RETURNING `+commentColumns,
		c.ID, c.PostID, c.SenderID, c.Message,
	))
}

func (r *commentsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
