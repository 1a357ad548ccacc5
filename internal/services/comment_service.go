package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/postboard/postboard/internal/models"
	"github.com/postboard/postboard/internal/repository"
)

// CommentService is a thin pass-through over the comments repository.
type CommentService struct {
	comments repository.Comments
}

func NewCommentService(comments repository.Comments) *CommentService {
	return &CommentService{comments: comments}
}

func (s *CommentService) Create(ctx context.Context, c models.Comment) (models.Comment, error) {
	if err := c.Validate(); err != nil {
		return models.Comment{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	return s.comments.Create(ctx, c)
}

func (s *CommentService) GetByID(ctx context.Context, id string) (models.Comment, error) {
	c, err := s.comments.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Comment{}, ErrNotFound
	}
	return c, err
}

// List returns all comments, or only those on postID when it is non-empty.
func (s *CommentService) List(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.comments.List(ctx, postID)
}

func (s *CommentService) Update(ctx context.Context, c models.Comment) (models.Comment, error) {
	if err := c.Validate(); err != nil {
		return models.Comment{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	updated, err := s.comments.Update(ctx, c)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Comment{}, ErrNotFound
	}
	return updated, err
}

func (s *CommentService) Delete(ctx context.Context, id string) error {
	err := s.comments.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
