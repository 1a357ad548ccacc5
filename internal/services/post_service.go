package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/postboard/postboard/internal/models"
	"github.com/postboard/postboard/internal/repository"
)

// PostService is a thin pass-through over the posts repository.
type PostService struct {
	posts    repository.Posts
	comments repository.Comments
}

func NewPostService(posts repository.Posts, comments repository.Comments) *PostService {
	return &PostService{posts: posts, comments: comments}
}

func (s *PostService) Create(ctx context.Context, p models.Post) (models.Post, error) {
	if err := p.Validate(); err != nil {
		return models.Post{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	return s.posts.Create(ctx, p)
}

func (s *PostService) GetByID(ctx context.Context, id string) (models.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Post{}, ErrNotFound
	}
	return p, err
}

// List returns all posts, or only those by senderID when it is non-empty.
func (s *PostService) List(ctx context.Context, senderID string) ([]models.Post, error) {
	return s.posts.List(ctx, senderID)
}

func (s *PostService) CommentsForPost(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.comments.List(ctx, postID)
}

func (s *PostService) Update(ctx context.Context, p models.Post) (models.Post, error) {
	if err := p.Validate(); err != nil {
		return models.Post{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	updated, err := s.posts.Update(ctx, p)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Post{}, ErrNotFound
	}
	return updated, err
}
