package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/app/repositories"
	"github.com/minsu/dormisphere/internal/pkg/apperrors"
)

// postRepo is the board post persistence dependency
type postRepo interface {
	CreatePost(ctx context.Context, post *models.Post) (int64, error)
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)
	ListPosts(ctx context.Context, viewerID int64, staff bool, limit int) ([]*models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id int64) error
}

// Caller identifies the authenticated user performing an operation
type Caller struct {
	UserID int64
	Staff  bool
}

// PostService defines the interface for board post operations
type PostService interface {
	CreatePost(ctx context.Context, post *models.Post) (int64, error)
	GetPostByID(ctx context.Context, caller Caller, id int64) (*models.Post, error)
	ListPosts(ctx context.Context, caller Caller, limit int) ([]*models.Post, error)
	UpdatePost(ctx context.Context, caller Caller, post *models.Post) error
	DeletePost(ctx context.Context, caller Caller, id int64) error
}

// postServiceImpl implements the PostService interface
type postServiceImpl struct {
	postRepo postRepo
}

// NewPostService creates a new post service instance
func NewPostService(postRepo postRepo) PostService {
	return &postServiceImpl{postRepo: postRepo}
}

// CreatePost creates a board post
func (s *postServiceImpl) CreatePost(ctx context.Context, post *models.Post) (int64, error) {
	id, err := s.postRepo.CreatePost(ctx, post)
	if err != nil {
		return 0, fmt.Errorf("error creating post: %w", err)
	}
	return id, nil
}

// GetPostByID retrieves a post. Hidden posts are readable only by their
// owner and by staff.
func (s *postServiceImpl) GetPostByID(ctx context.Context, caller Caller, id int64) (*models.Post, error) {
	post, err := s.postRepo.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("post not found")
		}
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}

	if !post.Visible && post.AuthorID != caller.UserID && !caller.Staff {
		return nil, apperrors.NewForbiddenError("post is not visible")
	}

	return post, nil
}

// ListPosts lists posts visible to the caller
func (s *postServiceImpl) ListPosts(ctx context.Context, caller Caller, limit int) ([]*models.Post, error) {
	posts, err := s.postRepo.ListPosts(ctx, caller.UserID, caller.Staff, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving posts: %w", err)
	}
	return posts, nil
}

// UpdatePost updates a post. The owning row is re-fetched and its author
// compared to the caller before mutating; editing is owner-only.
func (s *postServiceImpl) UpdatePost(ctx context.Context, caller Caller, post *models.Post) error {
	existing, err := s.postRepo.GetPostByID(ctx, post.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("post not found")
		}
		return fmt.Errorf("error retrieving post: %w", err)
	}

	if existing.AuthorID != caller.UserID {
		return apperrors.NewForbiddenError("only the author can edit this post")
	}

	if err := s.postRepo.UpdatePost(ctx, post); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("post not found")
		}
		return fmt.Errorf("error updating post: %w", err)
	}
	return nil
}

// DeletePost deletes a post. Owners delete their own posts; staff may
// delete any post.
func (s *postServiceImpl) DeletePost(ctx context.Context, caller Caller, id int64) error {
	existing, err := s.postRepo.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("post not found")
		}
		return fmt.Errorf("error retrieving post: %w", err)
	}

	if existing.AuthorID != caller.UserID && !caller.Staff {
		return apperrors.NewForbiddenError("only the author can delete this post")
	}

	if err := s.postRepo.DeletePost(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("post not found")
		}
		return fmt.Errorf("error deleting post: %w", err)
	}
	return nil
}
