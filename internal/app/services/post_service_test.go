package services

import (
	"context"
	"errors"
	"testing"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/app/repositories"
	"github.com/minsu/dormisphere/internal/pkg/apperrors"
)

type mockPostRepo struct {
	posts   map[int64]*models.Post
	updated []*models.Post
	deleted []int64
}

func (m *mockPostRepo) CreatePost(ctx context.Context, post *models.Post) (int64, error) {
	if m.posts == nil {
		m.posts = map[int64]*models.Post{}
	}
	id := int64(len(m.posts) + 1)
	stored := *post
	stored.ID = id
	m.posts[id] = &stored
	return id, nil
}

func (m *mockPostRepo) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (m *mockPostRepo) ListPosts(ctx context.Context, viewerID int64, staff bool, limit int) ([]*models.Post, error) {
	var out []*models.Post
	for _, post := range m.posts {
		if staff || post.Visible || post.AuthorID == viewerID {
			out = append(out, post)
		}
	}
	return out, nil
}

func (m *mockPostRepo) UpdatePost(ctx context.Context, post *models.Post) error {
	if _, ok := m.posts[post.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.updated = append(m.updated, post)
	return nil
}

func (m *mockPostRepo) DeletePost(ctx context.Context, id int64) error {
	if _, ok := m.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func seedHiddenPost(t *testing.T, repo *mockPostRepo, authorID int64) int64 {
	t.Helper()
	id, err := repo.CreatePost(context.Background(), &models.Post{
		Title:    "hidden",
		Content:  "content",
		AuthorID: authorID,
		Visible:  false,
	})
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}
	return id
}

func TestGetHiddenPostAccess(t *testing.T) {
	repo := &mockPostRepo{}
	svc := NewPostService(repo)
	ctx := context.Background()
	id := seedHiddenPost(t, repo, 1)

	if _, err := svc.GetPostByID(ctx, Caller{UserID: 2}, id); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected forbidden for stranger, got %v", err)
	}
	if _, err := svc.GetPostByID(ctx, Caller{UserID: 1}, id); err != nil {
		t.Errorf("expected owner to read hidden post, got %v", err)
	}
	if _, err := svc.GetPostByID(ctx, Caller{UserID: 3, Staff: true}, id); err != nil {
		t.Errorf("expected staff to read hidden post, got %v", err)
	}
}

func TestUpdatePostOwnerOnly(t *testing.T) {
	repo := &mockPostRepo{}
	svc := NewPostService(repo)
	ctx := context.Background()
	id := seedHiddenPost(t, repo, 1)

	edit := &models.Post{ID: id, Title: "edited", Content: "new", Visible: true}

	err := svc.UpdatePost(ctx, Caller{UserID: 2}, edit)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected forbidden for non-owner edit, got %v", err)
	}
	if len(repo.updated) != 0 {
		t.Error("expected no write after forbidden edit")
	}

	// Staff role does not bypass the edit ownership rule
	err = svc.UpdatePost(ctx, Caller{UserID: 2, Staff: true}, edit)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected forbidden for staff non-owner edit, got %v", err)
	}

	if err := svc.UpdatePost(ctx, Caller{UserID: 1}, edit); err != nil {
		t.Errorf("expected owner edit to pass, got %v", err)
	}
}

func TestDeletePostOwnerOrStaff(t *testing.T) {
	repo := &mockPostRepo{}
	svc := NewPostService(repo)
	ctx := context.Background()

	first := seedHiddenPost(t, repo, 1)
	second := seedHiddenPost(t, repo, 1)

	if err := svc.DeletePost(ctx, Caller{UserID: 2}, first); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected forbidden for stranger delete, got %v", err)
	}
	if err := svc.DeletePost(ctx, Caller{UserID: 1}, first); err != nil {
		t.Errorf("expected owner delete to pass, got %v", err)
	}
	if err := svc.DeletePost(ctx, Caller{UserID: 9, Staff: true}, second); err != nil {
		t.Errorf("expected staff delete to pass, got %v", err)
	}
}

func TestListPostsFiltersHidden(t *testing.T) {
	repo := &mockPostRepo{}
	svc := NewPostService(repo)
	ctx := context.Background()

	seedHiddenPost(t, repo, 1)
	if _, err := repo.CreatePost(ctx, &models.Post{Title: "open", AuthorID: 2, Visible: true}); err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}

	visible, err := svc.ListPosts(ctx, Caller{UserID: 3}, 20)
	if err != nil {
		t.Fatalf("ListPosts returned error: %v", err)
	}
	if len(visible) != 1 {
		t.Errorf("expected stranger to see 1 post, got %d", len(visible))
	}

	own, err := svc.ListPosts(ctx, Caller{UserID: 1}, 20)
	if err != nil {
		t.Fatalf("ListPosts returned error: %v", err)
	}
	if len(own) != 2 {
		t.Errorf("expected owner to see hidden post too, got %d", len(own))
	}
}
