package services

import (
	"context"
	"errors"
	"testing"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/app/repositories"
	"github.com/minsu/dormisphere/internal/pkg/apperrors"
)

type mockNoticeRepo struct {
	notices map[int64]*models.Notice
	nextID  int64
}

func newMockNoticeRepo() *mockNoticeRepo {
	return &mockNoticeRepo{notices: map[int64]*models.Notice{}, nextID: 1}
}

func (m *mockNoticeRepo) CreateNotice(ctx context.Context, notice *models.Notice) (int64, error) {
	id := m.nextID
	m.nextID++
	stored := *notice
	stored.ID = id
	m.notices[id] = &stored
	return id, nil
}

func (m *mockNoticeRepo) GetNoticeByID(ctx context.Context, id int64) (*models.Notice, error) {
	notice, ok := m.notices[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return notice, nil
}

func (m *mockNoticeRepo) ListNotices(ctx context.Context, target string, limit int) ([]*models.Notice, error) {
	result := []*models.Notice{}
	for _, notice := range m.notices {
		if target != "" && !containsTag(notice.Target, target) {
			continue
		}
		result = append(result, notice)
	}
	return result, nil
}

func (m *mockNoticeRepo) UpdateNotice(ctx context.Context, notice *models.Notice) error {
	if _, ok := m.notices[notice.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.notices[notice.ID] = notice
	return nil
}

func (m *mockNoticeRepo) DeleteNotice(ctx context.Context, id int64) error {
	if _, ok := m.notices[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.notices, id)
	return nil
}

func containsTag(tags []string, target string) bool {
	for _, tag := range tags {
		if tag == target {
			return true
		}
	}
	return false
}

func TestGetNoticeMissing(t *testing.T) {
	svc := NewNoticeService(newMockNoticeRepo())

	if _, err := svc.GetNoticeByID(context.Background(), 42); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected not found for missing notice, got %v", err)
	}
}

func TestNoticeLifecycle(t *testing.T) {
	repo := newMockNoticeRepo()
	svc := NewNoticeService(repo)
	ctx := context.Background()

	id, err := svc.CreateNotice(ctx, &models.Notice{
		Title:    "Lights out moved to 23:30",
		Content:  "Effective next week.",
		Target:   []string{"grade-2", "dorm-a"},
		AuthorID: 9,
	})
	if err != nil {
		t.Fatalf("CreateNotice returned error: %v", err)
	}

	notice, err := svc.GetNoticeByID(ctx, id)
	if err != nil {
		t.Fatalf("GetNoticeByID returned error: %v", err)
	}
	if notice.Title != "Lights out moved to 23:30" || notice.AuthorID != 9 {
		t.Errorf("unexpected notice: %+v", notice)
	}

	notice.Content = "Effective immediately."
	if err := svc.UpdateNotice(ctx, notice); err != nil {
		t.Fatalf("UpdateNotice returned error: %v", err)
	}
	updated, err := svc.GetNoticeByID(ctx, id)
	if err != nil {
		t.Fatalf("GetNoticeByID after update returned error: %v", err)
	}
	if updated.Content != "Effective immediately." {
		t.Errorf("expected updated content, got %q", updated.Content)
	}

	if err := svc.DeleteNotice(ctx, id); err != nil {
		t.Fatalf("DeleteNotice returned error: %v", err)
	}
	if _, err := svc.GetNoticeByID(ctx, id); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestUpdateNoticeMissing(t *testing.T) {
	svc := NewNoticeService(newMockNoticeRepo())

	err := svc.UpdateNotice(context.Background(), &models.Notice{ID: 42, Title: "x"})
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected not found updating missing notice, got %v", err)
	}
}

func TestDeleteNoticeMissing(t *testing.T) {
	svc := NewNoticeService(newMockNoticeRepo())

	if err := svc.DeleteNotice(context.Background(), 42); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected not found deleting missing notice, got %v", err)
	}
}

func TestListNoticesAudienceFilter(t *testing.T) {
	repo := newMockNoticeRepo()
	svc := NewNoticeService(repo)
	ctx := context.Background()

	if _, err := svc.CreateNotice(ctx, &models.Notice{Title: "a", Target: []string{"grade-1"}, AuthorID: 9}); err != nil {
		t.Fatalf("CreateNotice returned error: %v", err)
	}
	if _, err := svc.CreateNotice(ctx, &models.Notice{Title: "b", Target: []string{"grade-2", "dorm-a"}, AuthorID: 9}); err != nil {
		t.Fatalf("CreateNotice returned error: %v", err)
	}

	all, err := svc.ListNotices(ctx, "", 20)
	if err != nil {
		t.Fatalf("ListNotices returned error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 notices without a filter, got %d", len(all))
	}

	grade2, err := svc.ListNotices(ctx, "grade-2", 20)
	if err != nil {
		t.Fatalf("ListNotices returned error: %v", err)
	}
	if len(grade2) != 1 || grade2[0].Title != "b" {
		t.Errorf("expected only the grade-2 notice, got %d rows", len(grade2))
	}
}
