package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/app/repositories"
	"github.com/minsu/dormisphere/internal/pkg/apperrors"
)

type mockStayRepo struct {
	rows map[string]*models.StayStatus
}

func stayKey(userID int64, date string) string {
	return fmt.Sprintf("%s#%d", date, userID)
}

func (m *mockStayRepo) UpsertStay(ctx context.Context, stay *models.StayStatus) error {
	if m.rows == nil {
		m.rows = map[string]*models.StayStatus{}
	}
	stored := *stay
	m.rows[stayKey(stay.UserID, stay.StayDate)] = &stored
	return nil
}

func (m *mockStayRepo) GetStay(ctx context.Context, userID int64, date string) (*models.StayStatus, error) {
	stay, ok := m.rows[stayKey(userID, date)]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return stay, nil
}

func (m *mockStayRepo) ListStaysByDate(ctx context.Context, date string, limit int) ([]*models.StayStatus, error) {
	var out []*models.StayStatus
	for _, stay := range m.rows {
		if stay.StayDate == date {
			out = append(out, stay)
		}
	}
	return out, nil
}

func TestSubmitStayValidatesDate(t *testing.T) {
	svc := NewStayService(&mockStayRepo{})

	if _, err := svc.SubmitStay(context.Background(), 1, "09-01-2026", models.StayOut); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("expected bad request for malformed date, got %v", err)
	}
}

func TestSubmitStayIdempotent(t *testing.T) {
	repo := &mockStayRepo{}
	svc := NewStayService(repo)
	ctx := context.Background()

	if _, err := svc.SubmitStay(ctx, 1, "2026-09-05", models.StayOut); err != nil {
		t.Fatalf("SubmitStay returned error: %v", err)
	}
	if _, err := svc.SubmitStay(ctx, 1, "2026-09-05", models.StayStay); err != nil {
		t.Fatalf("second SubmitStay returned error: %v", err)
	}

	caller := Caller{UserID: 1}
	stay, err := svc.GetStay(ctx, caller, nil, "2026-09-05")
	if err != nil {
		t.Fatalf("GetStay returned error: %v", err)
	}
	if stay.Status != models.StayStay {
		t.Errorf("expected latest submission to win, got %s", stay.Status)
	}
	if len(repo.rows) != 1 {
		t.Errorf("expected a single row after resubmission, got %d", len(repo.rows))
	}
}

func TestGetStayOwnershipGate(t *testing.T) {
	repo := &mockStayRepo{}
	svc := NewStayService(repo)
	ctx := context.Background()

	if _, err := svc.SubmitStay(ctx, 2, "2026-09-05", models.StayOut); err != nil {
		t.Fatalf("SubmitStay returned error: %v", err)
	}

	other := int64(2)
	if _, err := svc.GetStay(ctx, Caller{UserID: 1}, &other, "2026-09-05"); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected forbidden for non-staff reading another user, got %v", err)
	}

	stay, err := svc.GetStay(ctx, Caller{UserID: 1, Staff: true}, &other, "2026-09-05")
	if err != nil {
		t.Fatalf("staff GetStay returned error: %v", err)
	}
	if stay.UserID != 2 {
		t.Errorf("expected row for user 2, got %d", stay.UserID)
	}
}

func TestGetStayMissing(t *testing.T) {
	svc := NewStayService(&mockStayRepo{})

	if _, err := svc.GetStay(context.Background(), Caller{UserID: 1}, nil, "2026-09-05"); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected not found for missing row, got %v", err)
	}
}
