package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/pkg/apperrors"
	"github.com/minsu/dormisphere/internal/pkg/qr"
	"github.com/minsu/dormisphere/internal/pkg/schedule"
)

type mockCheckInRepo struct {
	inserted []*models.RoomCheckIn
}

func (m *mockCheckInRepo) InsertCheckIn(ctx context.Context, checkIn *models.RoomCheckIn) (int64, error) {
	stored := *checkIn
	m.inserted = append(m.inserted, &stored)
	return int64(len(m.inserted)), nil
}

func (m *mockCheckInRepo) ListCheckIns(ctx context.Context, date string, userID *int64, limit int) ([]*models.RoomCheckIn, error) {
	var out []*models.RoomCheckIn
	for _, checkIn := range m.inserted {
		if checkIn.CheckInDate != date {
			continue
		}
		if userID != nil && checkIn.UserID != *userID {
			continue
		}
		out = append(out, checkIn)
	}
	return out, nil
}

func newTestCheckInService(t *testing.T, repo *mockCheckInRepo, now time.Time) (*checkInServiceImpl, *qr.Codec) {
	t.Helper()
	codec, err := qr.NewCodec("test-passphrase")
	if err != nil {
		t.Fatalf("NewCodec returned error: %v", err)
	}
	return &checkInServiceImpl{
		checkInRepo: repo,
		codec:       codec,
		now:         func() time.Time { return now },
	}, codec
}

func TestScanRecordsCheckIn(t *testing.T) {
	now := time.Date(2026, 9, 1, 21, 10, 0, 0, time.UTC)
	repo := &mockCheckInRepo{}
	svc, codec := newTestCheckInService(t, repo, now)

	code, err := codec.Generate(now)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	checkIn, err := svc.Scan(context.Background(), 7, code)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	if checkIn.UserID != 7 {
		t.Errorf("expected user 7, got %d", checkIn.UserID)
	}
	if checkIn.CheckInDate != "2026-09-01" {
		t.Errorf("expected date 2026-09-01, got %q", checkIn.CheckInDate)
	}
	if checkIn.Category != string(schedule.Late) {
		t.Errorf("expected 21:10 to classify as %s, got %s", schedule.Late, checkIn.Category)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected one inserted row, got %d", len(repo.inserted))
	}
}

func TestScanYesterdaysCode(t *testing.T) {
	now := time.Date(2026, 9, 1, 19, 30, 0, 0, time.UTC)
	repo := &mockCheckInRepo{}
	svc, codec := newTestCheckInService(t, repo, now)

	code, err := codec.Generate(now.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if _, err := svc.Scan(context.Background(), 7, code); !errors.Is(err, apperrors.ErrCheckInCodeExpired) {
		t.Errorf("expected ErrCheckInCodeExpired, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Errorf("expected no row for rejected scan, got %d", len(repo.inserted))
	}
}

func TestScanMalformedCode(t *testing.T) {
	now := time.Now()
	repo := &mockCheckInRepo{}
	svc, _ := newTestCheckInService(t, repo, now)

	if _, err := svc.Scan(context.Background(), 7, "not-a-code"); !errors.Is(err, apperrors.ErrCheckInCodeMalformed) {
		t.Errorf("expected ErrCheckInCodeMalformed, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Errorf("expected no row for malformed scan, got %d", len(repo.inserted))
	}
}

func TestListCheckInsOwnershipGate(t *testing.T) {
	now := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	repo := &mockCheckInRepo{}
	svc, codec := newTestCheckInService(t, repo, now)
	ctx := context.Background()

	code, err := codec.Generate(now)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if _, err := svc.Scan(ctx, 1, code); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	other := int64(1)
	if _, err := svc.ListCheckIns(ctx, Caller{UserID: 2}, &other, "2026-09-01", 20); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected forbidden for non-staff reading another user, got %v", err)
	}

	rows, err := svc.ListCheckIns(ctx, Caller{UserID: 9, Staff: true}, &other, "2026-09-01", 20)
	if err != nil {
		t.Fatalf("staff ListCheckIns returned error: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected one row, got %d", len(rows))
	}
}
