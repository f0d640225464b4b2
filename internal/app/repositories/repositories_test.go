package repositories

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

func TestDateScanBothWireFormats(t *testing.T) {
	m := pgtype.NewMap()
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	for _, format := range []int16{pgx.BinaryFormatCode, pgx.TextFormatCode} {
		buf, err := m.Encode(pgtype.DateOID, format, pgtype.Date{Time: day, Valid: true}, nil)
		if err != nil {
			t.Fatalf("failed to encode date in format %d: %v", format, err)
		}

		var scanned pgtype.Date
		if err := m.Scan(pgtype.DateOID, format, buf, &scanned); err != nil {
			t.Fatalf("failed to scan date in format %d: %v", format, err)
		}
		if got := formatDate(scanned); got != "2026-09-01" {
			t.Errorf("format %d: expected 2026-09-01, got %q", format, got)
		}
	}
}

func TestDateBinaryRejectsStringDestination(t *testing.T) {
	m := pgtype.NewMap()
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	buf, err := m.Encode(pgtype.DateOID, pgx.BinaryFormatCode, pgtype.Date{Time: day, Valid: true}, nil)
	if err != nil {
		t.Fatalf("failed to encode date: %v", err)
	}

	var dst string
	if err := m.Scan(pgtype.DateOID, pgx.BinaryFormatCode, buf, &dst); err == nil {
		t.Fatal("expected binary date scan into *string to fail")
	}
}

func TestFormatDateNull(t *testing.T) {
	if got := formatDate(pgtype.Date{}); got != "" {
		t.Errorf("expected empty string for null date, got %q", got)
	}
}
