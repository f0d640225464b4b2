package schedule

import (
	"testing"
	"time"
)

func TestClassifyMinuteBoundaries(t *testing.T) {
	cases := []struct {
		minute int
		want   Category
	}{
		{0, BeforeHours},
		{959, BeforeHours},
		{960, AfterSchool},
		{1139, AfterSchool},
		{1140, AfterDinner},
		{1199, AfterDinner},
		{1200, ReturnBy8PM},
		{1229, ReturnBy8PM},
		{1230, Late},
		{1439, Late},
	}

	for _, tc := range cases {
		if got := ClassifyMinute(tc.minute); got != tc.want {
			t.Errorf("minute %d: expected %s, got %s", tc.minute, tc.want, got)
		}
	}
}

func TestClassifyCoversEveryMinute(t *testing.T) {
	for minute := 0; minute < 24*60; minute++ {
		if got := ClassifyMinute(minute); got == "" {
			t.Fatalf("minute %d has no category", minute)
		}
	}
}

func TestClassifyUsesWallClock(t *testing.T) {
	at := time.Date(2026, 9, 1, 20, 15, 0, 0, time.UTC)
	if got := Classify(at); got != ReturnBy8PM {
		t.Errorf("20:15 expected %s, got %s", ReturnBy8PM, got)
	}
}
