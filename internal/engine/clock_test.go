package engine

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestSameDay(t *testing.T) {
	loc := time.UTC

	if !SameDay(date(2025, 12, 31, 1), date(2025, 12, 31, 23), loc) {
		t.Error("expected same calendar day regardless of hours")
	}
	if SameDay(date(2025, 12, 31, 23), date(2026, 1, 1, 0), loc) {
		t.Error("expected different days across midnight")
	}
}

func TestSameDay_TimezoneMatters(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	// 23:00 UTC Dec 31 is already Jan 1 in Tokyo
	a := date(2025, 12, 31, 23)
	b := date(2026, 1, 1, 1)

	if SameDay(a, b, time.UTC) {
		t.Error("expected different days in UTC")
	}
	if !SameDay(a, b, tokyo) {
		t.Error("expected same day in Tokyo")
	}
}

func TestIsYesterday(t *testing.T) {
	loc := time.UTC
	now := date(2026, 1, 1, 9)

	if !IsYesterday(date(2025, 12, 31, 22), now, loc) {
		t.Error("expected Dec 31 to be yesterday relative to Jan 1")
	}
	if IsYesterday(date(2025, 12, 30, 22), now, loc) {
		t.Error("expected Dec 30 not to be yesterday relative to Jan 1")
	}
	if IsYesterday(date(2026, 1, 1, 1), now, loc) {
		t.Error("expected today not to count as yesterday")
	}
}

func TestDaysBetween(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", date(2025, 12, 31, 1), date(2025, 12, 31, 23), 0},
		{"adjacent days", date(2025, 12, 31, 23), date(2026, 1, 1, 0), 1},
		{"one week", date(2025, 12, 25, 12), date(2026, 1, 1, 12), 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b, loc); got != tt.want {
				t.Errorf("DaysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysBetween_AcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	// March 9 2025 is the spring-forward day (23 hours long) in New York
	a := time.Date(2025, 3, 8, 12, 0, 0, 0, ny)
	b := time.Date(2025, 3, 9, 12, 0, 0, 0, ny)
	if got := DaysBetween(a, b, ny); got != 1 {
		t.Errorf("DaysBetween across spring-forward = %d, want 1", got)
	}
}

func TestDayString(t *testing.T) {
	if got := DayString(date(2026, 1, 5, 14), time.UTC); got != "2026-01-05" {
		t.Errorf("DayString = %q, want 2026-01-05", got)
	}
}
