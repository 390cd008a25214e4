package utils

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 30, 0, 0, time.UTC)
}

func TestWeekStartingMonday(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want [7]string
	}{
		{
			// 2023-01-02 was a Monday
			name: "monday start of week",
			now:  date(2023, time.January, 2),
			want: [7]string{"2023-01-02", "2023-01-03", "2023-01-04", "2023-01-05", "2023-01-06", "2023-01-07", "2023-01-08"},
		},
		{
			name: "wednesday mid week",
			now:  date(2023, time.January, 4),
			want: [7]string{"2023-01-02", "2023-01-03", "2023-01-04", "2023-01-05", "2023-01-06", "2023-01-07", "2023-01-08"},
		},
		{
			name: "sunday end of week goes back six days",
			now:  date(2023, time.January, 8),
			want: [7]string{"2023-01-02", "2023-01-03", "2023-01-04", "2023-01-05", "2023-01-06", "2023-01-07", "2023-01-08"},
		},
		{
			name: "week spanning month boundary",
			now:  date(2023, time.January, 31),
			want: [7]string{"2023-01-30", "2023-01-31", "2023-02-01", "2023-02-02", "2023-02-03", "2023-02-04", "2023-02-05"},
		},
		{
			name: "week spanning year boundary",
			now:  date(2023, time.January, 1),
			want: [7]string{"2022-12-26", "2022-12-27", "2022-12-28", "2022-12-29", "2022-12-30", "2022-12-31", "2023-01-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStartingMonday(tt.now)
			if len(got) != 7 {
				t.Fatalf("want 7 keys, got %d", len(got))
			}
			for i, key := range got {
				if key != tt.want[i] {
					t.Errorf("day %d = %s, want %s", i, key, tt.want[i])
				}
			}
		})
	}
}

func TestWeekStartAndEnd(t *testing.T) {
	now := date(2023, time.January, 4) // Wednesday
	if got := WeekStartKey(now); got != "2023-01-02" {
		t.Errorf("WeekStartKey() = %s, want 2023-01-02", got)
	}
	if got := WeekEndKey(now); got != "2023-01-08" {
		t.Errorf("WeekEndKey() = %s, want 2023-01-08", got)
	}
}

func TestIsTodayOrYesterday(t *testing.T) {
	now := date(2023, time.January, 4)

	tests := []struct {
		key  string
		want bool
	}{
		{"2023-01-04", true},
		{"2023-01-03", true},
		{"2023-01-02", false},
		{"2023-01-05", false},
		{"2022-12-31", false},
		{"garbage", false},
	}

	for _, tt := range tests {
		if got := IsTodayOrYesterday(tt.key, now); got != tt.want {
			t.Errorf("IsTodayOrYesterday(%s) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestYesterdayKeyAcrossMonth(t *testing.T) {
	now := date(2023, time.March, 1)
	if got := YesterdayKey(now); got != "2023-02-28" {
		t.Errorf("YesterdayKey() = %s, want 2023-02-28", got)
	}
}

func TestNextWeekBoundary(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "mid week",
			now:  date(2023, time.January, 4),
			want: time.Date(2023, time.January, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday night",
			now:  time.Date(2023, time.January, 8, 23, 59, 0, 0, time.UTC),
			want: time.Date(2023, time.January, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday midnight rolls a full week",
			now:  time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC),
			want: time.Date(2023, time.January, 9, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextWeekBoundary(tt.now); !got.Equal(tt.want) {
				t.Errorf("NextWeekBoundary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextMidnight(t *testing.T) {
	now := time.Date(2023, time.January, 31, 18, 15, 0, 0, time.UTC)
	want := time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)
	if got := NextMidnight(now); !got.Equal(want) {
		t.Errorf("NextMidnight() = %v, want %v", got, want)
	}
}
