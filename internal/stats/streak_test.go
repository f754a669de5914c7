package stats

import (
	"testing"
	"time"
)

func TestNextStreak(t *testing.T) {
	now := time.Date(2026, 8, 29, 20, 30, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	today := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	threeDaysAgo := now.AddDate(0, 0, -3)

	tests := []struct {
		name       string
		lastActive *time.Time
		current    int
		want       int
	}{
		{name: "从未活跃", lastActive: nil, current: 0, want: 1},
		{name: "今天已活跃", lastActive: &today, current: 4, want: 4},
		{name: "昨天活跃", lastActive: &yesterday, current: 3, want: 4},
		{name: "断档三天", lastActive: &threeDaysAgo, current: 9, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextStreak(tt.lastActive, tt.current, now)
			if got != tt.want {
				t.Errorf("nextStreak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNextStreakAcrossMonthBoundary(t *testing.T) {
	// 8月31日活跃，9月1日完成，应视为连续
	last := time.Date(2026, 8, 31, 23, 50, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 0, 10, 0, 0, time.UTC)

	if got := nextStreak(&last, 5, now); got != 6 {
		t.Errorf("跨月连续天数应为6, got %d", got)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 8, 29, 0, 0, 1, 0, time.UTC)
	b := time.Date(2026, 8, 29, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	if !sameDay(a, b) {
		t.Error("同一天的不同时刻应判定为同日")
	}
	if sameDay(b, c) {
		t.Error("跨越零点应判定为不同日")
	}
}
