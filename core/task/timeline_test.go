package task

import (
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWindow_Months(t *testing.T) {
	months := DefaultWindow().Months()
	if len(months) != 10 {
		t.Fatalf("len = %d; want 10", len(months))
	}
	if first := months[0]; first != time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("first = %v; want 2024-12-01", first)
	}
	if last := months[9]; last != time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("last = %v; want 2025-09-01", last)
	}
}

func TestWindow_Bars(t *testing.T) {
	w := DefaultWindow()

	tests := []struct {
		name       string
		due        time.Time
		wantOffset float64
		omitted    bool
	}{
		// December 31st: 9 full months remain, the day fraction is exactly 1
		{name: "end of first month", due: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), wantOffset: 90},
		// March 15th: 6 months from the end plus 16/31 of March left
		{name: "mid window", due: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), wantOffset: (6 + 16.0/31.0) / 10 * 100},
		// September 1st: 29/30 of the last month left
		{name: "start of last month", due: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), wantOffset: (29.0 / 30.0) / 10 * 100},
		{name: "before window", due: time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC), omitted: true},
		{name: "after window", due: time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC), omitted: true},
		{name: "zero due date", omitted: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bars := w.Bars([]Task{{ID: "t1", Description: "x", DueDate: tt.due}})
			if tt.omitted {
				if len(bars) != 0 {
					t.Fatalf("bars = %d; want the task omitted", len(bars))
				}
				return
			}
			if len(bars) != 1 {
				t.Fatalf("bars = %d; want 1", len(bars))
			}
			bar := bars[0]
			if !almostEqual(bar.RightOffset, tt.wantOffset) {
				t.Errorf("rightOffset = %v; want %v", bar.RightOffset, tt.wantOffset)
			}
			if !almostEqual(bar.Width, 100-tt.wantOffset) {
				t.Errorf("width = %v; want %v", bar.Width, 100-tt.wantOffset)
			}
			if bar.Departments == nil {
				t.Error("departments is nil; want an empty list")
			}
		})
	}
}

func TestWindow_TodayOffset(t *testing.T) {
	w := DefaultWindow()

	if got := w.TodayOffset(w.Start); !almostEqual(got, 0) {
		t.Errorf("at start = %v; want 0", got)
	}
	if got := w.TodayOffset(w.End); !almostEqual(got, 100) {
		t.Errorf("at end = %v; want 100", got)
	}
	mid := w.Start.Add(w.End.Sub(w.Start) / 2)
	if got := w.TodayOffset(mid); !almostEqual(got, 50) {
		t.Errorf("at midpoint = %v; want 50", got)
	}
}
