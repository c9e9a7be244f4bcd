package task

import "time"

// Window is the fixed month range a timeline renders.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DefaultWindow covers the current planning season.
func DefaultWindow() Window {
	return Window{
		Start: time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Months returns the first day of every month in the window, inclusive.
func (w Window) Months() []time.Time {
	months := make([]time.Time, 0, 12)
	m := time.Date(w.Start.Year(), w.Start.Month(), 1, 0, 0, 0, 0, w.Start.Location())
	for !m.After(w.End) {
		months = append(months, m)
		m = m.AddDate(0, 1, 0)
	}
	return months
}

// Bar is a horizontal timeline bar spanning from the window start to the
// task's due date. Offsets are percentages of the window width; RightOffset
// is measured from the right edge.
type Bar struct {
	TaskID      string   `json:"taskId"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Departments []string `json:"departments"`
	RightOffset float64  `json:"rightOffset"`
	Width       float64  `json:"width"`
}

// Bars maps tasks to timeline bars. Tasks whose due date falls outside the
// window are omitted, not errors.
func (w Window) Bars(tasks []Task) []Bar {
	months := w.Months()
	bars := make([]Bar, 0, len(tasks))
	for _, t := range tasks {
		offset, ok := w.rightOffset(t.DueDate, months)
		if !ok {
			continue
		}
		departments := t.Departments
		if departments == nil {
			departments = []string{}
		}
		bars = append(bars, Bar{
			TaskID:      t.ID,
			Description: t.Description,
			Status:      t.Status,
			Departments: departments,
			RightOffset: offset,
			Width:       100 - offset,
		})
	}
	return bars
}

// rightOffset linearly interpolates the due date's day within its month and
// converts it into a percentage offset from the window's right edge.
func (w Window) rightOffset(due time.Time, months []time.Time) (float64, bool) {
	if due.IsZero() || due.Before(w.Start) || due.After(w.End) {
		return 0, false
	}
	monthIdx := -1
	for i, m := range months {
		if m.Year() == due.Year() && m.Month() == due.Month() {
			monthIdx = i
			break
		}
	}
	if monthIdx < 0 {
		return 0, false
	}
	daysInMonth := time.Date(due.Year(), due.Month()+1, 0, 0, 0, 0, 0, due.Location()).Day()
	through := float64(due.Day()) / float64(daysInMonth)
	monthsFromEnd := float64(len(months) - monthIdx - 1)
	return (monthsFromEnd + (1 - through)) / float64(len(months)) * 100, true
}

// TodayOffset is the left-edge percentage position of now within the window,
// for the "today" marker.
func (w Window) TodayOffset(now time.Time) float64 {
	total := w.End.Sub(w.Start)
	if total <= 0 {
		return 0
	}
	return float64(now.Sub(w.Start)) / float64(total) * 100
}
