package task

import (
	"sort"
	"time"
)

// Summary holds per-status task counts for the dashboard.
type Summary struct {
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	NotStarted int `json:"notStarted"`
	Blocked    int `json:"blocked"`
}

func Summarize(tasks []Task) Summary {
	var s Summary
	for _, t := range tasks {
		switch t.Status {
		case StatusCompleted:
			s.Completed++
		case StatusInProgress:
			s.InProgress++
		case StatusBlocked:
			s.Blocked++
		default:
			s.NotStarted++
		}
	}
	return s
}

// Filters narrows a task set; empty fields match everything.
// All set fields must match (conjunctive).
type Filters struct {
	Department string
	Status     string
	Month      string // "2006-01" key of the due date
}

func Filter(tasks []Task, f Filters) []Task {
	matched := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Department != "" && !contains(t.Departments, f.Department) {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Month != "" && MonthKey(t.DueDate) != f.Month {
			continue
		}
		matched = append(matched, t)
	}
	return matched
}

// MonthKey formats t as a year-month bucket key, ignoring the time of day.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// Months returns the sorted, de-duplicated month keys of the tasks' due
// dates; used to populate the month filter selector.
func Months(tasks []Task) []string {
	seen := make(map[string]bool, len(tasks))
	months := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if t.DueDate.IsZero() {
			continue
		}
		key := MonthKey(t.DueDate)
		if !seen[key] {
			seen[key] = true
			months = append(months, key)
		}
	}
	sort.Strings(months)
	return months
}
