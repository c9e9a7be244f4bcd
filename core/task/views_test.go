package task

import (
	"reflect"
	"testing"
	"time"
)

func tsk(status string, due time.Time, departments ...string) Task {
	return Task{Status: status, DueDate: due, Departments: departments}
}

func TestSummarize(t *testing.T) {
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	tasks := []Task{
		tsk(StatusCompleted, due),
		tsk(StatusCompleted, due),
		tsk(StatusInProgress, due),
		tsk(StatusBlocked, due),
		tsk(StatusNotStarted, due),
		tsk("", due), // unset counts as not started
	}

	got := Summarize(tasks)
	want := Summary{Completed: 2, InProgress: 1, NotStarted: 2, Blocked: 1}
	if got != want {
		t.Errorf("Summarize() = %+v; want %+v", got, want)
	}
}

func TestFilter(t *testing.T) {
	mar := time.Date(2025, 3, 15, 23, 30, 0, 0, time.UTC)
	apr := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	tasks := []Task{
		tsk(StatusCompleted, mar, "grounds"),
		tsk(StatusInProgress, mar, "grounds", "kitchen"),
		tsk(StatusInProgress, apr, "kitchen"),
	}

	tests := []struct {
		name    string
		filters Filters
		want    int
	}{
		{name: "no filters", filters: Filters{}, want: 3},
		{name: "department", filters: Filters{Department: "grounds"}, want: 2},
		{name: "status", filters: Filters{Status: StatusInProgress}, want: 2},
		{name: "month matches any time of day", filters: Filters{Month: "2025-03"}, want: 2},
		{name: "conjunction", filters: Filters{Department: "kitchen", Month: "2025-04"}, want: 1},
		{name: "conjunction with no survivors", filters: Filters{Department: "grounds", Status: StatusInProgress, Month: "2025-04"}, want: 0},
		{name: "unknown department", filters: Filters{Department: "nonesuch"}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filter(tasks, tt.filters); len(got) != tt.want {
				t.Errorf("Filter() = %d tasks; want %d", len(got), tt.want)
			}
		})
	}
}

func TestMonths(t *testing.T) {
	tasks := []Task{
		tsk("", time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)),
		tsk("", time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)),
		tsk("", time.Date(2025, 4, 28, 0, 0, 0, 0, time.UTC)),
		tsk("", time.Time{}), // zero due dates are skipped
	}

	got := Months(tasks)
	want := []string{"2025-01", "2025-04"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Months() = %v; want %v", got, want)
	}
}

func TestMonths_empty(t *testing.T) {
	if got := Months(nil); got == nil || len(got) != 0 {
		t.Errorf("Months(nil) = %v; want an empty list", got)
	}
}
