package task

import (
	"errors"
	"time"

	"github.com/tujenge/mipango/core"
)

var ErrNotFound = errors.New("task not found")

// Statuses
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusBlocked    = "blocked"
)

// Priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var (
	AllStatuses   = []string{StatusNotStarted, StatusInProgress, StatusCompleted, StatusBlocked}
	AllPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh}
)

type Task struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	DueDate     time.Time `json:"dueDate"`
	Notes       string    `json:"notes"`
	Departments []string  `json:"departments"`
	CreatedAt   time.Time `json:"createdAt"` // UTC
	UpdatedAt   time.Time `json:"updatedAt"` // UTC
}

// NewTask contains information needed to create a new Task.
type NewTask struct {
	Description string    `json:"description" validate:"required"`
	Departments []string  `json:"departments"`
	Status      string    `json:"status" validate:"omitempty,taskstatus"`
	Priority    string    `json:"priority" validate:"omitempty,taskpriority"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
	Notes       string    `json:"notes"`
}

func (nt *NewTask) Validate() error {
	nt.Description = core.CleanString(nt.Description)
	return core.Validate.Struct(nt)
}

// UpdateTask defines what information may be provided to modify an existing
// Task. Nil/empty fields are left unchanged; a present-but-empty departments
// array replaces the list with an empty one.
type UpdateTask struct {
	Description string     `json:"description"`
	Departments []string   `json:"departments"`
	Status      string     `json:"status" validate:"omitempty,taskstatus"`
	Priority    string     `json:"priority" validate:"omitempty,taskpriority"`
	DueDate     *time.Time `json:"dueDate"`
	Notes       *string    `json:"notes"`
}

func (ut *UpdateTask) Validate() error {
	ut.Description = core.CleanString(ut.Description)
	return core.Validate.Struct(ut)
}
