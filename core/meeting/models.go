package meeting

import (
	"errors"
	"time"

	"github.com/tujenge/mipango/core"
)

var ErrNotFound = errors.New("meeting not found")

// DepartmentRef is the department view embedded in action items.
type DepartmentRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"fullName"`
}

// ActionItem is a follow-up task tied to a meeting, with its own due date
// and department assignments.
type ActionItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	DueDate     time.Time       `json:"dueDate"`
	Departments []DepartmentRef `json:"departments"`
}

type Meeting struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Date        time.Time    `json:"date"`
	Notes       string       `json:"notes"`
	ActionItems []ActionItem `json:"actionItems"`
	CreatedAt   time.Time    `json:"createdAt"` // UTC
	UpdatedAt   time.Time    `json:"updatedAt"` // UTC
}

// NewActionItem carries a submitted action item. On updates, an item keeping
// its ID is updated in place; items without one are inserted.
type NewActionItem struct {
	ID            string    `json:"id"`
	Description   string    `json:"description" validate:"required"`
	DueDate       time.Time `json:"dueDate" validate:"required"`
	DepartmentIDs []string  `json:"departmentIds"`
}

// NewMeeting contains information needed to create or replace a Meeting and
// its action items.
type NewMeeting struct {
	Title       string          `json:"title" validate:"required"`
	Date        time.Time       `json:"date" validate:"required"`
	Notes       string          `json:"notes"`
	ActionItems []NewActionItem `json:"actionItems" validate:"omitempty,dive"`
}

func (nm *NewMeeting) Validate() error {
	nm.Title = core.CleanString(nm.Title)
	for i := range nm.ActionItems {
		nm.ActionItems[i].Description = core.CleanString(nm.ActionItems[i].Description)
	}
	return core.Validate.Struct(nm)
}
