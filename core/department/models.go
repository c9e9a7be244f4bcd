package department

import (
	"errors"
	"time"

	"github.com/tujenge/mipango/core"
)

var (
	ErrNotFound         = errors.New("department not found")
	ErrDocumentNotFound = errors.New("document not found")
)

// Overseer is a named contact responsible for a department. It has no
// identity of its own; it lives only inside a Department's overseer list.
type Overseer struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

type Document struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	FileRef      string    `json:"fileName"`
	ContentType  string    `json:"contentType"`
	Size         int64     `json:"size"`
	DepartmentID string    `json:"departmentId"`
	UploadedAt   time.Time `json:"uploadedAt"` // UTC
}

type Department struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	FullName  string     `json:"fullName"`
	Overseers []Overseer `json:"overseers"`
	Documents []Document `json:"documents"`
	CreatedAt time.Time  `json:"createdAt"` // UTC
	UpdatedAt time.Time  `json:"updatedAt"` // UTC
}

// NewDepartment contains information needed to create or replace a
// Department. Overseers must be present as an array (it may be empty).
type NewDepartment struct {
	Name      string     `json:"name" validate:"required"`
	FullName  string     `json:"fullName" validate:"required"`
	Overseers []Overseer `json:"overseers" validate:"omitempty,dive"`
}

func (nd *NewDepartment) Validate() error {
	nd.Name = core.CleanString(nd.Name)
	nd.FullName = core.CleanString(nd.FullName)
	if nd.Overseers == nil {
		return core.NewValidationError(nil, core.FieldError{Field: "overseers", Error: "overseers must be an array"})
	}
	return core.Validate.Struct(nd)
}
