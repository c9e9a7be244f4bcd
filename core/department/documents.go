package department

import (
	"fmt"
	"io"

	"github.com/tujenge/mipango/core"
)

// Upload limits, mirrored by the upload form.
const MaxDocumentSize = 5 << 20 // 5MB

var allowedContentTypes = map[string]string{
	"application/pdf":    "PDF",
	"application/msword": "Word",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "Word",
	"text/plain": "plain text",
}

// NewDocument contains information needed to upload a new Document.
type NewDocument struct {
	Name        string `validate:"required"`
	ContentType string
	Size        int64
	Content     io.Reader
}

func (nd *NewDocument) Validate() error {
	nd.Name = core.CleanString(nd.Name)
	if err := core.Validate.Struct(nd); err != nil {
		return err
	}
	if nd.Size <= 0 || nd.Size > MaxDocumentSize {
		return core.NewValidationError(nil, core.FieldError{Field: "file", Error: "max file size is 5MB"})
	}
	if _, ok := allowedContentTypes[nd.ContentType]; !ok {
		return core.NewValidationError(nil, core.FieldError{
			Field: "file",
			Error: fmt.Sprintf("content type %q is not accepted; only PDF, Word documents and text files are", nd.ContentType),
		})
	}
	return nil
}
