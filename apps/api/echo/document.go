package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tujenge/mipango/core"
	"github.com/tujenge/mipango/core/department"
)

func (api *departmentApi) queryDocuments(ctx echo.Context) error {
	docs, err := api.svc.QueryDocuments(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, docs)
}

// uploadDocument accepts a multipart form with a "file" part and an optional
// "name" field; size and content type are checked before anything is stored.
func (api *departmentApi) uploadDocument(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "file", Error: "a file is required"})
	}

	name := core.CleanString(ctx.FormValue("name"))
	if name == "" {
		name = fileHeader.Filename
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	defer file.Close()

	data := department.NewDocument{
		Name:        name,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Size:        fileHeader.Size,
		Content:     file,
	}
	doc, err := api.svc.UploadDocument(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, doc)
}

// fetchDocument redirects to the blob's public URL when the storage backend
// exposes one, and streams the content itself otherwise.
func (api *departmentApi) fetchDocument(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	doc, err := api.svc.GetDocumentByID(reqCtx, ctx.Param("id"), ctx.Param("docID"))
	if err != nil {
		return err
	}

	url, content, err := api.svc.OpenDocument(reqCtx, doc)
	if err != nil {
		return errors.Wrap(err, "opening document")
	}
	if url != "" {
		return ctx.Redirect(http.StatusFound, url)
	}
	defer content.Close()

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Name))
	return ctx.Stream(http.StatusOK, doc.ContentType, content)
}
