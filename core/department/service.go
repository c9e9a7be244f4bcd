package department

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/tujenge/mipango/core"
)

type (
	Repository interface {
		CreateDepartment(ctx context.Context, d Department) (Department, error)
		// QueryAllDepartments returns all departments, alphabetical by short
		// name, with related documents included.
		QueryAllDepartments(ctx context.Context) ([]Department, error)
		GetDepartmentByID(ctx context.Context, id string) (Department, error)
		UpdateDepartment(ctx context.Context, id string, nd NewDepartment) (Department, error)
		// DeleteDepartment cascades overseers, documents and action-item links.
		DeleteDepartment(ctx context.Context, id string) error

		CreateDocument(ctx context.Context, d Document) (Document, error)
		// QueryDocumentsByDepartment returns the department's documents,
		// most recent upload first.
		QueryDocumentsByDepartment(ctx context.Context, departmentID string) ([]Document, error)
		GetDocumentByID(ctx context.Context, departmentID, id string) (Document, error)
	}

	Service struct {
		repo    Repository
		storage core.FileStorage
	}
)

func NewService(repo Repository, storage core.FileStorage) *Service {
	return &Service{repo: repo, storage: storage}
}

func (svc *Service) Create(ctx context.Context, nd NewDepartment) (Department, error) {
	now := time.Now().UTC()
	d := Department{
		Name:      nd.Name,
		FullName:  nd.FullName,
		Overseers: nd.Overseers,
		Documents: []Document{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateDepartment(ctx, d)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Department, error) {
	return svc.repo.QueryAllDepartments(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Department, error) {
	return svc.repo.GetDepartmentByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, nd NewDepartment) (Department, error) {
	return svc.repo.UpdateDepartment(ctx, id, nd)
}

// Delete removes the department and everything hanging off it. Stored blobs
// are removed best-effort after the rows are gone.
func (svc *Service) Delete(ctx context.Context, id string) error {
	docs, err := svc.repo.QueryDocumentsByDepartment(ctx, id)
	if err != nil {
		return errors.Wrap(err, "querying documents before delete")
	}
	if err = svc.repo.DeleteDepartment(ctx, id); err != nil {
		return err
	}
	for _, doc := range docs {
		_ = svc.storage.Remove(ctx, doc.FileRef)
	}
	return nil
}

// UploadDocument verifies the owning department exists and the upload passes
// the size/content-type rules before any storage write occurs.
func (svc *Service) UploadDocument(ctx context.Context, departmentID string, nd NewDocument) (Document, error) {
	if _, err := svc.repo.GetDepartmentByID(ctx, departmentID); err != nil {
		return Document{}, err
	}
	if err := nd.Validate(); err != nil {
		return Document{}, err
	}

	ref, err := svc.storage.Save(ctx, nd.Name, nd.Content)
	if err != nil {
		return Document{}, errors.Wrap(err, "saving document content")
	}

	doc := Document{
		Name:         nd.Name,
		FileRef:      ref,
		ContentType:  nd.ContentType,
		Size:         nd.Size,
		DepartmentID: departmentID,
		UploadedAt:   time.Now().UTC(),
	}
	doc, err = svc.repo.CreateDocument(ctx, doc)
	if err != nil {
		_ = svc.storage.Remove(ctx, ref)
		return Document{}, err
	}
	return doc, nil
}

func (svc *Service) QueryDocuments(ctx context.Context, departmentID string) ([]Document, error) {
	if _, err := svc.repo.GetDepartmentByID(ctx, departmentID); err != nil {
		return nil, err
	}
	return svc.repo.QueryDocumentsByDepartment(ctx, departmentID)
}

func (svc *Service) GetDocumentByID(ctx context.Context, departmentID, id string) (Document, error) {
	return svc.repo.GetDocumentByID(ctx, departmentID, id)
}

// OpenDocument resolves a document either to a public URL (redirect) or to a
// readable stream, depending on the storage backend.
func (svc *Service) OpenDocument(ctx context.Context, doc Document) (string, io.ReadCloser, error) {
	if url, ok := svc.storage.PublicURL(doc.FileRef); ok {
		return url, nil, nil
	}
	rc, err := svc.storage.Open(ctx, doc.FileRef)
	if err != nil {
		return "", nil, errors.Wrap(err, "opening document content")
	}
	return "", rc, nil
}
