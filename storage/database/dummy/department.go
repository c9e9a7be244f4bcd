package dummydb

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tujenge/mipango/core/department"
)

type departmentRepository struct {
	db    *departmentTable
	docDB *documentTable
}

var _ department.Repository = (*departmentRepository)(nil) // interface compliance check

func NewDepartmentRepository(db *DB) department.Repository {
	return &departmentRepository{db: db.department, docDB: db.document}
}

// queryDocuments returns the department's documents, most recent upload
// first. Caller holds at least a read lock on docDB.
func (repo *departmentRepository) queryDocuments(departmentID string) []department.Document {
	docs := make([]department.Document, 0)
	for _, d := range repo.docDB.table {
		if d.DepartmentID == departmentID {
			docs = append(docs, *d)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].UploadedAt.After(docs[j].UploadedAt) })
	return docs
}

func (repo *departmentRepository) get(id string) (department.Department, error) {
	d, ok := repo.db.table[id]
	if !ok {
		return department.Department{}, department.ErrNotFound
	}
	dept := *d
	dept.Documents = repo.queryDocuments(id)
	return dept, nil
}

func (repo *departmentRepository) CreateDepartment(ctx context.Context, d department.Department) (department.Department, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	d.ID = uuid.New().String()
	if d.Overseers == nil {
		d.Overseers = []department.Overseer{}
	}
	d.Documents = []department.Document{}
	repo.db.table[d.ID] = &d
	return d, nil
}

func (repo *departmentRepository) QueryAllDepartments(ctx context.Context) ([]department.Department, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	repo.docDB.RLock()
	defer repo.docDB.RUnlock()

	depts := make([]department.Department, 0, len(repo.db.table))
	for id := range repo.db.table {
		dept, _ := repo.get(id)
		depts = append(depts, dept)
	}
	sort.Slice(depts, func(i, j int) bool {
		return strings.ToLower(depts[i].Name) < strings.ToLower(depts[j].Name)
	})
	return depts, nil
}

func (repo *departmentRepository) GetDepartmentByID(ctx context.Context, id string) (department.Department, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	repo.docDB.RLock()
	defer repo.docDB.RUnlock()
	return repo.get(id)
}

func (repo *departmentRepository) UpdateDepartment(ctx context.Context, id string, nd department.NewDepartment) (department.Department, error) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.docDB.RLock()
	defer repo.docDB.RUnlock()

	orig, ok := repo.db.table[id]
	if !ok {
		return department.Department{}, department.ErrNotFound
	}
	orig.Name = nd.Name
	orig.FullName = nd.FullName
	orig.Overseers = nd.Overseers
	orig.UpdatedAt = time.Now().UTC()

	repo.db.table[id] = orig
	return repo.get(id)
}

func (repo *departmentRepository) DeleteDepartment(ctx context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.docDB.Lock()
	defer repo.docDB.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return department.ErrNotFound
	}
	delete(repo.db.table, id)
	for docID, doc := range repo.docDB.table {
		if doc.DepartmentID == id {
			delete(repo.docDB.table, docID)
		}
	}
	return nil
}

func (repo *departmentRepository) CreateDocument(ctx context.Context, d department.Document) (department.Document, error) {
	repo.docDB.Lock()
	defer repo.docDB.Unlock()

	d.ID = uuid.New().String()
	repo.docDB.table[d.ID] = &d
	return d, nil
}

func (repo *departmentRepository) QueryDocumentsByDepartment(ctx context.Context, departmentID string) ([]department.Document, error) {
	repo.docDB.RLock()
	defer repo.docDB.RUnlock()
	return repo.queryDocuments(departmentID), nil
}

func (repo *departmentRepository) GetDocumentByID(ctx context.Context, departmentID, id string) (department.Document, error) {
	repo.docDB.RLock()
	defer repo.docDB.RUnlock()

	if d, ok := repo.docDB.table[id]; ok && d.DepartmentID == departmentID {
		return *d, nil
	}
	return department.Document{}, department.ErrDocumentNotFound
}
