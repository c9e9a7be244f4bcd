package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/tujenge/mipango/core/department"
)

type departmentRepository struct {
	db *sqlx.DB
}

var _ department.Repository = (*departmentRepository)(nil) // interface compliance check

func NewDepartmentRepository(db *sqlx.DB) *departmentRepository {
	return &departmentRepository{db: db}
}

type departmentRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	FullName  string    `db:"full_name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type overseerRow struct {
	DepartmentID string `db:"department_id"`
	Position     int    `db:"position"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	Phone        string `db:"phone"`
}

type documentRow struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	FileRef      string    `db:"file_ref"`
	ContentType  string    `db:"content_type"`
	Size         int64     `db:"size"`
	DepartmentID string    `db:"department_id"`
	UploadedAt   time.Time `db:"uploaded_at"`
}

func (r documentRow) unpack() department.Document {
	return department.Document{
		ID:           r.ID,
		Name:         r.Name,
		FileRef:      r.FileRef,
		ContentType:  r.ContentType,
		Size:         r.Size,
		DepartmentID: r.DepartmentID,
		UploadedAt:   r.UploadedAt,
	}
}

func trapDepartmentNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return department.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo departmentRepository) CreateDepartment(ctx context.Context, d department.Department) (department.Department, error) {
	d.ID = uuid.New().String()

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return department.Department{}, errors.Wrap(err, "beginning department insert")
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO department (id, name, full_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		d.ID, d.Name, d.FullName, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return department.Department{}, errors.Wrap(err, "inserting department")
	}
	if err = insertOverseers(ctx, tx, d.ID, d.Overseers); err != nil {
		return department.Department{}, err
	}
	if err = tx.Commit(); err != nil {
		return department.Department{}, errors.Wrap(err, "committing department insert")
	}

	if d.Overseers == nil {
		d.Overseers = []department.Overseer{}
	}
	d.Documents = []department.Document{}
	return d, nil
}

func insertOverseers(ctx context.Context, tx *sqlx.Tx, departmentID string, overseers []department.Overseer) error {
	for i, o := range overseers {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO department_overseer (department_id, position, name, email, phone)
			VALUES ($1, $2, $3, $4, $5)`,
			departmentID, i, o.Name, o.Email, o.Phone,
		)
		if err != nil {
			return errors.Wrap(err, "inserting overseer")
		}
	}
	return nil
}

func (repo departmentRepository) QueryAllDepartments(ctx context.Context) ([]department.Department, error) {
	var rows []departmentRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT id, name, full_name, created_at, updated_at
		FROM department ORDER BY name ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying departments")
	}

	departments := make([]department.Department, 0, len(rows))
	ids := make([]string, 0, len(rows))
	byID := make(map[string]int, len(rows))
	for i, r := range rows {
		departments = append(departments, department.Department{
			ID:        r.ID,
			Name:      r.Name,
			FullName:  r.FullName,
			Overseers: []department.Overseer{},
			Documents: []department.Document{},
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
		ids = append(ids, r.ID)
		byID[r.ID] = i
	}
	if len(ids) == 0 {
		return departments, nil
	}

	var oRows []overseerRow
	err = repo.db.SelectContext(ctx, &oRows, `
		SELECT department_id, position, name, email, phone
		FROM department_overseer WHERE department_id = ANY($1) ORDER BY department_id, position`,
		pq.Array(ids))
	if err != nil {
		return nil, errors.Wrap(err, "querying overseers")
	}
	for _, o := range oRows {
		i := byID[o.DepartmentID]
		departments[i].Overseers = append(departments[i].Overseers, department.Overseer{
			Name: o.Name, Email: o.Email, Phone: o.Phone,
		})
	}

	var dRows []documentRow
	err = repo.db.SelectContext(ctx, &dRows, `
		SELECT id, name, file_ref, content_type, size, department_id, uploaded_at
		FROM document WHERE department_id = ANY($1) ORDER BY uploaded_at DESC`,
		pq.Array(ids))
	if err != nil {
		return nil, errors.Wrap(err, "querying documents")
	}
	for _, d := range dRows {
		i := byID[d.DepartmentID]
		departments[i].Documents = append(departments[i].Documents, d.unpack())
	}
	return departments, nil
}

func (repo departmentRepository) GetDepartmentByID(ctx context.Context, id string) (department.Department, error) {
	var row departmentRow
	err := repo.db.GetContext(ctx, &row, `
		SELECT id, name, full_name, created_at, updated_at
		FROM department WHERE id = $1`, id)
	if err != nil {
		return department.Department{}, trapDepartmentNoRowsErr(err, "getting department")
	}

	d := department.Department{
		ID:        row.ID,
		Name:      row.Name,
		FullName:  row.FullName,
		Overseers: []department.Overseer{},
		Documents: []department.Document{},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	var oRows []overseerRow
	err = repo.db.SelectContext(ctx, &oRows, `
		SELECT department_id, position, name, email, phone
		FROM department_overseer WHERE department_id = $1 ORDER BY position`, id)
	if err != nil {
		return department.Department{}, errors.Wrap(err, "querying overseers")
	}
	for _, o := range oRows {
		d.Overseers = append(d.Overseers, department.Overseer{Name: o.Name, Email: o.Email, Phone: o.Phone})
	}

	docs, err := repo.QueryDocumentsByDepartment(ctx, id)
	if err != nil {
		return department.Department{}, err
	}
	d.Documents = docs
	return d, nil
}

func (repo departmentRepository) UpdateDepartment(ctx context.Context, id string, nd department.NewDepartment) (department.Department, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return department.Department{}, errors.Wrap(err, "beginning department update")
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE department SET name = $2, full_name = $3, updated_at = $4 WHERE id = $1`,
		id, nd.Name, nd.FullName, time.Now().UTC(),
	)
	if err != nil {
		return department.Department{}, errors.Wrap(err, "updating department")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return department.Department{}, department.ErrNotFound
	}

	// overseers are replaced wholesale; they carry no identity
	if _, err = tx.ExecContext(ctx, `DELETE FROM department_overseer WHERE department_id = $1`, id); err != nil {
		return department.Department{}, errors.Wrap(err, "clearing overseers")
	}
	if err = insertOverseers(ctx, tx, id, nd.Overseers); err != nil {
		return department.Department{}, err
	}
	if err = tx.Commit(); err != nil {
		return department.Department{}, errors.Wrap(err, "committing department update")
	}

	return repo.GetDepartmentByID(ctx, id)
}

func (repo departmentRepository) DeleteDepartment(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM department WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting department")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return department.ErrNotFound
	}
	return nil
}

func (repo departmentRepository) CreateDocument(ctx context.Context, d department.Document) (department.Document, error) {
	d.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO document (id, name, file_ref, content_type, size, department_id, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.Name, d.FileRef, d.ContentType, d.Size, d.DepartmentID, d.UploadedAt,
	)
	if err != nil {
		return department.Document{}, errors.Wrap(err, "inserting document")
	}
	return d, nil
}

func (repo departmentRepository) QueryDocumentsByDepartment(ctx context.Context, departmentID string) ([]department.Document, error) {
	var rows []documentRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT id, name, file_ref, content_type, size, department_id, uploaded_at
		FROM document WHERE department_id = $1 ORDER BY uploaded_at DESC`, departmentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying documents")
	}
	docs := make([]department.Document, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, r.unpack())
	}
	return docs, nil
}

func (repo departmentRepository) GetDocumentByID(ctx context.Context, departmentID, id string) (department.Document, error) {
	var row documentRow
	err := repo.db.GetContext(ctx, &row, `
		SELECT id, name, file_ref, content_type, size, department_id, uploaded_at
		FROM document WHERE id = $1 AND department_id = $2`, id, departmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return department.Document{}, department.ErrDocumentNotFound
		}
		return department.Document{}, errors.Wrap(err, "getting document")
	}
	return row.unpack(), nil
}
