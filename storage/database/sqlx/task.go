package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/tujenge/mipango/core/task"
)

type taskRepository struct {
	db *sqlx.DB
}

var _ task.Repository = (*taskRepository)(nil) // interface compliance check

func NewTaskRepository(db *sqlx.DB) *taskRepository {
	return &taskRepository{db: db}
}

type taskRow struct {
	ID          string         `db:"id"`
	Description string         `db:"description"`
	Status      string         `db:"status"`
	Priority    string         `db:"priority"`
	DueDate     time.Time      `db:"due_date"`
	Notes       string         `db:"notes"`
	Departments pq.StringArray `db:"departments"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r taskRow) unpack() task.Task {
	departments := make([]string, 0, len(r.Departments))
	departments = append(departments, r.Departments...)
	return task.Task{
		ID:          r.ID,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
		Notes:       r.Notes,
		Departments: departments,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// trapNoRowsErr maps psql "no rows" err to task.ErrNotFound
func trapTaskNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return task.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo taskRepository) CreateTask(ctx context.Context, t task.Task) (task.Task, error) {
	t.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO task (id, description, status, priority, due_date, notes, departments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.Description, t.Status, t.Priority, t.DueDate, t.Notes,
		pq.Array(t.Departments), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "inserting task")
	}
	return t, nil
}

func (repo taskRepository) QueryAllTasks(ctx context.Context) ([]task.Task, error) {
	var rows []taskRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT id, description, status, priority, due_date, notes, departments, created_at, updated_at
		FROM task ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying tasks")
	}
	tasks := make([]task.Task, 0, len(rows))
	for _, r := range rows {
		tasks = append(tasks, r.unpack())
	}
	return tasks, nil
}

func (repo taskRepository) GetTaskByID(ctx context.Context, id string) (task.Task, error) {
	var row taskRow
	err := repo.db.GetContext(ctx, &row, `
		SELECT id, description, status, priority, due_date, notes, departments, created_at, updated_at
		FROM task WHERE id = $1`, id)
	if err != nil {
		return task.Task{}, trapTaskNoRowsErr(err, "getting task")
	}
	return row.unpack(), nil
}

func (repo taskRepository) UpdateTask(ctx context.Context, id string, ut task.UpdateTask) (task.Task, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "beginning task update")
	}
	defer func() { _ = tx.Rollback() }()

	var row taskRow
	err = tx.GetContext(ctx, &row, `
		SELECT id, description, status, priority, due_date, notes, departments, created_at, updated_at
		FROM task WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return task.Task{}, trapTaskNoRowsErr(err, "getting task for update")
	}

	if ut.Description != "" {
		row.Description = ut.Description
	}
	if ut.Departments != nil {
		row.Departments = pq.StringArray(ut.Departments)
	}
	if ut.Status != "" {
		row.Status = ut.Status
	}
	if ut.Priority != "" {
		row.Priority = ut.Priority
	}
	if ut.DueDate != nil {
		row.DueDate = ut.DueDate.UTC()
	}
	if ut.Notes != nil {
		row.Notes = *ut.Notes
	}
	row.UpdatedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx, `
		UPDATE task
		SET description = $2, status = $3, priority = $4, due_date = $5, notes = $6, departments = $7, updated_at = $8
		WHERE id = $1`,
		row.ID, row.Description, row.Status, row.Priority, row.DueDate, row.Notes,
		row.Departments, row.UpdatedAt,
	)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "updating task")
	}
	if err = tx.Commit(); err != nil {
		return task.Task{}, errors.Wrap(err, "committing task update")
	}
	return row.unpack(), nil
}

func (repo taskRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM task WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting task")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return task.ErrNotFound
	}
	return nil
}
