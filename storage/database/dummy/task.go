package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tujenge/mipango/core/task"
)

type taskRepository struct {
	db *taskTable
}

var _ task.Repository = (*taskRepository)(nil) // interface compliance check

func NewTaskRepository(db *DB) task.Repository {
	return &taskRepository{db: db.task}
}

func (repo *taskRepository) query() []task.Task {
	tasks := make([]task.Task, 0, len(repo.db.table))
	for _, t := range repo.db.table {
		tasks = append(tasks, *t)
	}
	return tasks
}

func (repo *taskRepository) CreateTask(ctx context.Context, t task.Task) (task.Task, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	t.ID = uuid.New().String()
	repo.db.table[t.ID] = &t
	return t, nil
}

func (repo *taskRepository) QueryAllTasks(ctx context.Context) ([]task.Task, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	tasks := repo.query()
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.After(tasks[j].CreatedAt) })
	return tasks, nil
}

func (repo *taskRepository) GetTaskByID(ctx context.Context, id string) (task.Task, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if t, ok := repo.db.table[id]; ok {
		return *t, nil
	}
	return task.Task{}, task.ErrNotFound
}

func (repo *taskRepository) UpdateTask(ctx context.Context, id string, ut task.UpdateTask) (task.Task, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	// only save set fields
	orig, ok := repo.db.table[id]
	if !ok {
		return task.Task{}, task.ErrNotFound
	}
	if ut.Description != "" {
		orig.Description = ut.Description
	}
	if ut.Departments != nil {
		orig.Departments = ut.Departments
	}
	if ut.Status != "" {
		orig.Status = ut.Status
	}
	if ut.Priority != "" {
		orig.Priority = ut.Priority
	}
	if ut.DueDate != nil {
		orig.DueDate = ut.DueDate.UTC()
	}
	if ut.Notes != nil {
		orig.Notes = *ut.Notes
	}
	orig.UpdatedAt = time.Now().UTC()

	repo.db.table[id] = orig
	return *orig, nil
}

func (repo *taskRepository) DeleteTask(ctx context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return task.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
