package task

import (
	"context"
	"time"
)

type (
	Repository interface {
		CreateTask(ctx context.Context, t Task) (Task, error)
		// QueryAllTasks returns all tasks, newest-created first.
		QueryAllTasks(ctx context.Context) ([]Task, error)
		GetTaskByID(ctx context.Context, id string) (Task, error)
		UpdateTask(ctx context.Context, id string, ut UpdateTask) (Task, error)
		DeleteTask(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nt NewTask) (Task, error) {
	now := time.Now().UTC()
	t := Task{
		Description: nt.Description,
		Status:      nt.Status,
		Priority:    nt.Priority,
		DueDate:     nt.DueDate.UTC(),
		Notes:       nt.Notes,
		Departments: nt.Departments,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Status == "" {
		t.Status = StatusNotStarted
	}
	if t.Priority == "" {
		t.Priority = PriorityLow
	}
	if t.Departments == nil {
		t.Departments = []string{}
	}
	return svc.repo.CreateTask(ctx, t)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Task, error) {
	return svc.repo.QueryAllTasks(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Task, error) {
	return svc.repo.GetTaskByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, ut UpdateTask) (Task, error) {
	return svc.repo.UpdateTask(ctx, id, ut)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteTask(ctx, id)
}
