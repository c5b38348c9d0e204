package service

import (
	"context"
	"fmt"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

type projectService struct {
	crud[domain.Project]
}

func NewProjectService(store ports.DocumentStore[domain.Project]) ports.ProjectService {
	return &projectService{crud: newCrud(store)}
}

func (s *projectService) List(ctx context.Context, f ports.ProjectFilter, p ports.Page) (*ports.ListResult[domain.Project], error) {
	q := ports.Query{}
	if f.Status != "" {
		q = q.Where("status", ports.OpEq, f.Status)
	}
	if f.Title != "" {
		q = q.Where("title", ports.OpContains, f.Title)
	}
	res, err := s.list(ctx, q, p)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return res, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.store.FindByID(ctx, id)
}

func (s *projectService) Create(ctx context.Context, in ports.ProjectInput) (*domain.Project, error) {
	if blank(in.Title) || blank(in.Description) {
		return nil, required("title", "description")
	}
	tasks, err := toTasks(in.Tasks)
	if err != nil {
		return nil, err
	}
	now := s.now()
	doc := &domain.Project{
		Title:       *in.Title,
		Description: *in.Description,
		StartDate:   in.StartDate,
		DueDate:     in.DueDate,
		Status:      domain.ConsProjectPending,
		Tasks:       tasks,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Status != nil {
		doc.Status = domain.ConsProjectStatus(*in.Status)
	}
	return s.store.Insert(ctx, doc)
}

func (s *projectService) Update(ctx context.Context, id string, in ports.ProjectInput) (*domain.Project, error) {
	set := setter{}
	set.str("title", in.Title)
	set.str("description", in.Description)
	set.str("status", in.Status)
	set.val("startDate", deref(in.StartDate), in.StartDate != nil)
	set.val("dueDate", deref(in.DueDate), in.DueDate != nil)
	if in.Tasks != nil {
		tasks, err := toTasks(in.Tasks)
		if err != nil {
			return nil, err
		}
		set["tasks"] = tasks
	}
	if err := set.stamp(s.now()); err != nil {
		return nil, err
	}
	return s.store.UpdateByID(ctx, id, set)
}

func (s *projectService) Delete(ctx context.Context, id string) (*domain.Project, error) {
	return s.store.DeleteByID(ctx, id)
}

func toTasks(in *[]ports.TaskInput) ([]domain.Task, error) {
	tasks := []domain.Task{}
	if in == nil {
		return tasks, nil
	}
	var msgs []string
	for i, t := range *in {
		if blank(&t.TaskName) {
			msgs = append(msgs, fmt.Sprintf("task %d must have a taskName", i))
			continue
		}
		tasks = append(tasks, domain.Task{TaskName: t.TaskName, Completed: t.Completed})
	}
	if len(msgs) > 0 {
		return nil, domain.NewValidationError(msgs...)
	}
	return tasks, nil
}
