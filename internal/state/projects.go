package state

import (
	"context"
	"fmt"
	"log"

	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/model"
	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/store"
)

// Projects mirrors the project and task collections together, since task
// lifetime is bounded by the owning project. Loads use the reload strategy;
// create/update/delete patch both caches in place.
type Projects struct {
	store    store.Store
	projects []model.Project
	tasks    []model.Task
}

// NewProjects creates a project/task container backed by the given store.
func NewProjects(s store.Store) *Projects {
	return &Projects{store: s}
}

// Load refetches both collections. A failure on either keeps that cache at
// its previous value.
func (p *Projects) Load(ctx context.Context) {
	projects, err := p.store.GetProjects(ctx)
	if err != nil {
		log.Printf("loading projects: %v", err)
	} else {
		p.projects = projects
	}

	tasks, err := p.store.GetTasks(ctx)
	if err != nil {
		log.Printf("loading tasks: %v", err)
	} else {
		p.tasks = tasks
	}
}

// All returns the in-memory projects.
func (p *Projects) All() []model.Project { return p.projects }

// Tasks returns the in-memory tasks across all projects.
func (p *Projects) Tasks() []model.Task { return p.tasks }

// ByID returns the project with the given id, or nil.
func (p *Projects) ByID(id string) *model.Project {
	for i := range p.projects {
		if p.projects[i].ID == id {
			return &p.projects[i]
		}
	}
	return nil
}

// TaskByID returns the task with the given id, or nil.
func (p *Projects) TaskByID(id string) *model.Task {
	for i := range p.tasks {
		if p.tasks[i].ID == id {
			return &p.tasks[i]
		}
	}
	return nil
}

// TasksByProject returns the tasks owned by a project.
func (p *Projects) TasksByProject(projectID string) []model.Task {
	var out []model.Task
	for _, t := range p.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

// TasksByStatus returns the tasks with the given status.
func (p *Projects) TasksByStatus(status string) []model.Task {
	var out []model.Task
	for _, t := range p.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// TasksByPriority returns the tasks with the given priority.
func (p *Projects) TasksByPriority(priority string) []model.Task {
	var out []model.Task
	for _, t := range p.tasks {
		if t.Priority == priority {
			out = append(out, t)
		}
	}
	return out
}

// TasksByDepartment returns the tasks assigned to a department.
func (p *Projects) TasksByDepartment(department string) []model.Task {
	var out []model.Task
	for _, t := range p.tasks {
		if t.Department == department {
			out = append(out, t)
		}
	}
	return out
}

// Types returns the distinct project types, in first-seen order.
func (p *Projects) Types() []string {
	seen := make(map[string]bool)
	var types []string
	for _, project := range p.projects {
		if !seen[project.Type] {
			seen[project.Type] = true
			types = append(types, project.Type)
		}
	}
	return types
}

// Create inserts a new active project and appends it to the cache.
func (p *Projects) Create(ctx context.Context, name, projectType, description string) (*model.Project, error) {
	created, err := p.store.CreateProject(ctx, model.Project{
		Name:        name,
		Type:        projectType,
		Description: description,
	})
	if err != nil {
		log.Printf("creating project: %v", err)
		return nil, err
	}
	p.projects = append(p.projects, *created)
	return created, nil
}

// Update applies a partial update and patches the cached copy.
func (p *Projects) Update(ctx context.Context, id string, upd model.ProjectUpdate) error {
	project := p.ByID(id)
	if project == nil {
		return fmt.Errorf("project %s: %w", id, store.ErrNotFound)
	}

	if err := p.store.UpdateProject(ctx, id, upd); err != nil {
		log.Printf("updating project %s: %v", id, err)
		return err
	}

	// Patch the cache to match what the store now holds.
	fresh, err := p.store.GetProjectByID(ctx, id)
	if err != nil {
		log.Printf("refreshing project %s: %v", id, err)
		return nil
	}
	*project = *fresh
	return nil
}

// Complete marks a project completed.
func (p *Projects) Complete(ctx context.Context, id string) error {
	status := model.ProjectStatusCompleted
	return p.Update(ctx, id, model.ProjectUpdate{Status: &status})
}

// Archive marks a project archived.
func (p *Projects) Archive(ctx context.Context, id string) error {
	status := model.ProjectStatusArchived
	return p.Update(ctx, id, model.ProjectUpdate{Status: &status})
}

// Activate marks a project active.
func (p *Projects) Activate(ctx context.Context, id string) error {
	status := model.ProjectStatusActive
	return p.Update(ctx, id, model.ProjectUpdate{Status: &status})
}

// Delete removes a project and all its tasks atomically, then drops both
// from the caches.
func (p *Projects) Delete(ctx context.Context, id string) error {
	if err := p.store.DeleteProject(ctx, id); err != nil {
		log.Printf("deleting project %s: %v", id, err)
		return err
	}

	keptProjects := p.projects[:0]
	for _, project := range p.projects {
		if project.ID != id {
			keptProjects = append(keptProjects, project)
		}
	}
	p.projects = keptProjects

	keptTasks := p.tasks[:0]
	for _, task := range p.tasks {
		if task.ProjectID != id {
			keptTasks = append(keptTasks, task)
		}
	}
	p.tasks = keptTasks
	return nil
}

// CreateTask inserts a task under an existing project and appends it to the
// cache. The project must be present in the container.
func (p *Projects) CreateTask(ctx context.Context, projectID string, task model.Task) (*model.Task, error) {
	if p.ByID(projectID) == nil {
		return nil, fmt.Errorf("project %s: %w", projectID, store.ErrNotFound)
	}

	task.ProjectID = projectID
	task.Status = model.TaskStatusTodo
	created, err := p.store.CreateTask(ctx, task)
	if err != nil {
		log.Printf("creating task: %v", err)
		return nil, err
	}
	p.tasks = append(p.tasks, *created)
	return created, nil
}

// UpdateTask applies a partial update and patches the cached copy.
func (p *Projects) UpdateTask(ctx context.Context, id string, upd model.TaskUpdate) error {
	task := p.TaskByID(id)
	if task == nil {
		return fmt.Errorf("task %s: %w", id, store.ErrNotFound)
	}

	if err := p.store.UpdateTask(ctx, id, upd); err != nil {
		log.Printf("updating task %s: %v", id, err)
		return err
	}

	// Mirror the applied fields; the store stamped updated_at, so refetch
	// the row rather than guessing.
	fresh, err := p.store.GetTasksByProject(ctx, task.ProjectID)
	if err != nil {
		log.Printf("refreshing tasks for project %s: %v", task.ProjectID, err)
		return nil
	}
	for _, f := range fresh {
		if f.ID == id {
			*task = f
			break
		}
	}
	return nil
}

// DeleteTask removes a single task.
func (p *Projects) DeleteTask(ctx context.Context, id string) error {
	if err := p.store.DeleteTask(ctx, id); err != nil {
		log.Printf("deleting task %s: %v", id, err)
		return err
	}

	kept := p.tasks[:0]
	for _, task := range p.tasks {
		if task.ID != id {
			kept = append(kept, task)
		}
	}
	p.tasks = kept
	return nil
}

// BatchUpdateTaskStatus sets the status of several tasks atomically, then
// patches the cached copies.
func (p *Projects) BatchUpdateTaskStatus(ctx context.Context, ids []string, status string) error {
	if err := p.store.UpdateTaskStatuses(ctx, ids, status); err != nil {
		log.Printf("batch updating task status: %v", err)
		return err
	}

	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	for i := range p.tasks {
		if idSet[p.tasks[i].ID] {
			p.tasks[i].Status = status
		}
	}
	return nil
}
