package app

import (
	"context"
	"log"

	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/model"
)

// seedSampleData populates an empty database with a starter note, tags,
// todos, and a small project board. Every failure is logged and skipped so
// a partial seed never blocks startup. Runs only when every collection is
// empty, which makes it a first-launch operation.
func (a *App) seedSampleData(ctx context.Context) {
	if len(a.Notes.All()) > 0 || len(a.Tags.All()) > 0 ||
		a.Todos.Count() > 0 || len(a.Projects.All()) > 0 {
		return
	}

	a.seedTags(ctx)
	a.seedWelcomeNote(ctx)
	a.seedTodos(ctx)
	a.seedProjects(ctx)
}

func (a *App) seedTags(ctx context.Context) {
	samples := []struct {
		name, color string
	}{
		{"Work", "#f56c6c"},
		{"Study", "#409eff"},
		{"Life", "#67c23a"},
	}
	for _, s := range samples {
		if _, err := a.Tags.Create(ctx, s.name, s.color); err != nil {
			log.Printf("seeding tag %q: %v", s.name, err)
		}
	}
}

func (a *App) seedWelcomeNote(ctx context.Context) {
	note, err := a.Notes.Create(ctx)
	if err != nil {
		log.Printf("seeding welcome note: %v", err)
		return
	}

	if err := a.Notes.UpdateTitle(ctx, note.ID, "Welcome to Carmen"); err != nil {
		log.Printf("seeding welcome note title: %v", err)
	}
	content := "Write notes, tag them, and keep your projects moving.\n\n" +
		"- Use the search box to filter notes by text or tag\n" +
		"- Drag notes to pin your own ordering\n" +
		"- Configure an OpenRouter API key in settings to unlock AI assistance"
	if err := a.Notes.UpdateContent(ctx, note.ID, content); err != nil {
		log.Printf("seeding welcome note content: %v", err)
	}

	var tagIDs []string
	for _, tag := range a.Tags.All() {
		if tag.Name == "Life" {
			tagIDs = append(tagIDs, tag.ID)
		}
	}
	if len(tagIDs) > 0 {
		if err := a.Notes.UpdateTags(ctx, note.ID, tagIDs); err != nil {
			log.Printf("seeding welcome note tags: %v", err)
		}
	}
}

func (a *App) seedTodos(ctx context.Context) {
	samples := []struct {
		content, priority string
	}{
		{"Try creating a note", model.TodoPriorityNormal},
		{"Add your own tags", model.TodoPriorityNormal},
		{"Set up an OpenRouter API key", model.TodoPriorityHigh},
	}
	for _, s := range samples {
		if _, err := a.Todos.Add(ctx, s.content, s.priority); err != nil {
			log.Printf("seeding todo %q: %v", s.content, err)
		}
	}
}

func (a *App) seedProjects(ctx context.Context) {
	website, err := a.Projects.Create(ctx, "Website refresh", "design",
		"Refresh the landing page copy and visuals")
	if err != nil {
		log.Printf("seeding project: %v", err)
	} else {
		a.seedTask(ctx, website.ID, model.Task{
			Title:    "Draft new landing copy",
			Priority: model.TaskPriorityHigh,
		})
		a.seedTask(ctx, website.ID, model.Task{
			Title:    "Collect screenshot assets",
			Priority: model.TaskPriorityMedium,
		})
	}

	research, err := a.Projects.Create(ctx, "Reading list", "personal",
		"Books and papers to work through this quarter")
	if err != nil {
		log.Printf("seeding project: %v", err)
	} else {
		a.seedTask(ctx, research.ID, model.Task{
			Title:    "Pick the first three titles",
			Priority: model.TaskPriorityLow,
		})
	}
}

func (a *App) seedTask(ctx context.Context, projectID string, task model.Task) {
	if _, err := a.Projects.CreateTask(ctx, projectID, task); err != nil {
		log.Printf("seeding task %q: %v", task.Title, err)
	}
}
