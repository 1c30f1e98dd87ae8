package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"weddingplanner-backend/models"
	"weddingplanner-backend/repository"
)

type TaskService struct {
	store *repository.Store
	links *LinkValidator
}

func NewTaskService(store *repository.Store, links *LinkValidator) *TaskService {
	return &TaskService{store: store, links: links}
}

// CreateWithChecklist inserts the task and its checklist atomically. Items
// without an explicit order are numbered in the order given.
func (s *TaskService) CreateWithChecklist(ctx context.Context, task *models.Task, items []*models.ChecklistItem) error {
	if err := s.links.Event(ctx, task.WeddingID, task.EventID); err != nil {
		return err
	}
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Tasks.Create(ctx, task); err != nil {
			return err
		}
		for i, it := range items {
			it.TaskID = task.ID
			if it.Order == 0 {
				it.Order = i + 1
			}
		}
		return tx.Checklist.CreateMany(ctx, items)
	})
}

// AddChecklistItem appends an item. A nil order places it after the last
// existing item.
func (s *TaskService) AddChecklistItem(ctx context.Context, taskID uuid.UUID, item *models.ChecklistItem, order *int) error {
	item.TaskID = taskID
	if order != nil {
		item.Order = *order
		return s.store.Checklist.Create(ctx, item)
	}
	existing, err := s.store.Checklist.ListByParent(ctx, taskID, repository.Filter{})
	if err != nil {
		return err
	}
	next := 1
	for _, it := range existing {
		if it.Order >= next {
			next = it.Order + 1
		}
	}
	item.Order = next
	return s.store.Checklist.Create(ctx, item)
}

// SetChecklistCompleted toggles an item and stamps or clears completedAt.
func (s *TaskService) SetChecklistCompleted(ctx context.Context, taskID, itemID uuid.UUID, completed bool, fields map[string]any) (*models.ChecklistItem, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["completed"] = completed
	if completed {
		fields["completed_at"] = time.Now().UTC()
	} else {
		fields["completed_at"] = nil
	}
	return s.store.Checklist.Patch(ctx, taskID, itemID, fields)
}

// AddDependency records that task waits on dependsOn. Both tasks must be in
// weddingID; self edges, duplicates and edges that close a cycle are
// rejected.
func (s *TaskService) AddDependency(ctx context.Context, weddingID, taskID, dependsOn uuid.UUID) (*models.TaskDependency, error) {
	dep := &models.TaskDependency{TaskID: taskID, DependsOnTaskID: dependsOn}
	if err := dep.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.store.Tasks.GetScoped(ctx, weddingID, taskID); err != nil {
		return nil, err
	}
	if err := s.links.Task(ctx, weddingID, &dependsOn); err != nil {
		return nil, err
	}

	tasks, err := s.store.Tasks.ListByParent(ctx, weddingID, repository.Filter{})
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	edges, err := s.store.Dependencies.ListByParents(ctx, ids)
	if err != nil {
		return nil, err
	}
	graph := map[uuid.UUID][]uuid.UUID{}
	for _, e := range edges {
		if e.TaskID == taskID && e.DependsOnTaskID == dependsOn {
			return nil, &models.ValidationError{Field: "dependsOnTaskId", Message: "dependency already exists"}
		}
		graph[e.TaskID] = append(graph[e.TaskID], e.DependsOnTaskID)
	}
	if reaches(graph, dependsOn, taskID) {
		return nil, &models.ValidationError{Field: "dependsOnTaskId", Message: "dependency would create a cycle"}
	}

	if err := s.store.Dependencies.Create(ctx, dep); err != nil {
		return nil, err
	}
	return dep, nil
}

// RemoveDependency deletes the edge identified by either its own id or the
// id of the task it points at.
func (s *TaskService) RemoveDependency(ctx context.Context, taskID, id uuid.UUID) error {
	err := s.store.Dependencies.Delete(ctx, taskID, id)
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	edges, lerr := s.store.Dependencies.ListByParent(ctx, taskID, repository.Filter{})
	if lerr != nil {
		return lerr
	}
	for _, e := range edges {
		if e.DependsOnTaskID == id {
			return s.store.Dependencies.Delete(ctx, taskID, e.ID)
		}
	}
	return err
}

// reaches reports whether to is reachable from from along graph edges.
func reaches(graph map[uuid.UUID][]uuid.UUID, from, to uuid.UUID) bool {
	seen := map[uuid.UUID]bool{from: true}
	queue := []uuid.UUID{from}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n == to {
			return true
		}
		for _, next := range graph[n] {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}
