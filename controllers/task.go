package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"weddingplanner-backend/models"
	"weddingplanner-backend/repository"
	"weddingplanner-backend/utils"
)

type ChecklistItemInput struct {
	Title     string `json:"title"`
	Order     *int   `json:"order"`
	Completed bool   `json:"completed"`
}

type UpdateChecklistItemInput struct {
	Title     *string `json:"title"`
	Order     *int    `json:"order"`
	Completed *bool   `json:"completed"`
}

type CreateTaskInput struct {
	EventID     *uuid.UUID           `json:"eventId"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Status      string               `json:"status"`
	Priority    string               `json:"priority"`
	DueDate     *time.Time           `json:"dueDate"`
	AssignedTo  string               `json:"assignedTo"`
	Checklist   []ChecklistItemInput `json:"checklist"`
}

type UpdateTaskInput struct {
	EventID     Nullable[uuid.UUID] `json:"eventId"`
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Status      *string             `json:"status"`
	Priority    *string             `json:"priority"`
	DueDate     Nullable[time.Time] `json:"dueDate"`
	AssignedTo  *string             `json:"assignedTo"`
}

func (in ChecklistItemInput) model() *models.ChecklistItem {
	item := &models.ChecklistItem{Title: in.Title, Completed: in.Completed}
	if in.Order != nil {
		item.Order = *in.Order
	}
	if item.Completed {
		now := time.Now().UTC()
		item.CompletedAt = &now
	}
	return item
}

func (h *Handler) Tasks() *crud[models.Task, CreateTaskInput, UpdateTaskInput] {
	return &crud[models.Task, CreateTaskInput, UpdateTaskInput]{
		h: h, label: "task", repo: h.store.Tasks,
		build: func(_ context.Context, w *models.Wedding, _ uuid.UUID, in *CreateTaskInput) (*models.Task, error) {
			t := &models.Task{
				WeddingID:   w.ID,
				EventID:     in.EventID,
				Title:       in.Title,
				Description: in.Description,
				Status:      in.Status,
				Priority:    in.Priority,
				DueDate:     in.DueDate,
				AssignedTo:  in.AssignedTo,
			}
			if t.Status == models.TaskCompleted {
				now := time.Now().UTC()
				t.CompletedAt = &now
			}
			return t, nil
		},
		save: func(ctx context.Context, t *models.Task, in *CreateTaskInput) error {
			items := make([]*models.ChecklistItem, len(in.Checklist))
			for i, it := range in.Checklist {
				items[i] = it.model()
			}
			return h.svc.Tasks.CreateWithChecklist(ctx, t, items)
		},
		changes: func(ctx context.Context, w *models.Wedding, _ *models.Task, in *UpdateTaskInput) (map[string]any, error) {
			fields := map[string]any{}
			if in.EventID.Set {
				if err := h.svc.Links.Event(ctx, w.ID, in.EventID.Value); err != nil {
					return nil, err
				}
				fields["event_id"] = in.EventID.column()
			}
			if in.Status != nil {
				fields["status"] = *in.Status
				if *in.Status == models.TaskCompleted {
					fields["completed_at"] = time.Now().UTC()
				} else {
					fields["completed_at"] = nil
				}
			}
			setIf(fields, "title", in.Title)
			setIf(fields, "description", in.Description)
			setIf(fields, "priority", in.Priority)
			setNullable(fields, "due_date", in.DueDate)
			setIf(fields, "assigned_to", in.AssignedTo)
			return fields, nil
		},
		present: func(c *gin.Context, w *models.Wedding, rows []models.Task) ([]any, error) {
			return views(h.svc.Composer.Tasks(c.Request.Context(), w.ID, rows))
		},
	}
}

// taskScope runs the wedding guard and checks :id is a live task in it.
func (h *Handler) taskScope(c *gin.Context) (*models.Wedding, uuid.UUID, bool) {
	w, ok := h.wedding(c)
	if !ok {
		return nil, uuid.Nil, false
	}
	taskID, err := parentIn(h, h.store.Tasks, "task")(c, w)
	if err != nil {
		return nil, uuid.Nil, false
	}
	return w, taskID, true
}

func (h *Handler) GetChecklist(c *gin.Context) {
	_, taskID, ok := h.taskScope(c)
	if !ok {
		return
	}
	items, err := h.store.Checklist.ListByParent(c.Request.Context(), taskID, repository.Filter{})
	if err != nil {
		h.fail(c, err, "checklist item")
		return
	}
	utils.RespondOK(c, items)
}

func (h *Handler) AddChecklistItem(c *gin.Context) {
	_, taskID, ok := h.taskScope(c)
	if !ok {
		return
	}
	var input ChecklistItemInput
	if !bindJSON(c, &input) {
		return
	}
	item := input.model()
	if err := h.svc.Tasks.AddChecklistItem(c.Request.Context(), taskID, item, input.Order); err != nil {
		h.fail(c, err, "checklist item")
		return
	}
	utils.RespondCreated(c, item)
}

func (h *Handler) UpdateChecklistItem(c *gin.Context) {
	_, taskID, ok := h.taskScope(c)
	if !ok {
		return
	}
	itemID, ok := parseID(c, "childId", "checklist item")
	if !ok {
		return
	}
	var input UpdateChecklistItemInput
	if !bindJSON(c, &input) {
		return
	}
	fields := map[string]any{}
	setIf(fields, "title", input.Title)
	setIf(fields, "position", input.Order)

	ctx := c.Request.Context()
	var (
		item *models.ChecklistItem
		err  error
	)
	if input.Completed != nil {
		item, err = h.svc.Tasks.SetChecklistCompleted(ctx, taskID, itemID, *input.Completed, fields)
	} else {
		item, err = h.store.Checklist.Patch(ctx, taskID, itemID, fields)
	}
	if err != nil {
		h.fail(c, err, "checklist item")
		return
	}
	utils.RespondOK(c, item)
}

func (h *Handler) DeleteChecklistItem(c *gin.Context) {
	_, taskID, ok := h.taskScope(c)
	if !ok {
		return
	}
	itemID, ok := parseID(c, "childId", "checklist item")
	if !ok {
		return
	}
	if err := h.store.Checklist.Delete(c.Request.Context(), taskID, itemID); err != nil {
		h.fail(c, err, "checklist item")
		return
	}
	utils.RespondMessage(c, "Checklist item deleted successfully")
}

type DependencyInput struct {
	DependsOnTaskID uuid.UUID `json:"dependsOnTaskId"`
}

// GetDependencies lists the task's edges with the target title and status.
func (h *Handler) GetDependencies(c *gin.Context) {
	w, taskID, ok := h.taskScope(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	task, err := h.store.Tasks.GetScoped(ctx, w.ID, taskID)
	if err != nil {
		h.fail(c, err, "task")
		return
	}
	vs, err := h.svc.Composer.Tasks(ctx, w.ID, []models.Task{*task})
	if err != nil {
		h.fail(c, err, "task dependency")
		return
	}
	utils.RespondOK(c, vs[0].Dependencies)
}

func (h *Handler) AddDependency(c *gin.Context) {
	w, taskID, ok := h.taskScope(c)
	if !ok {
		return
	}
	var input DependencyInput
	if !bindJSON(c, &input) {
		return
	}
	dep, err := h.svc.Tasks.AddDependency(c.Request.Context(), w.ID, taskID, input.DependsOnTaskID)
	if err != nil {
		h.fail(c, err, "task")
		return
	}
	utils.RespondCreated(c, dep)
}

// RemoveDependency accepts either the edge id or the id of the task the
// edge points at.
func (h *Handler) RemoveDependency(c *gin.Context) {
	_, taskID, ok := h.taskScope(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "childId", "task dependency")
	if !ok {
		return
	}
	if err := h.svc.Tasks.RemoveDependency(c.Request.Context(), taskID, id); err != nil {
		h.fail(c, err, "task dependency")
		return
	}
	utils.RespondMessage(c, "Task dependency deleted successfully")
}
