package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TaskNotStarted = "not_started"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
	TaskDelayed    = "delayed"
	TaskCancelled  = "cancelled"
)

var TaskStatuses = []string{TaskNotStarted, TaskInProgress, TaskCompleted, TaskDelayed, TaskCancelled}

const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

var TaskPriorities = []string{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}

type Task struct {
	Base
	WeddingID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"weddingId"`
	EventID     *uuid.UUID `gorm:"type:uuid;index" json:"eventId"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Status      string     `gorm:"type:varchar(20);index;default:'not_started'" json:"status"`
	Priority    string     `gorm:"type:varchar(20);default:'medium'" json:"priority"`
	DueDate     *time.Time `gorm:"index" json:"dueDate"`
	AssignedTo  string     `json:"assignedTo"`
	CompletedAt *time.Time `json:"completedAt"`
	SoftDelete
}

func (t *Task) ApplyDefaults() {
	if t.Status == "" {
		t.Status = TaskNotStarted
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
}

func (t *Task) Validate() error {
	return firstErr(
		required("title", t.Title),
		oneOf("status", t.Status, TaskStatuses...),
		oneOf("priority", t.Priority, TaskPriorities...),
	)
}

// ChecklistItem is an ordered sub-step of a task. Items are hard-deleted.
type ChecklistItem struct {
	Base
	TaskID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"taskId"`
	Title       string     `gorm:"not null" json:"title"`
	Order       int        `gorm:"column:position;default:0" json:"order"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (c *ChecklistItem) Validate() error { return required("title", c.Title) }

// TaskDependency says TaskID cannot finish before DependsOnTaskID.
type TaskDependency struct {
	Base
	TaskID          uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_task_dependency,priority:1" json:"taskId"`
	DependsOnTaskID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_task_dependency,priority:2" json:"dependsOnTaskId"`
}

func (d *TaskDependency) Validate() error {
	if d.DependsOnTaskID == uuid.Nil {
		return &ValidationError{Field: "dependsOnTaskId", Message: "is required"}
	}
	if d.TaskID == d.DependsOnTaskID {
		return &ValidationError{Field: "dependsOnTaskId", Message: "a task cannot depend on itself"}
	}
	return nil
}
