package reports

import (
	"time"

	"weddingplanner-backend/models"
)

// ChecklistProgress is the completed share of items as a percentage.
func ChecklistProgress(items []models.ChecklistItem) float64 {
	if len(items) == 0 {
		return 0
	}
	done := 0
	for _, it := range items {
		if it.Completed {
			done++
		}
	}
	return round2(float64(done) / float64(len(items)) * 100)
}

type TaskCounts struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"byStatus"`
	ByPriority map[string]int `json:"byPriority"`
	Overdue    int            `json:"overdue"`
	Completion float64        `json:"completion"`
}

// CountTasks tallies tasks by status and priority. A task is overdue when its
// due date is before now and it is neither completed nor cancelled.
func CountTasks(tasks []models.Task, now time.Time) TaskCounts {
	c := TaskCounts{ByStatus: map[string]int{}, ByPriority: map[string]int{}}
	for _, s := range models.TaskStatuses {
		c.ByStatus[s] = 0
	}
	for _, p := range models.TaskPriorities {
		c.ByPriority[p] = 0
	}
	for _, t := range tasks {
		if t.DeletedAt.Valid {
			continue
		}
		c.Total++
		c.ByStatus[t.Status]++
		c.ByPriority[t.Priority]++
		if IsOverdue(t, now) {
			c.Overdue++
		}
	}
	if c.Total > 0 {
		c.Completion = round2(float64(c.ByStatus[models.TaskCompleted]) / float64(c.Total) * 100)
	}
	return c
}

func IsOverdue(t models.Task, now time.Time) bool {
	if t.DueDate == nil || t.Status == models.TaskCompleted || t.Status == models.TaskCancelled {
		return false
	}
	return t.DueDate.Before(now)
}
