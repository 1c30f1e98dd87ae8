// services/task_sweeper.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"weddingplanner-backend/logger"
	"weddingplanner-backend/models"
)

// TaskSweeper marks open tasks past their due date as delayed.
type TaskSweeper struct {
	db  *gorm.DB
	log *logger.Logger
	now func() time.Time
}

func NewTaskSweeper(db *gorm.DB, baseLog *logger.Logger) *TaskSweeper {
	return &TaskSweeper{
		db:  db,
		log: baseLog.With("service", "TaskSweeper"),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Sweep runs one pass and returns how many tasks changed. Tasks of deleted
// weddings are left alone.
func (s *TaskSweeper) Sweep(ctx context.Context) (int64, error) {
	now := s.now()
	live := s.db.WithContext(ctx).Model(&models.Wedding{}).Select("id")
	result := s.db.WithContext(ctx).Model(&models.Task{}).
		Where("due_date IS NOT NULL AND due_date < ?", now).
		Where("status IN ?", []string{models.TaskNotStarted, models.TaskInProgress}).
		Where("wedding_id IN (?)", live).
		Updates(map[string]any{"status": models.TaskDelayed, "updated_at": now})
	if result.Error != nil {
		return 0, fmt.Errorf("sweep overdue tasks: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// StartScheduler registers the sweep on schedule and starts the cron loop.
// The caller stops the returned cron on shutdown.
func (s *TaskSweeper) StartScheduler(schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		n, err := s.Sweep(context.Background())
		if err != nil {
			s.log.Error("Overdue task sweep failed", "error", err)
			return
		}
		s.log.Info("Overdue task sweep completed", "delayed", n)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule task sweep %q: %w", schedule, err)
	}
	c.Start()
	s.log.Info("Task sweep scheduler started", "schedule", schedule)
	return c, nil
}
