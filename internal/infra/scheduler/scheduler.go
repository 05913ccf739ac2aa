package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Scheduler планировщик отложенных задач поверх постоянной очереди в БД.
// Schedule возвращает идентификатор задачи, по которому её можно отменить
type Scheduler struct {
	tasks  TaskRepository
	logger Logger
}

func New(tasks TaskRepository, logger Logger) *Scheduler {
	return &Scheduler{
		tasks:  tasks,
		logger: logger,
	}
}

// Schedule регистрирует задачу авто-архивации консультации на момент runAt
func (s *Scheduler) Schedule(ctx context.Context, consultationID int64, runAt time.Time) (uuid.UUID, error) {
	taskID, err := s.tasks.Create(ctx, consultationID, runAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("scheduler.Schedule: %w", err)
	}

	s.logger.Info("scheduler: task %s scheduled for consultation %d at %s", taskID, consultationID, runAt.Format(time.RFC3339))

	return taskID, nil
}

// Cancel отменяет запланированную задачу. Отмена best-effort: если задача
// уже выполнена или отменена, метод не возвращает ошибку
func (s *Scheduler) Cancel(ctx context.Context, taskID uuid.UUID) error {
	if err := s.tasks.CancelByID(ctx, taskID); err != nil {
		return fmt.Errorf("scheduler.Cancel: %w", err)
	}

	s.logger.Info("scheduler: task %s cancelled", taskID)

	return nil
}
