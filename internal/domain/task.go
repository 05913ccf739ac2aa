package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus статус отложенной задачи
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusDone      TaskStatus = "done"
	TaskStatusCancelled TaskStatus = "cancelled"
)

// ScheduledTask отложенная задача авто-архивации консультации
// Хранится в БД, переживает рестарт процесса; воркер забирает задачи с run_at <= now
type ScheduledTask struct {
	ID             uuid.UUID
	ConsultationID int64
	RunAt          time.Time
	Status         TaskStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
