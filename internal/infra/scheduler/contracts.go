package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
)

// TaskRepository интерфейс очереди отложенных задач
type TaskRepository interface {
	Create(ctx context.Context, consultationID int64, runAt time.Time) (uuid.UUID, error)
	CancelByID(ctx context.Context, id uuid.UUID) error
	DueTasks(ctx context.Context, now time.Time, limit uint64) ([]*domain.ScheduledTask, error)
	MarkDone(ctx context.Context, id uuid.UUID) error
}

// Archiver выполняет полезную нагрузку задачи - авто-архивацию консультации
// Реализация обязана быть идемпотентной: задача может сработать после того,
// как консультация уже отменена или заархивирована
type Archiver interface {
	AutoArchive(ctx context.Context, consultationID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
