package create_consultation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
)

// ConsultationRepository интерфейс репозитория консультаций
type ConsultationRepository interface {
	Create(ctx context.Context, c *domain.Consultation) (*domain.Consultation, error)
	ListActiveBySpecialist(ctx context.Context, specialistID int64) ([]*domain.Consultation, error)
	SetTaskID(ctx context.Context, id int64, taskID *uuid.UUID) error
}

// SpecialistRepository интерфейс репозитория специалистов
type SpecialistRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Specialist, error)
}

// Scheduler интерфейс планировщика отложенных задач
type Scheduler interface {
	Schedule(ctx context.Context, consultationID int64, runAt time.Time) (uuid.UUID, error)
}

// CacheInvalidator интерфейс инвалидации кэша списков
type CacheInvalidator interface {
	Invalidate(ctx context.Context, patterns ...string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
