package consultations

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/internal/integrations/notifyservice"
)

// ConsultationRepository интерфейс репозитория консультаций
type ConsultationRepository interface {
	GetByID(ctx context.Context, id int64, forUpdate bool) (*domain.Consultation, error)
	GetWithFilter(ctx context.Context, filter domain.ConsultationsFilter) ([]*domain.Consultation, error)
	ListActiveBySpecialist(ctx context.Context, specialistID int64) ([]*domain.Consultation, error)
	Update(ctx context.Context, c *domain.Consultation) error
	SetArchived(ctx context.Context, id int64) error
	SetTaskID(ctx context.Context, id int64, taskID *uuid.UUID) error
}

// BookingRepository интерфейс репозитория заявок на бронирование
type BookingRepository interface {
	ListByConsultation(ctx context.Context, consultationID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
	Complete(ctx context.Context, id int64) error
}

// Scheduler интерфейс планировщика отложенных задач
type Scheduler interface {
	Schedule(ctx context.Context, consultationID int64, runAt time.Time) (uuid.UUID, error)
	Cancel(ctx context.Context, taskID uuid.UUID) error
}

// CacheInvalidator интерфейс инвалидации кэша списков
type CacheInvalidator interface {
	Invalidate(ctx context.Context, patterns ...string)
}

// Notifier интерфейс клиента NotifyService
type Notifier interface {
	NotifyAsync(event notifyservice.Event, userID, entityID int64, message string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
