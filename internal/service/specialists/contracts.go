package specialists

import (
	"context"

	"github.com/google/uuid"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/internal/integrations/notifyservice"
)

// SpecialistRepository интерфейс репозитория специалистов
type SpecialistRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Specialist, error)
	List(ctx context.Context, isActive *bool) ([]*domain.Specialist, error)
	SetActive(ctx context.Context, userID int64, isActive bool) error
	UpdateDescription(ctx context.Context, userID int64, description string) error
}

// ConsultationRepository интерфейс репозитория консультаций
type ConsultationRepository interface {
	ListActiveBySpecialist(ctx context.Context, specialistID int64) ([]*domain.Consultation, error)
	SetArchived(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория заявок на бронирование
type BookingRepository interface {
	ListByConsultation(ctx context.Context, consultationID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// Scheduler интерфейс планировщика отложенных задач
type Scheduler interface {
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
