package accept_booking

import (
	"context"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/internal/integrations/notifyservice"
)

// BookingRepository интерфейс репозитория заявок на бронирование
type BookingRepository interface {
	GetByID(ctx context.Context, id int64, forUpdate bool) (*domain.Booking, error)
	ListByConsultation(ctx context.Context, consultationID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// ConsultationRepository интерфейс репозитория консультаций
type ConsultationRepository interface {
	GetByID(ctx context.Context, id int64, forUpdate bool) (*domain.Consultation, error)
	SetBooking(ctx context.Context, id int64, booking bool) error
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
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
