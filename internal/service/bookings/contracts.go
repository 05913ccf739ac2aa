package bookings

import (
	"context"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/internal/integrations/notifyservice"
)

// BookingRepository интерфейс репозитория заявок на бронирование
type BookingRepository interface {
	GetByID(ctx context.Context, id int64, forUpdate bool) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
	UpdateDescription(ctx context.Context, id int64, description string) error
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
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
