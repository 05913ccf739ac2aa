package users

import (
	"context"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/internal/integrations/notifyservice"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	SetActive(ctx context.Context, id int64, isActive bool) error
	SetVerified(ctx context.Context, id int64, isVerified bool) error
}

// Notifier интерфейс клиента NotifyService
type Notifier interface {
	NotifyAsync(event notifyservice.Event, userID, entityID int64, message string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
