package candidates

import (
	"context"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/internal/integrations/notifyservice"
)

// CandidateRepository интерфейс репозитория кандидатур
type CandidateRepository interface {
	Create(ctx context.Context, c *domain.Candidate) (*domain.Candidate, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Candidate, error)
	List(ctx context.Context, status *domain.CandidateStatus) ([]*domain.Candidate, error)
	Approve(ctx context.Context, userID int64) error
	Cancel(ctx context.Context, userID int64, reason string) error
	Reapply(ctx context.Context, userID int64, description string) error
}

// SpecialistRepository интерфейс репозитория специалистов
type SpecialistRepository interface {
	Create(ctx context.Context, s *domain.Specialist) (*domain.Specialist, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Specialist, error)
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
