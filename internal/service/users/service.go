package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	userRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/user"
	"github.com/vkorolev/CPS-ConsultationService/internal/integrations/notifyservice"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/users/models"
)

// Service сервис для работы с учетными записями пользователей
type Service struct {
	userRepo UserRepository
	notifier Notifier
	logger   Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, notifier Notifier, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		notifier: notifier,
		logger:   logger,
	}
}

// GetByID получает пользователя
// Профиль видит его владелец и администратор
func (s *Service) GetByID(ctx context.Context, id int64, identity domain.Identity) (*models.UserResponse, error) {
	if id != identity.UserID && !identity.IsAdmin {
		return nil, ErrAccessDenied
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainUser(user), nil
}

// Block блокирует пользователя
func (s *Service) Block(ctx context.Context, identity domain.Identity, id int64) error {
	s.logger.Info("Block: user=%d by admin=%d", id, identity.UserID)

	if !identity.IsAdmin {
		return ErrAccessDenied
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return err
	}

	if !user.IsActive {
		return ErrAlreadyBlocked
	}

	if err := s.userRepo.SetActive(ctx, id, false); err != nil {
		s.logger.Error("Block: repository error for user=%d: %v", id, err)
		return fmt.Errorf("%w: Block - repository error: %v", ErrInternal, err)
	}

	s.notifier.NotifyAsync(notifyservice.EventUserBlocked, id, id, "")
	s.logger.Info("Block: user=%d blocked", id)
	return nil
}

// Unblock снимает блокировку пользователя
func (s *Service) Unblock(ctx context.Context, identity domain.Identity, id int64) error {
	s.logger.Info("Unblock: user=%d by admin=%d", id, identity.UserID)

	if !identity.IsAdmin {
		return ErrAccessDenied
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return err
	}

	if user.IsActive {
		return ErrNotBlocked
	}

	if err := s.userRepo.SetActive(ctx, id, true); err != nil {
		s.logger.Error("Unblock: repository error for user=%d: %v", id, err)
		return fmt.Errorf("%w: Unblock - repository error: %v", ErrInternal, err)
	}

	s.notifier.NotifyAsync(notifyservice.EventUserUnblocked, id, id, "")
	s.logger.Info("Unblock: user=%d unblocked", id)
	return nil
}

// RequestEmailVerification отправляет письмо с подтверждением email
// Само письмо формирует NotifyService, здесь только постановка события
func (s *Service) RequestEmailVerification(ctx context.Context, identity domain.Identity) error {
	user, err := s.getUser(ctx, identity.UserID)
	if err != nil {
		return err
	}

	if user.IsVerified {
		return ErrAlreadyVerified
	}

	s.notifier.NotifyAsync(notifyservice.EventEmailVerification, user.ID, user.ID, user.Email)
	s.logger.Info("RequestEmailVerification: verification requested for user=%d", user.ID)

	return nil
}

// ConfirmEmail подтверждает email пользователя
// Валидность ссылки подтверждения проверяет NotifyService, сюда приходит
// уже проверенный callback
func (s *Service) ConfirmEmail(ctx context.Context, userID int64) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	if user.IsVerified {
		return nil
	}

	if err := s.userRepo.SetVerified(ctx, userID, true); err != nil {
		s.logger.Error("ConfirmEmail: repository error for user=%d: %v", userID, err)
		return fmt.Errorf("%w: ConfirmEmail - repository error: %v", ErrInternal, err)
	}

	s.notifier.NotifyAsync(notifyservice.EventEmailVerified, userID, userID, user.Email)
	s.logger.Info("ConfirmEmail: email verified for user=%d", userID)
	return nil
}

func (s *Service) getUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("user id=%d not found", id)
			return nil, ErrUserNotFound
		}
		s.logger.Error("getUser: repository error for user=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return user, nil
}
