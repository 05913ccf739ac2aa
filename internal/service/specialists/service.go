package specialists

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/internal/infra/cache"
	specialistRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/specialist"
	"github.com/vkorolev/CPS-ConsultationService/internal/integrations/notifyservice"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/specialists/models"
)

// Service сервис для работы с профилями специалистов
type Service struct {
	specialistRepo   SpecialistRepository
	consultationRepo ConsultationRepository
	bookingRepo      BookingRepository
	scheduler        Scheduler
	invalidator      CacheInvalidator
	notifier         Notifier
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса специалистов
func NewService(
	specialistRepo SpecialistRepository,
	consultationRepo ConsultationRepository,
	bookingRepo BookingRepository,
	scheduler Scheduler,
	invalidator CacheInvalidator,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		specialistRepo:   specialistRepo,
		consultationRepo: consultationRepo,
		bookingRepo:      bookingRepo,
		scheduler:        scheduler,
		invalidator:      invalidator,
		notifier:         notifier,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetByUserID получает профиль специалиста
func (s *Service) GetByUserID(ctx context.Context, userID int64) (*models.SpecialistResponse, error) {
	specialist, err := s.specialistRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			return nil, ErrSpecialistNotFound
		}
		s.logger.Error("GetByUserID: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetByUserID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSpecialist(specialist), nil
}

// List получает список специалистов
// Не-администратор видит только активных специалистов
func (s *Service) List(ctx context.Context, identity domain.Identity, req *models.ListSpecialistsRequest) (*models.SpecialistListResponse, error) {
	isActive := req.IsActive
	if !identity.IsAdmin {
		active := true
		isActive = &active
	}

	specialists, err := s.specialistRepo.List(ctx, isActive)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSpecialistList(specialists), nil
}

// UpdateDescription изменяет описание профиля
// Доступно владельцу профиля и администратору
func (s *Service) UpdateDescription(ctx context.Context, userID int64, identity domain.Identity, req *models.UpdateSpecialistRequest) error {
	if userID != identity.UserID && !identity.IsAdmin {
		return ErrAccessDenied
	}

	if len([]rune(req.Description)) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description too long", ErrInvalidInput)
	}

	if err := s.specialistRepo.UpdateDescription(ctx, userID, req.Description); err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			return ErrSpecialistNotFound
		}
		s.logger.Error("UpdateDescription: repository error for user=%d: %v", userID, err)
		return fmt.Errorf("%w: UpdateDescription - repository error: %v", ErrInternal, err)
	}

	s.invalidator.Invalidate(ctx, cache.KeySpecialistsList)
	return nil
}

// Block блокирует специалиста
// Каскад в одной сериализуемой транзакции: все незаархивированные
// консультации специалиста архивируются, их активные заявки отменяются
// с системной причиной, запланированные задачи авто-архивации снимаются
func (s *Service) Block(ctx context.Context, identity domain.Identity, userID int64) error {
	s.logger.Info("Block: specialist user=%d by admin=%d", userID, identity.UserID)

	if !identity.IsAdmin {
		return ErrAccessDenied
	}

	var notifyUsers []int64

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		specialist, err := s.specialistRepo.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
				return ErrSpecialistNotFound
			}
			return fmt.Errorf("%w: Block - repository error: %v", ErrInternal, err)
		}

		if !specialist.IsActive {
			return ErrAlreadyBlocked
		}

		if err := s.specialistRepo.SetActive(ctx, userID, false); err != nil {
			return fmt.Errorf("%w: Block - repository error: %v", ErrInternal, err)
		}

		// Каскад по незаархивированным консультациям
		consultations, err := s.consultationRepo.ListActiveBySpecialist(ctx, userID)
		if err != nil {
			return fmt.Errorf("%w: Block - consultations fetch: %v", ErrInternal, err)
		}

		for _, c := range consultations {
			bookings, err := s.bookingRepo.ListByConsultation(ctx, c.ID, nil)
			if err != nil {
				return fmt.Errorf("%w: Block - bookings fetch: %v", ErrInternal, err)
			}

			for _, b := range bookings {
				if !b.IsActive() {
					continue
				}
				if err := s.bookingRepo.Cancel(ctx, b.ID, domain.ReasonSpecialistBlocked); err != nil {
					return fmt.Errorf("%w: Block - booking cascade: %v", ErrInternal, err)
				}
				notifyUsers = append(notifyUsers, b.UserID)
			}

			if err := s.consultationRepo.SetArchived(ctx, c.ID); err != nil {
				return fmt.Errorf("%w: Block - archive consultation: %v", ErrInternal, err)
			}

			if c.TaskID != nil {
				if err := s.scheduler.Cancel(ctx, *c.TaskID); err != nil {
					s.logger.Warn("Block: failed to cancel task %s for consultation id=%d: %v", c.TaskID, c.ID, err)
				}
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSpecialistNotFound) || errors.Is(err, ErrAlreadyBlocked) || errors.Is(err, ErrAccessDenied) {
			s.logger.Warn("Block: specialist user=%d rejected: %v", userID, err)
		} else {
			s.logger.Error("Block: specialist user=%d failed: %v", userID, err)
		}
		return err
	}

	s.invalidator.Invalidate(ctx, cache.KeySpecialistsList, cache.KeyConsultationsList, cache.KeyBookingsList)

	s.notifier.NotifyAsync(notifyservice.EventSpecialistBlocked, userID, userID, domain.ReasonSpecialistBlocked)
	for _, u := range notifyUsers {
		s.notifier.NotifyAsync(notifyservice.EventBookingCancelled, u, userID, domain.ReasonSpecialistBlocked)
	}

	s.logger.Info("Block: specialist user=%d blocked, %d bookings cascade-cancelled", userID, len(notifyUsers))
	return nil
}

// Unblock снимает блокировку специалиста
// Заархивированные каскадом консультации не восстанавливаются,
// специалист публикует новые слоты сам
func (s *Service) Unblock(ctx context.Context, identity domain.Identity, userID int64) error {
	s.logger.Info("Unblock: specialist user=%d by admin=%d", userID, identity.UserID)

	if !identity.IsAdmin {
		return ErrAccessDenied
	}

	specialist, err := s.specialistRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			return ErrSpecialistNotFound
		}
		return fmt.Errorf("%w: Unblock - repository error: %v", ErrInternal, err)
	}

	if specialist.IsActive {
		return ErrNotBlocked
	}

	if err := s.specialistRepo.SetActive(ctx, userID, true); err != nil {
		return fmt.Errorf("%w: Unblock - repository error: %v", ErrInternal, err)
	}

	s.invalidator.Invalidate(ctx, cache.KeySpecialistsList)
	s.notifier.NotifyAsync(notifyservice.EventSpecialistUnblocked, userID, specialist.ID, "")
	s.logger.Info("Unblock: specialist user=%d unblocked", userID)

	return nil
}
