package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/internal/infra/cache"
	bookingRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/booking"
	"github.com/vkorolev/CPS-ConsultationService/internal/integrations/notifyservice"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/bookings/models"
)

// Service сервис для работы с заявками на бронирование
type Service struct {
	bookingRepo      BookingRepository
	consultationRepo ConsultationRepository
	invalidator      CacheInvalidator
	notifier         Notifier
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	bookingRepo BookingRepository,
	consultationRepo ConsultationRepository,
	invalidator CacheInvalidator,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		consultationRepo: consultationRepo,
		invalidator:      invalidator,
		notifier:         notifier,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetByID получает заявку по ID
// Заявку видит её автор, специалист-владелец консультации и администратор
func (s *Service) GetByID(ctx context.Context, id int64, identity domain.Identity) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAccess(ctx, booking, identity); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", identity.UserID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// List получает список заявок с фильтрацией
// Не-администратор видит только собственные заявки
func (s *Service) List(ctx context.Context, identity domain.Identity, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	if !identity.IsAdmin && !identity.IsSpecialist {
		req.UserID = &identity.UserID
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings for user=%d", len(bookings), identity.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет заявку
// Если отменяется подтверждённая заявка, бронь с консультации снимается
// и слот снова становится доступным для других пользователей
func (s *Service) Cancel(ctx context.Context, id int64, identity domain.Identity, reason string) error {
	s.logger.Info("Cancel: booking id=%d by user=%d", id, identity.UserID)

	if reason == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if len([]rune(reason)) > domain.MaxRejectionReasonLength {
		return fmt.Errorf("%w: reason too long", ErrInvalidInput)
	}

	var (
		consultationID int64
		wasAccepted    bool
	)

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 1. Получаем заявку с блокировкой строки
		booking, err := s.bookingRepo.GetByID(ctx, id, true)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// 2. Проверяем права доступа
		if err := s.checkAccess(ctx, booking, identity); err != nil {
			return err
		}

		// 3. Терминальную заявку отменить нельзя
		if !booking.CanBeCancelled() {
			return ErrCannotCancel
		}

		consultationID = booking.ConsultationID
		wasAccepted = booking.Status == domain.BookingStatusAccepted

		if err := s.bookingRepo.Cancel(ctx, id, reason); err != nil {
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// 4. Отмена подтверждённой заявки возвращает слот в продажу
		if wasAccepted {
			if err := s.consultationRepo.SetBooking(ctx, consultationID, false); err != nil {
				return fmt.Errorf("%w: Cancel - release consultation: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrAccessDenied) || errors.Is(err, ErrCannotCancel) {
			s.logger.Warn("Cancel: booking id=%d rejected: %v", id, err)
		} else {
			s.logger.Error("Cancel: booking id=%d failed: %v", id, err)
		}
		return err
	}

	s.invalidator.Invalidate(ctx, cache.KeyBookingsList, cache.KeyConsultationsList)

	if wasAccepted {
		// специалисту сообщаем, что слот снова свободен
		if consultation, err := s.consultationRepo.GetByID(ctx, consultationID, false); err == nil {
			s.notifier.NotifyAsync(notifyservice.EventBookingCancelled, consultation.SpecialistID, id, reason)
		}
	}

	s.logger.Info("Cancel: booking id=%d cancelled, wasAccepted=%t", id, wasAccepted)
	return nil
}

// UpdateDescription изменяет описание заявки
// Доступно только автору заявки, пока заявка не в терминальном статусе
func (s *Service) UpdateDescription(ctx context.Context, id int64, identity domain.Identity, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateDescription: booking id=%d by user=%d", id, identity.UserID)

	if len([]rune(req.Description)) > domain.MaxDescriptionLength {
		return nil, fmt.Errorf("%w: description too long", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: UpdateDescription - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != identity.UserID {
		return nil, ErrAccessDenied
	}

	if booking.IsTerminal() {
		return nil, ErrCannotUpdate
	}

	if err := s.bookingRepo.UpdateDescription(ctx, id, req.Description); err != nil {
		return nil, fmt.Errorf("%w: UpdateDescription - repository error: %v", ErrInternal, err)
	}

	booking.Description = req.Description
	s.invalidator.Invalidate(ctx, cache.KeyBookingsList)

	return models.FromDomainBooking(booking), nil
}

// checkAccess проверяет, что пользователь имеет доступ к заявке:
// автор заявки, специалист-владелец консультации или администратор
func (s *Service) checkAccess(ctx context.Context, booking *domain.Booking, identity domain.Identity) error {
	if identity.IsAdmin || booking.UserID == identity.UserID {
		return nil
	}

	if identity.IsSpecialist {
		consultation, err := s.consultationRepo.GetByID(ctx, booking.ConsultationID, false)
		if err != nil {
			return fmt.Errorf("%w: checkAccess - consultation fetch: %v", ErrInternal, err)
		}
		if consultation.SpecialistID == identity.UserID {
			return nil
		}
	}

	return ErrAccessDenied
}
