package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/internal/infra/cache"
	consultationRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/consultation"
	"github.com/vkorolev/CPS-ConsultationService/internal/integrations/notifyservice"
)

// UseCase use case для создания заявки на консультацию
type UseCase struct {
	bookingRepo      BookingRepository
	consultationRepo ConsultationRepository
	invalidator      CacheInvalidator
	notifier         Notifier
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	consultationRepo ConsultationRepository,
	invalidator CacheInvalidator,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		consultationRepo: consultationRepo,
		invalidator:      invalidator,
		notifier:         notifier,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute выполняет use case создания заявки
// Проверки и вставка выполняются в одной сериализуемой транзакции:
// у пользователя не может появиться двух активных заявок на одну
// консультацию даже при конкурентных запросах
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, consultation=%d", req.UserID, req.ConsultationID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var (
		booking      *domain.Booking
		specialistID int64
	)

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 2. Получаем консультацию с блокировкой строки
		consultation, err := uc.consultationRepo.GetByID(ctx, req.ConsultationID, true)
		if err != nil {
			if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
				return ErrConsultationNotFound
			}
			return fmt.Errorf("%w: consultation fetch: %v", ErrInternal, err)
		}

		// 3. Заявки принимаются только на свободные незаархивированные слоты
		if consultation.Archived {
			return ErrConsultationArchived
		}
		if consultation.Booking {
			return ErrConsultationBooked
		}
		if consultation.SpecialistID == req.UserID {
			return ErrOwnConsultation
		}

		// 4. Не более одной активной заявки пользователя на консультацию
		exists, err := uc.bookingRepo.HasActiveByUserAndConsultation(ctx, req.UserID, req.ConsultationID)
		if err != nil {
			return fmt.Errorf("%w: duplicate check: %v", ErrInternal, err)
		}
		if exists {
			return ErrDuplicateBooking
		}

		// 5. Создаем заявку в статусе pending
		created, err := uc.bookingRepo.Create(ctx, &domain.Booking{
			UserID:         req.UserID,
			ConsultationID: req.ConsultationID,
			Status:         domain.BookingStatusPending,
			Description:    req.Description,
		})
		if err != nil {
			return fmt.Errorf("%w: create booking: %v", ErrInternal, err)
		}

		booking = created
		specialistID = consultation.SpecialistID

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrConsultationNotFound),
			errors.Is(err, ErrConsultationArchived),
			errors.Is(err, ErrConsultationBooked),
			errors.Is(err, ErrOwnConsultation),
			errors.Is(err, ErrDuplicateBooking):
			uc.logger.Warn("CreateBooking: user=%d, consultation=%d rejected: %v", req.UserID, req.ConsultationID, err)
		default:
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
		}
		return nil, err
	}

	uc.invalidator.Invalidate(ctx, cache.KeyBookingsList)
	uc.notifier.NotifyAsync(notifyservice.EventBookingCreated, specialistID, booking.ID, "")

	uc.logger.Info("CreateBooking: booking id=%d created for user=%d", booking.ID, req.UserID)

	return &Response{
		ID:             booking.ID,
		UserID:         booking.UserID,
		ConsultationID: booking.ConsultationID,
		Status:         string(booking.Status),
		Description:    booking.Description,
		CreatedAt:      booking.CreatedAt,
		UpdatedAt:      booking.UpdatedAt,
	}, nil
}
