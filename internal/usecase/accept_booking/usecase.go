package accept_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/internal/infra/cache"
	bookingRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/booking"
	"github.com/vkorolev/CPS-ConsultationService/internal/integrations/notifyservice"
)

// UseCase use case для подтверждения заявки специалистом
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

// Execute выполняет use case подтверждения заявки
// Весь каскад атомарен: подтверждение заявки, отмена конкурирующих
// pending-заявок с системной причиной и установка брони на консультацию
// фиксируются одной сериализуемой транзакцией
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AcceptBooking: booking=%d by user=%d", req.BookingID, req.Identity.UserID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	var (
		acceptedUserID int64
		consultationID int64
		cancelledUsers []int64
	)

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 1. Получаем заявку с блокировкой строки
		booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID, true)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: booking fetch: %v", ErrInternal, err)
		}

		// 2. Получаем консультацию с блокировкой строки
		// Отсутствие консультации у существующей заявки - нарушение
		// целостности данных, а не пользовательская ошибка
		consultation, err := uc.consultationRepo.GetByID(ctx, booking.ConsultationID, true)
		if err != nil {
			return fmt.Errorf("%w: consultation fetch: %v", ErrInternal, err)
		}

		// 3. Подтверждать может только специалист-владелец или администратор
		if consultation.SpecialistID != req.Identity.UserID && !req.Identity.IsAdmin {
			return ErrAccessDenied
		}

		// 4. Guard-проверки состояния
		if !booking.CanBeAccepted() {
			return ErrNotPending
		}
		if consultation.Archived {
			return ErrConsultationArchived
		}
		if consultation.Booking {
			return ErrConsultationBooked
		}

		// 5. Подтверждаем заявку
		if err := uc.bookingRepo.UpdateStatus(ctx, booking.ID, domain.BookingStatusAccepted); err != nil {
			return fmt.Errorf("%w: accept booking: %v", ErrInternal, err)
		}

		// 6. Каскадно отменяем конкурирующие pending-заявки
		pending := domain.BookingStatusPending
		siblings, err := uc.bookingRepo.ListByConsultation(ctx, booking.ConsultationID, &pending)
		if err != nil {
			return fmt.Errorf("%w: siblings fetch: %v", ErrInternal, err)
		}

		for _, sibling := range siblings {
			if sibling.ID == booking.ID {
				continue
			}
			if err := uc.bookingRepo.Cancel(ctx, sibling.ID, domain.ReasonBookedByAnother); err != nil {
				return fmt.Errorf("%w: sibling cascade: %v", ErrInternal, err)
			}
			cancelledUsers = append(cancelledUsers, sibling.UserID)
		}

		// 7. Устанавливаем бронь на консультацию
		if err := uc.consultationRepo.SetBooking(ctx, booking.ConsultationID, true); err != nil {
			return fmt.Errorf("%w: set booking flag: %v", ErrInternal, err)
		}

		acceptedUserID = booking.UserID
		consultationID = booking.ConsultationID

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound),
			errors.Is(err, ErrAccessDenied),
			errors.Is(err, ErrNotPending),
			errors.Is(err, ErrConsultationArchived),
			errors.Is(err, ErrConsultationBooked):
			uc.logger.Warn("AcceptBooking: booking=%d rejected: %v", req.BookingID, err)
		default:
			uc.logger.Error("AcceptBooking: transaction failed: %v", err)
		}
		return nil, err
	}

	uc.invalidator.Invalidate(ctx, cache.KeyBookingsList, cache.KeyConsultationsList)

	uc.notifier.NotifyAsync(notifyservice.EventBookingAccepted, acceptedUserID, req.BookingID, "")
	for _, userID := range cancelledUsers {
		uc.notifier.NotifyAsync(notifyservice.EventBookingCancelled, userID, consultationID, domain.ReasonBookedByAnother)
	}

	uc.logger.Info("AcceptBooking: booking=%d accepted, %d siblings cancelled", req.BookingID, len(cancelledUsers))

	return &Response{
		BookingID:         req.BookingID,
		ConsultationID:    consultationID,
		Status:            string(domain.BookingStatusAccepted),
		CancelledSiblings: len(cancelledUsers),
	}, nil
}
