package consultations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/internal/infra/cache"
	consultationRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/consultation"
	"github.com/vkorolev/CPS-ConsultationService/internal/integrations/notifyservice"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/consultations/models"
)

// Service сервис для работы с консультациями
type Service struct {
	consultationRepo ConsultationRepository
	bookingRepo      BookingRepository
	scheduler        Scheduler
	invalidator      CacheInvalidator
	notifier         Notifier
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса консультаций
func NewService(
	consultationRepo ConsultationRepository,
	bookingRepo BookingRepository,
	scheduler Scheduler,
	invalidator CacheInvalidator,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		consultationRepo: consultationRepo,
		bookingRepo:      bookingRepo,
		scheduler:        scheduler,
		invalidator:      invalidator,
		notifier:         notifier,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// GetByID получает консультацию по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ConsultationResponse, error) {
	consultation, err := s.consultationRepo.GetByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
			s.logger.Warn("GetByID: consultation id=%d not found", id)
			return nil, ErrConsultationNotFound
		}
		s.logger.Error("GetByID: repository error for consultation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConsultation(consultation), nil
}

// List получает список консультаций с фильтрацией
func (s *Service) List(ctx context.Context, req *models.ListConsultationsRequest) (*models.ConsultationListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter: %v", ErrInvalidInput, err)
	}

	consultations, err := s.consultationRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d consultations", len(consultations))
	return models.FromDomainConsultationList(consultations), nil
}

// Update изменяет консультацию
// Доступно только специалисту-владельцу, пока консультация не забронирована.
// При переносе времени в сериализуемой транзакции проверяется, что новое
// начало в будущем и не пересекается с другими слотами специалиста.
// Задача авто-архивации перепланируется при каждом успешном обновлении
func (s *Service) Update(ctx context.Context, id int64, identity domain.Identity, req *models.UpdateConsultationRequest) (*models.ConsultationResponse, error) {
	s.logger.Info("Update: consultation id=%d by user=%d", id, identity.UserID)

	var updated *domain.Consultation

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 1. Получаем консультацию с блокировкой строки
		consultation, err := s.consultationRepo.GetByID(ctx, id, true)
		if err != nil {
			if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
				return ErrConsultationNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		// 2. Проверяем права доступа
		if consultation.SpecialistID != identity.UserID && !identity.IsAdmin {
			return ErrAccessDenied
		}

		// 3. Забронированную или заархивированную консультацию менять нельзя
		if !consultation.CanBeUpdated() {
			return ErrCannotUpdate
		}

		// 4. Применяем изменения
		timeChanged, err := applyUpdate(consultation, req)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 5. При переносе времени новое начало должно быть в будущем
		// и не пересекаться с другими консультациями специалиста
		if timeChanged {
			if !consultation.StartTime.After(s.timeProvider.Now()) {
				return ErrStartTimeInPast
			}

			others, err := s.consultationRepo.ListActiveBySpecialist(ctx, consultation.SpecialistID)
			if err != nil {
				return fmt.Errorf("%w: Update - overlap check: %v", ErrInternal, err)
			}
			for _, other := range others {
				if other.ID != consultation.ID && other.Overlaps(consultation.StartTime, consultation.EndTime) {
					return ErrTimeConflict
				}
			}
		}

		if err := s.consultationRepo.Update(ctx, consultation); err != nil {
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		// 6. Перепланируем задачу авто-архивации на время начала.
		// Выполняется при любом обновлении: заодно восстанавливает задачу,
		// которую не удалось поставить при создании слота
		if err := s.reschedule(ctx, consultation); err != nil {
			return err
		}

		updated = consultation
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrTimeConflict) || errors.Is(err, ErrCannotUpdate) || errors.Is(err, ErrAccessDenied) || errors.Is(err, ErrStartTimeInPast) {
			s.logger.Warn("Update: consultation id=%d rejected: %v", id, err)
		} else if !errors.Is(err, ErrConsultationNotFound) && !errors.Is(err, ErrInvalidInput) {
			s.logger.Error("Update: consultation id=%d failed: %v", id, err)
		}
		return nil, err
	}

	s.invalidator.Invalidate(ctx, cache.KeyConsultationsList)
	s.logger.Info("Update: consultation id=%d updated", id)

	return models.FromDomainConsultation(updated), nil
}

// Cancel отменяет консультацию и архивирует её
// Все активные заявки на консультацию отменяются каскадом с указанной
// причиной, запланированная задача авто-архивации снимается
func (s *Service) Cancel(ctx context.Context, id int64, identity domain.Identity, reason string) error {
	s.logger.Info("Cancel: consultation id=%d by user=%d", id, identity.UserID)

	if reason == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if len([]rune(reason)) > domain.MaxRejectionReasonLength {
		return fmt.Errorf("%w: reason too long", ErrInvalidInput)
	}

	var cancelledUsers []int64

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 1. Получаем консультацию с блокировкой строки
		consultation, err := s.consultationRepo.GetByID(ctx, id, true)
		if err != nil {
			if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
				return ErrConsultationNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// 2. Проверяем права доступа
		if consultation.SpecialistID != identity.UserID && !identity.IsAdmin {
			return ErrAccessDenied
		}

		if !consultation.CanBeCancelled() {
			return ErrCannotCancel
		}

		// 3. Каскадно отменяем все активные заявки
		bookings, err := s.bookingRepo.ListByConsultation(ctx, id, nil)
		if err != nil {
			return fmt.Errorf("%w: Cancel - bookings fetch: %v", ErrInternal, err)
		}

		for _, b := range bookings {
			if !b.IsActive() {
				continue
			}
			if err := s.bookingRepo.Cancel(ctx, b.ID, reason); err != nil {
				return fmt.Errorf("%w: Cancel - booking cascade: %v", ErrInternal, err)
			}
			cancelledUsers = append(cancelledUsers, b.UserID)
		}

		// 4. Архивируем консультацию
		if err := s.consultationRepo.SetArchived(ctx, id); err != nil {
			return fmt.Errorf("%w: Cancel - archive: %v", ErrInternal, err)
		}

		// 5. Снимаем запланированную задачу авто-архивации
		if consultation.TaskID != nil {
			if err := s.scheduler.Cancel(ctx, *consultation.TaskID); err != nil {
				// задача best-effort: воркер сам пропустит заархивированную консультацию
				s.logger.Warn("Cancel: failed to cancel task %s for consultation id=%d: %v", consultation.TaskID, id, err)
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConsultationNotFound) || errors.Is(err, ErrAccessDenied) || errors.Is(err, ErrCannotCancel) {
			s.logger.Warn("Cancel: consultation id=%d rejected: %v", id, err)
		} else {
			s.logger.Error("Cancel: consultation id=%d failed: %v", id, err)
		}
		return err
	}

	s.invalidator.Invalidate(ctx, cache.KeyConsultationsList, cache.KeyBookingsList)

	for _, userID := range cancelledUsers {
		s.notifier.NotifyAsync(notifyservice.EventConsultationCancel, userID, id, reason)
	}

	s.logger.Info("Cancel: consultation id=%d cancelled, %d bookings cascade-cancelled", id, len(cancelledUsers))
	return nil
}

// AutoArchive архивирует консультацию в момент её начала
// Метод идемпотентен: повторный вызов для уже заархивированной или
// удалённой консультации ничего не меняет. Подтверждённая заявка
// переводится в completed, оставшиеся pending-заявки отменяются
func (s *Service) AutoArchive(ctx context.Context, consultationID int64) error {
	return s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 1. Получаем консультацию с блокировкой строки
		consultation, err := s.consultationRepo.GetByID(ctx, consultationID, true)
		if err != nil {
			if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
				s.logger.Warn("AutoArchive: consultation id=%d not found, skipping", consultationID)
				return nil
			}
			return fmt.Errorf("%w: AutoArchive - repository error: %v", ErrInternal, err)
		}

		// 2. Уже заархивирована - задача сработала повторно
		if consultation.Archived {
			return nil
		}

		// 3. Завершаем подтверждённые заявки и отменяем оставшиеся pending
		bookings, err := s.bookingRepo.ListByConsultation(ctx, consultationID, nil)
		if err != nil {
			return fmt.Errorf("%w: AutoArchive - bookings fetch: %v", ErrInternal, err)
		}

		accepted := 0
		for _, b := range bookings {
			switch b.Status {
			case domain.BookingStatusAccepted:
				accepted++
				if accepted > 1 {
					s.logger.Warn("AutoArchive: consultation id=%d has more than one accepted booking", consultationID)
				}
				if err := s.bookingRepo.Complete(ctx, b.ID); err != nil {
					return fmt.Errorf("%w: AutoArchive - complete booking: %v", ErrInternal, err)
				}
			case domain.BookingStatusPending:
				if err := s.bookingRepo.Cancel(ctx, b.ID, domain.ReasonConsultationStarted); err != nil {
					return fmt.Errorf("%w: AutoArchive - cancel booking: %v", ErrInternal, err)
				}
			}
		}

		// 4. Архивируем консультацию и очищаем ссылку на задачу
		if err := s.consultationRepo.SetArchived(ctx, consultationID); err != nil {
			return fmt.Errorf("%w: AutoArchive - archive: %v", ErrInternal, err)
		}

		if err := s.consultationRepo.SetTaskID(ctx, consultationID, nil); err != nil {
			return fmt.Errorf("%w: AutoArchive - clear task: %v", ErrInternal, err)
		}

		s.invalidator.Invalidate(ctx, cache.KeyConsultationsList, cache.KeyBookingsList)
		s.logger.Info("AutoArchive: consultation id=%d archived", consultationID)

		return nil
	})
}

// reschedule снимает старую задачу авто-архивации и ставит новую
// на обновлённое время начала
func (s *Service) reschedule(ctx context.Context, consultation *domain.Consultation) error {
	if consultation.TaskID != nil {
		if err := s.scheduler.Cancel(ctx, *consultation.TaskID); err != nil {
			s.logger.Warn("reschedule: failed to cancel task %s: %v", consultation.TaskID, err)
		}
	}

	taskID, err := s.scheduler.Schedule(ctx, consultation.ID, consultation.StartTime)
	if err != nil {
		return fmt.Errorf("%w: reschedule: %v", ErrInternal, err)
	}

	if err := s.consultationRepo.SetTaskID(ctx, consultation.ID, &taskID); err != nil {
		return fmt.Errorf("%w: reschedule - save task id: %v", ErrInternal, err)
	}

	consultation.TaskID = &taskID
	return nil
}

// applyUpdate применяет частичное обновление к консультации
// Возвращает признак изменения временного интервала
func applyUpdate(c *domain.Consultation, req *models.UpdateConsultationRequest) (bool, error) {
	timeChanged := false

	startTime := c.StartTime
	timeSelection := c.TimeSelection

	if req.StartTime != nil {
		t, err := time.Parse(domain.DateTimeFormat, *req.StartTime)
		if err != nil {
			return false, fmt.Errorf("invalid startTime: %v", err)
		}
		startTime = t
		timeChanged = true
	}

	if req.TimeSelection != nil {
		ts := domain.TimeSelection(*req.TimeSelection)
		if !ts.IsValid() {
			return false, models.ErrInvalidTimeSelection
		}
		timeSelection = ts
		timeChanged = true
	}

	if timeChanged {
		c.StartTime = startTime
		c.TimeSelection = timeSelection
		c.EndTime = startTime.Add(timeSelection.Duration())
	}

	if req.Price != nil {
		if *req.Price < 0 {
			return false, fmt.Errorf("price must be non-negative")
		}
		c.Price = *req.Price
	}

	if req.Description != nil {
		if len([]rune(*req.Description)) > domain.MaxDescriptionLength {
			return false, fmt.Errorf("description too long")
		}
		c.Description = *req.Description
	}

	return timeChanged, nil
}
