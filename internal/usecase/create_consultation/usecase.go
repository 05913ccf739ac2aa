package create_consultation

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/internal/infra/cache"
	specialistRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/specialist"
)

// UseCase use case для создания консультации
type UseCase struct {
	consultationRepo ConsultationRepository
	specialistRepo   SpecialistRepository
	scheduler        Scheduler
	invalidator      CacheInvalidator
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	consultationRepo ConsultationRepository,
	specialistRepo SpecialistRepository,
	scheduler Scheduler,
	invalidator CacheInvalidator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		consultationRepo: consultationRepo,
		specialistRepo:   specialistRepo,
		scheduler:        scheduler,
		invalidator:      invalidator,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания консультации
// Проверка пересечений и вставка выполняются в одной сериализуемой
// транзакции: два пересекающихся слота не могут быть созданы даже
// конкурентными запросами
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateConsultation: specialist=%d, timeSelection=%s, startTime=%s",
		req.SpecialistID, req.TimeSelection, req.StartTime)

	// 1. Валидация входных данных
	startTime, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateConsultation: validation failed: %v", err)
		return nil, err
	}

	// 2. Время начала не должно быть в прошлом
	if !startTime.After(uc.timeProvider.Now()) {
		uc.logger.Warn("CreateConsultation: start time %s is in the past", req.StartTime)
		return nil, ErrStartTimeInPast
	}

	// 3. Проверяем, что специалист существует и не заблокирован
	specialist, err := uc.specialistRepo.GetByUserID(ctx, req.SpecialistID)
	if err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			uc.logger.Warn("CreateConsultation: user=%d is not a specialist", req.SpecialistID)
			return nil, ErrNotSpecialist
		}
		uc.logger.Error("CreateConsultation: failed to get specialist user=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: failed to get specialist: %v", ErrInternal, err)
	}

	if !specialist.IsActive {
		uc.logger.Warn("CreateConsultation: specialist user=%d is blocked", req.SpecialistID)
		return nil, ErrSpecialistBlocked
	}

	// 4. Вычисляем конец интервала по классу длительности
	timeSelection := domain.TimeSelection(req.TimeSelection)
	endTime := startTime.Add(timeSelection.Duration())

	consultation := &domain.Consultation{
		SpecialistID:  req.SpecialistID,
		TimeSelection: timeSelection,
		StartTime:     startTime,
		EndTime:       endTime,
		Price:         req.Price,
		Description:   req.Description,
	}

	// 5. Сериализуемая транзакция: проверка пересечений + вставка
	// Два пересекающихся слота не создадутся даже конкурентными запросами
	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		others, err := uc.consultationRepo.ListActiveBySpecialist(ctx, req.SpecialistID)
		if err != nil {
			return fmt.Errorf("%w: overlap check: %v", ErrInternal, err)
		}
		for _, other := range others {
			if other.Overlaps(startTime, endTime) {
				return ErrTimeConflict
			}
		}

		created, err := uc.consultationRepo.Create(ctx, consultation)
		if err != nil {
			return fmt.Errorf("%w: create consultation: %v", ErrInternal, err)
		}
		consultation = created

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrTimeConflict) {
			uc.logger.Warn("CreateConsultation: specialist=%d has a conflicting consultation", req.SpecialistID)
		} else {
			uc.logger.Error("CreateConsultation: transaction failed: %v", err)
		}
		return nil, err
	}

	// 6. Ставим задачу авто-архивации на время начала консультации
	// Постановка best-effort: сбой планировщика не откатывает созданный слот
	taskID, err := uc.scheduler.Schedule(ctx, consultation.ID, consultation.StartTime)
	if err != nil {
		uc.logger.Error("CreateConsultation: failed to schedule auto-archive for consultation id=%d: %v", consultation.ID, err)
	} else if err := uc.consultationRepo.SetTaskID(ctx, consultation.ID, &taskID); err != nil {
		uc.logger.Error("CreateConsultation: failed to save task id for consultation id=%d: %v", consultation.ID, err)
	} else {
		consultation.TaskID = &taskID
	}

	uc.invalidator.Invalidate(ctx, cache.KeyConsultationsList)
	uc.logger.Info("CreateConsultation: consultation id=%d created for specialist=%d", consultation.ID, req.SpecialistID)

	return &Response{
		ID:            consultation.ID,
		SpecialistID:  consultation.SpecialistID,
		TimeSelection: string(consultation.TimeSelection),
		StartTime:     consultation.StartTime,
		EndTime:       consultation.EndTime,
		Price:         consultation.Price,
		Description:   consultation.Description,
		Booking:       consultation.Booking,
		Archived:      consultation.Archived,
		CreatedAt:     consultation.CreatedAt,
		UpdatedAt:     consultation.UpdatedAt,
	}, nil
}
