package candidates

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/internal/infra/cache"
	candidateRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/candidate"
	specialistRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/specialist"
	"github.com/vkorolev/CPS-ConsultationService/internal/integrations/notifyservice"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/candidates/models"
)

// Service сервис для работы с кандидатурами на роль специалиста
type Service struct {
	candidateRepo  CandidateRepository
	specialistRepo SpecialistRepository
	invalidator    CacheInvalidator
	notifier       Notifier
	txManager      TransactionManager
	logger         Logger
}

// NewService создает новый экземпляр сервиса кандидатур
func NewService(
	candidateRepo CandidateRepository,
	specialistRepo SpecialistRepository,
	invalidator CacheInvalidator,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		candidateRepo:  candidateRepo,
		specialistRepo: specialistRepo,
		invalidator:    invalidator,
		notifier:       notifier,
		txManager:      txManager,
		logger:         logger,
	}
}

// Apply подает кандидатуру пользователя на роль специалиста
// У пользователя может быть не более одной кандидатуры: повторная подача
// после отклонения выполняется через Reapply
func (s *Service) Apply(ctx context.Context, identity domain.Identity, req *models.ApplyRequest) (*models.CandidateResponse, error) {
	s.logger.Info("Apply: user=%d submits candidacy", identity.UserID)

	if len([]rune(req.Description)) > domain.MaxDescriptionLength {
		return nil, fmt.Errorf("%w: description too long", ErrInvalidInput)
	}

	if identity.IsSpecialist {
		return nil, ErrAlreadySpecialist
	}

	candidate, err := s.candidateRepo.Create(ctx, &domain.Candidate{
		UserID:      identity.UserID,
		Status:      domain.CandidateStatusPending,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, candidateRepo.ErrDuplicateCandidate) {
			s.logger.Warn("Apply: user=%d already has a candidacy", identity.UserID)
			return nil, ErrAlreadyApplied
		}
		s.logger.Error("Apply: repository error for user=%d: %v", identity.UserID, err)
		return nil, fmt.Errorf("%w: Apply - repository error: %v", ErrInternal, err)
	}

	s.invalidator.Invalidate(ctx, cache.KeyCandidatesList)
	s.logger.Info("Apply: candidacy id=%d created for user=%d", candidate.ID, identity.UserID)

	return models.FromDomainCandidate(candidate), nil
}

// Status возвращает кандидатуру пользователя
func (s *Service) Status(ctx context.Context, userID int64) (*models.CandidateResponse, error) {
	candidate, err := s.candidateRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, candidateRepo.ErrCandidateNotFound) {
			return nil, ErrCandidateNotFound
		}
		s.logger.Error("Status: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Status - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCandidate(candidate), nil
}

// List возвращает список кандидатур с фильтрацией по статусу
// Доступно только администратору
func (s *Service) List(ctx context.Context, identity domain.Identity, req *models.ListCandidatesRequest) (*models.CandidateListResponse, error) {
	if !identity.IsAdmin {
		return nil, ErrAccessDenied
	}

	status, err := req.ToDomainStatus()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	candidates, err := s.candidateRepo.List(ctx, status)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCandidateList(candidates), nil
}

// Approve одобряет кандидатуру и создает профиль специалиста
// Выполняется в транзакции: кандидатура и профиль меняются атомарно
func (s *Service) Approve(ctx context.Context, identity domain.Identity, userID int64) error {
	s.logger.Info("Approve: candidacy of user=%d by admin=%d", userID, identity.UserID)

	if !identity.IsAdmin {
		return ErrAccessDenied
	}

	var description string

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		candidate, err := s.candidateRepo.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, candidateRepo.ErrCandidateNotFound) {
				return ErrCandidateNotFound
			}
			return fmt.Errorf("%w: Approve - repository error: %v", ErrInternal, err)
		}

		if !candidate.IsPending() {
			return ErrNotPending
		}

		description = candidate.Description

		if err := s.candidateRepo.Approve(ctx, userID); err != nil {
			return fmt.Errorf("%w: Approve - repository error: %v", ErrInternal, err)
		}

		if _, err := s.specialistRepo.Create(ctx, &domain.Specialist{
			UserID:      userID,
			Description: description,
			IsActive:    true,
		}); err != nil {
			if errors.Is(err, specialistRepo.ErrDuplicateSpecialist) {
				return ErrAlreadySpecialist
			}
			return fmt.Errorf("%w: Approve - specialist create: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCandidateNotFound) || errors.Is(err, ErrNotPending) || errors.Is(err, ErrAlreadySpecialist) {
			s.logger.Warn("Approve: candidacy of user=%d rejected: %v", userID, err)
		} else {
			s.logger.Error("Approve: candidacy of user=%d failed: %v", userID, err)
		}
		return err
	}

	s.invalidator.Invalidate(ctx, cache.KeyCandidatesList, cache.KeySpecialistsList)
	s.notifier.NotifyAsync(notifyservice.EventCandidacyApproved, userID, userID, "")

	s.logger.Info("Approve: user=%d is now a specialist", userID)
	return nil
}

// Reject отклоняет кандидатуру с указанием причины
func (s *Service) Reject(ctx context.Context, identity domain.Identity, userID int64, req *models.RejectRequest) error {
	s.logger.Info("Reject: candidacy of user=%d by admin=%d", userID, identity.UserID)

	if !identity.IsAdmin {
		return ErrAccessDenied
	}

	if req.Reason == "" {
		return fmt.Errorf("%w: rejection reason is required", ErrInvalidInput)
	}
	if len([]rune(req.Reason)) > domain.MaxRejectionReasonLength {
		return fmt.Errorf("%w: rejection reason too long", ErrInvalidInput)
	}

	candidate, err := s.candidateRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, candidateRepo.ErrCandidateNotFound) {
			return ErrCandidateNotFound
		}
		return fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
	}

	if !candidate.IsPending() {
		return ErrNotPending
	}

	if err := s.candidateRepo.Cancel(ctx, userID, req.Reason); err != nil {
		return fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
	}

	s.invalidator.Invalidate(ctx, cache.KeyCandidatesList)
	s.notifier.NotifyAsync(notifyservice.EventCandidacyRejected, userID, userID, req.Reason)

	s.logger.Info("Reject: candidacy of user=%d rejected", userID)
	return nil
}

// Reapply повторно подает отклоненную кандидатуру
// Кандидатура возвращается в pending, причина отклонения очищается
func (s *Service) Reapply(ctx context.Context, identity domain.Identity, req *models.ApplyRequest) (*models.CandidateResponse, error) {
	s.logger.Info("Reapply: user=%d resubmits candidacy", identity.UserID)

	if len([]rune(req.Description)) > domain.MaxDescriptionLength {
		return nil, fmt.Errorf("%w: description too long", ErrInvalidInput)
	}

	candidate, err := s.candidateRepo.GetByUserID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, candidateRepo.ErrCandidateNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("%w: Reapply - repository error: %v", ErrInternal, err)
	}

	if !candidate.IsCancelled() {
		return nil, ErrNotRejected
	}

	if err := s.candidateRepo.Reapply(ctx, identity.UserID, req.Description); err != nil {
		return nil, fmt.Errorf("%w: Reapply - repository error: %v", ErrInternal, err)
	}

	s.invalidator.Invalidate(ctx, cache.KeyCandidatesList)
	s.logger.Info("Reapply: candidacy of user=%d is pending again", identity.UserID)

	updated, err := s.candidateRepo.GetByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: Reapply - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCandidate(updated), nil
}
