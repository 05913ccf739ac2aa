package models

import (
	"errors"
	"time"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе кандидатуры
	ErrInvalidStatus = errors.New("invalid candidate status")
)

// Request модели

// ApplyRequest запрос на подачу кандидатуры
type ApplyRequest struct {
	Description string `json:"description"`
}

// RejectRequest запрос на отклонение кандидатуры
type RejectRequest struct {
	Reason string `json:"reason"`
}

// ListCandidatesRequest запрос на получение списка кандидатур
type ListCandidatesRequest struct {
	Status *string `json:"status,omitempty"`
}

// ToDomainStatus конвертирует фильтр статуса в domain
func (r *ListCandidatesRequest) ToDomainStatus() (*domain.CandidateStatus, error) {
	if r.Status == nil {
		return nil, nil
	}

	status := domain.CandidateStatus(*r.Status)
	switch status {
	case domain.CandidateStatusPending, domain.CandidateStatusCancelled, domain.CandidateStatusApproved:
		return &status, nil
	}
	return nil, ErrInvalidStatus
}

// Response модели

// CandidateResponse кандидатура во внешнем контракте
type CandidateResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	Status          string  `json:"status"`
	Description     string  `json:"description"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// CandidateListResponse список кандидатур
type CandidateListResponse struct {
	Candidates []*CandidateResponse `json:"candidates"`
	Total      int                  `json:"total"`
}

// FromDomainCandidate конвертирует domain модель в response
func FromDomainCandidate(c *domain.Candidate) *CandidateResponse {
	return &CandidateResponse{
		ID:              c.ID,
		UserID:          c.UserID,
		Status:          string(c.Status),
		Description:     c.Description,
		RejectionReason: c.RejectionReason,
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       c.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainCandidateList конвертирует список domain моделей в response
func FromDomainCandidateList(list []*domain.Candidate) *CandidateListResponse {
	resp := &CandidateListResponse{
		Candidates: make([]*CandidateResponse, 0, len(list)),
		Total:      len(list),
	}
	for _, c := range list {
		resp.Candidates = append(resp.Candidates, FromDomainCandidate(c))
	}
	return resp
}
