package models

import (
	"time"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
)

// Request модели

// UpdateSpecialistRequest запрос на изменение профиля специалиста
type UpdateSpecialistRequest struct {
	Description string `json:"description"`
}

// ListSpecialistsRequest запрос на получение списка специалистов
type ListSpecialistsRequest struct {
	IsActive *bool `json:"isActive,omitempty"`
}

// Response модели

// SpecialistResponse профиль специалиста во внешнем контракте
type SpecialistResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// SpecialistListResponse список специалистов
type SpecialistListResponse struct {
	Specialists []*SpecialistResponse `json:"specialists"`
	Total       int                   `json:"total"`
}

// FromDomainSpecialist конвертирует domain модель в response
func FromDomainSpecialist(s *domain.Specialist) *SpecialistResponse {
	return &SpecialistResponse{
		ID:          s.ID,
		UserID:      s.UserID,
		Description: s.Description,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainSpecialistList конвертирует список domain моделей в response
func FromDomainSpecialistList(list []*domain.Specialist) *SpecialistListResponse {
	resp := &SpecialistListResponse{
		Specialists: make([]*SpecialistResponse, 0, len(list)),
		Total:       len(list),
	}
	for _, s := range list {
		resp.Specialists = append(resp.Specialists, FromDomainSpecialist(s))
	}
	return resp
}
