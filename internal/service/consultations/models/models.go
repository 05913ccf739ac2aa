package models

import (
	"errors"
	"time"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
)

var (
	// ErrInvalidTimeSelection возвращается при некорректной длительности
	ErrInvalidTimeSelection = errors.New("invalid time selection")
)

// Request модели

// UpdateConsultationRequest запрос на изменение консультации
type UpdateConsultationRequest struct {
	TimeSelection *string  `json:"timeSelection,omitempty"`
	StartTime     *string  `json:"startTime,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Description   *string  `json:"description,omitempty"`
}

// ListConsultationsRequest запрос на получение списка консультаций
type ListConsultationsRequest struct {
	SpecialistID  *int64   `json:"specialistId,omitempty"`
	Archived      *bool    `json:"archived,omitempty"`
	Booking       *bool    `json:"booking,omitempty"`
	PriceFrom     *float64 `json:"priceFrom,omitempty"`
	PriceTo       *float64 `json:"priceTo,omitempty"`
	StartFrom     *string  `json:"startFrom,omitempty"`
	StartTo       *string  `json:"startTo,omitempty"`
	TimeSelection *string  `json:"timeSelection,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListConsultationsRequest) ToDomainFilter() (domain.ConsultationsFilter, error) {
	filter := domain.ConsultationsFilter{
		SpecialistID: r.SpecialistID,
		Archived:     r.Archived,
		Booking:      r.Booking,
		PriceFrom:    r.PriceFrom,
		PriceTo:      r.PriceTo,
	}

	if r.StartFrom != nil {
		t, err := time.Parse(domain.DateTimeFormat, *r.StartFrom)
		if err != nil {
			return filter, err
		}
		filter.StartFrom = &t
	}

	if r.StartTo != nil {
		t, err := time.Parse(domain.DateTimeFormat, *r.StartTo)
		if err != nil {
			return filter, err
		}
		filter.StartTo = &t
	}

	if r.TimeSelection != nil {
		ts := domain.TimeSelection(*r.TimeSelection)
		if !ts.IsValid() {
			return filter, ErrInvalidTimeSelection
		}
		filter.TimeSelection = &ts
	}

	return filter, nil
}

// Response модели

// ConsultationResponse консультация во внешнем контракте
type ConsultationResponse struct {
	ID            int64   `json:"id"`
	SpecialistID  int64   `json:"specialistId"`
	TimeSelection string  `json:"timeSelection"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Booking       bool    `json:"booking"`
	Price         float64 `json:"price"`
	Description   string  `json:"description"`
	Archived      bool    `json:"archived"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ConsultationListResponse список консультаций
type ConsultationListResponse struct {
	Consultations []*ConsultationResponse `json:"consultations"`
	Total         int                     `json:"total"`
}

// FromDomainConsultation конвертирует domain модель в response
func FromDomainConsultation(c *domain.Consultation) *ConsultationResponse {
	return &ConsultationResponse{
		ID:            c.ID,
		SpecialistID:  c.SpecialistID,
		TimeSelection: string(c.TimeSelection),
		StartTime:     c.StartTime.Format(domain.DateTimeFormat),
		EndTime:       c.EndTime.Format(domain.DateTimeFormat),
		Booking:       c.Booking,
		Price:         c.Price,
		Description:   c.Description,
		Archived:      c.Archived,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     c.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainConsultationList конвертирует список domain моделей в response
func FromDomainConsultationList(list []*domain.Consultation) *ConsultationListResponse {
	resp := &ConsultationListResponse{
		Consultations: make([]*ConsultationResponse, 0, len(list)),
		Total:         len(list),
	}
	for _, c := range list {
		resp.Consultations = append(resp.Consultations, FromDomainConsultation(c))
	}
	return resp
}
