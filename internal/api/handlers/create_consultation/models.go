package create_consultation

import (
	"time"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	createConsultation "github.com/vkorolev/CPS-ConsultationService/internal/usecase/create_consultation"
)

// CreateConsultationRequest HTTP запрос на создание консультации
type CreateConsultationRequest struct {
	TimeSelection string  `json:"timeSelection"`
	StartTime     string  `json:"startTime"`
	Price         float64 `json:"price"`
	Description   string  `json:"description,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateConsultationRequest) ToUseCaseRequest(specialistID int64) *createConsultation.Request {
	return &createConsultation.Request{
		SpecialistID:  specialistID,
		TimeSelection: r.TimeSelection,
		StartTime:     r.StartTime,
		Price:         r.Price,
		Description:   r.Description,
	}
}

// CreateConsultationResponse HTTP ответ с созданной консультацией
type CreateConsultationResponse struct {
	ID            int64   `json:"id"`
	SpecialistID  int64   `json:"specialistId"`
	TimeSelection string  `json:"timeSelection"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Price         float64 `json:"price"`
	Description   string  `json:"description"`
	Booking       bool    `json:"booking"`
	Archived      bool    `json:"archived"`
	CreatedAt     string  `json:"createdAt"`
}

// FromUseCaseResponse конвертирует результат use case в HTTP ответ
func FromUseCaseResponse(resp *createConsultation.Response) *CreateConsultationResponse {
	return &CreateConsultationResponse{
		ID:            resp.ID,
		SpecialistID:  resp.SpecialistID,
		TimeSelection: resp.TimeSelection,
		StartTime:     resp.StartTime.Format(domain.DateTimeFormat),
		EndTime:       resp.EndTime.Format(domain.DateTimeFormat),
		Price:         resp.Price,
		Description:   resp.Description,
		Booking:       resp.Booking,
		Archived:      resp.Archived,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
