package create_booking

import (
	"time"

	createBooking "github.com/vkorolev/CPS-ConsultationService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP запрос на создание заявки
type CreateBookingRequest struct {
	ConsultationID int64  `json:"consultationId"`
	Description    string `json:"description,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID:         userID,
		ConsultationID: r.ConsultationID,
		Description:    r.Description,
	}
}

// CreateBookingResponse HTTP ответ с созданной заявкой
type CreateBookingResponse struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"userId"`
	ConsultationID int64  `json:"consultationId"`
	Status         string `json:"status"`
	Description    string `json:"description"`
	CreatedAt      string `json:"createdAt"`
}

// FromUseCaseResponse конвертирует результат use case в HTTP ответ
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:             resp.ID,
		UserID:         resp.UserID,
		ConsultationID: resp.ConsultationID,
		Status:         resp.Status,
		Description:    resp.Description,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
	}
}
