package models

import (
	"errors"
	"time"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе заявки
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос на получение списка заявок
type ListBookingsRequest struct {
	UserID         *int64  `json:"userId,omitempty"`
	ConsultationID *int64  `json:"consultationId,omitempty"`
	Status         *string `json:"status,omitempty"`
	Archived       *bool   `json:"archived,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		UserID:         r.UserID,
		ConsultationID: r.ConsultationID,
		Archived:       r.Archived,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateBookingRequest запрос на изменение описания заявки
type UpdateBookingRequest struct {
	Description string `json:"description"`
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	switch status {
	case domain.BookingStatusPending, domain.BookingStatusCancelled,
		domain.BookingStatusAccepted, domain.BookingStatusCompleted:
		return status, nil
	}
	return "", ErrInvalidStatus
}

// Response модели

// BookingResponse заявка во внешнем контракте
type BookingResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	ConsultationID  int64   `json:"consultationId"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
	Description     string  `json:"description"`
	Archived        bool    `json:"archived"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// BookingListResponse список заявок
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует domain модель в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		ConsultationID:  b.ConsultationID,
		Status:          string(b.Status),
		RejectionReason: b.RejectionReason,
		Description:     b.Description,
		Archived:        b.Archived,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainBookingList конвертирует список domain моделей в response
func FromDomainBookingList(list []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]*BookingResponse, 0, len(list)),
		Total:    len(list),
	}
	for _, b := range list {
		resp.Bookings = append(resp.Bookings, FromDomainBooking(b))
	}
	return resp
}
