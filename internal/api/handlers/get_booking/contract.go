package get_booking

import (
	"context"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/bookings/models"
)

type BookingsService interface {
	GetByID(ctx context.Context, id int64, identity domain.Identity) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
