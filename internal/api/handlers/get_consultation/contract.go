package get_consultation

import (
	"context"

	"github.com/vkorolev/CPS-ConsultationService/internal/service/consultations/models"
)

type ConsultationsService interface {
	GetByID(ctx context.Context, id int64) (*models.ConsultationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
