package list_consultations

import (
	"context"

	"github.com/vkorolev/CPS-ConsultationService/internal/service/consultations/models"
)

type ConsultationsService interface {
	List(ctx context.Context, req *models.ListConsultationsRequest) (*models.ConsultationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
