package update_consultation

import (
	"context"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/consultations/models"
)

type ConsultationsService interface {
	Update(ctx context.Context, id int64, identity domain.Identity, req *models.UpdateConsultationRequest) (*models.ConsultationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
