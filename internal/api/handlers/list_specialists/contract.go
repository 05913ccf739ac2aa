package list_specialists

import (
	"context"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/specialists/models"
)

type SpecialistsService interface {
	List(ctx context.Context, identity domain.Identity, req *models.ListSpecialistsRequest) (*models.SpecialistListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
