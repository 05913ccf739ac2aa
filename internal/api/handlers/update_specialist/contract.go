package update_specialist

import (
	"context"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/specialists/models"
)

type SpecialistsService interface {
	UpdateDescription(ctx context.Context, userID int64, identity domain.Identity, req *models.UpdateSpecialistRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
