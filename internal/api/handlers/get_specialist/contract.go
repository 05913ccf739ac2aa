package get_specialist

import (
	"context"

	"github.com/vkorolev/CPS-ConsultationService/internal/service/specialists/models"
)

type SpecialistsService interface {
	GetByUserID(ctx context.Context, userID int64) (*models.SpecialistResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
