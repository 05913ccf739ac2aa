package get_candidate

import (
	"context"

	"github.com/vkorolev/CPS-ConsultationService/internal/service/candidates/models"
)

type CandidatesService interface {
	Status(ctx context.Context, userID int64) (*models.CandidateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
