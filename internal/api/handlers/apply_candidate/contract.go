package apply_candidate

import (
	"context"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/candidates/models"
)

type CandidatesService interface {
	Apply(ctx context.Context, identity domain.Identity, req *models.ApplyRequest) (*models.CandidateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
