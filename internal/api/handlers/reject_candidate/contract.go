package reject_candidate

import (
	"context"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/candidates/models"
)

type CandidatesService interface {
	Reject(ctx context.Context, identity domain.Identity, userID int64, req *models.RejectRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
