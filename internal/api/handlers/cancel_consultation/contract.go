package cancel_consultation

import (
	"context"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
)

type ConsultationsService interface {
	Cancel(ctx context.Context, id int64, identity domain.Identity, reason string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
