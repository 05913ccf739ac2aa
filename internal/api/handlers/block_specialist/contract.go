package block_specialist

import (
	"context"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
)

type SpecialistsService interface {
	Block(ctx context.Context, identity domain.Identity, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
