package block_user

import (
	"context"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
)

type UsersService interface {
	Block(ctx context.Context, identity domain.Identity, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
