package request_email_verification

import (
	"context"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
)

type UsersService interface {
	RequestEmailVerification(ctx context.Context, identity domain.Identity) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
