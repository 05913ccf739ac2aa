package get_user

import (
	"context"

	"github.com/vkorolev/CPS-ConsultationService/internal/domain"
	"github.com/vkorolev/CPS-ConsultationService/internal/service/users/models"
)

type UsersService interface {
	GetByID(ctx context.Context, id int64, identity domain.Identity) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
