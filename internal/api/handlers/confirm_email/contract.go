package confirm_email

import "context"

type UsersService interface {
	ConfirmEmail(ctx context.Context, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
