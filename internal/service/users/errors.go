package users

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrAlreadyBlocked возвращается при повторной блокировке
	ErrAlreadyBlocked = errors.New("user is already blocked")

	// ErrNotBlocked возвращается при разблокировке активного пользователя
	ErrNotBlocked = errors.New("user is not blocked")

	// ErrAlreadyVerified возвращается, когда email уже подтвержден
	ErrAlreadyVerified = errors.New("email is already verified")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
