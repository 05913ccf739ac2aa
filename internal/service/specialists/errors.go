package specialists

import "errors"

var (
	// ErrSpecialistNotFound возвращается, когда специалист не найден
	ErrSpecialistNotFound = errors.New("specialist not found")

	// ErrAlreadyBlocked возвращается при повторной блокировке
	ErrAlreadyBlocked = errors.New("specialist is already blocked")

	// ErrNotBlocked возвращается при разблокировке активного специалиста
	ErrNotBlocked = errors.New("specialist is not blocked")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
