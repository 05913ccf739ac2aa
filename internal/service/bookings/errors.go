package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда заявка уже в терминальном статусе
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCannotUpdate возвращается при попытке изменить заявку
	// в терминальном статусе
	ErrCannotUpdate = errors.New("booking cannot be updated")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
