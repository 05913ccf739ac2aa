package consultations

import "errors"

var (
	// ErrConsultationNotFound возвращается, когда консультация не найдена
	ErrConsultationNotFound = errors.New("consultation not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrTimeConflict возвращается, когда новый интервал пересекается
	// с другой консультацией специалиста
	ErrTimeConflict = errors.New("consultation time conflicts with an existing one")

	// ErrCannotUpdate возвращается при попытке изменить забронированную
	// или заархивированную консультацию
	ErrCannotUpdate = errors.New("consultation cannot be updated")

	// ErrStartTimeInPast возвращается при попытке перенести консультацию
	// на уже наступившее время
	ErrStartTimeInPast = errors.New("start time is in the past")

	// ErrCannotCancel возвращается при попытке отменить заархивированную консультацию
	ErrCannotCancel = errors.New("consultation cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
