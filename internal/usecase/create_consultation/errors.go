package create_consultation

import "errors"

var (
	// ErrNotSpecialist возвращается, когда пользователь не является специалистом
	ErrNotSpecialist = errors.New("create_consultation: user is not a specialist")

	// ErrSpecialistBlocked возвращается, когда специалист заблокирован
	ErrSpecialistBlocked = errors.New("create_consultation: specialist is blocked")

	// ErrTimeConflict возвращается, когда интервал пересекается с другой
	// консультацией специалиста
	ErrTimeConflict = errors.New("create_consultation: time conflicts with an existing consultation")

	// ErrStartTimeInPast возвращается, когда время начала уже наступило
	ErrStartTimeInPast = errors.New("create_consultation: start time is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_consultation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_consultation: internal error")
)
