package create_booking

import "errors"

var (
	// ErrConsultationNotFound возвращается, когда консультация не найдена
	ErrConsultationNotFound = errors.New("create_booking: consultation not found")

	// ErrConsultationArchived возвращается, когда консультация заархивирована
	ErrConsultationArchived = errors.New("create_booking: consultation is archived")

	// ErrConsultationBooked возвращается, когда консультация уже забронирована
	ErrConsultationBooked = errors.New("create_booking: consultation is already booked")

	// ErrOwnConsultation возвращается при попытке забронировать собственный слот
	ErrOwnConsultation = errors.New("create_booking: cannot book own consultation")

	// ErrDuplicateBooking возвращается, когда у пользователя уже есть
	// активная заявка на эту консультацию
	ErrDuplicateBooking = errors.New("create_booking: active booking already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
