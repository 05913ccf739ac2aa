package accept_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = errors.New("accept_booking: booking not found")

	// ErrAccessDenied возвращается, когда заявку подтверждает не владелец
	// консультации
	ErrAccessDenied = errors.New("accept_booking: access denied")

	// ErrNotPending возвращается, когда заявка не в статусе pending
	ErrNotPending = errors.New("accept_booking: booking is not pending")

	// ErrConsultationArchived возвращается, когда консультация заархивирована
	ErrConsultationArchived = errors.New("accept_booking: consultation is archived")

	// ErrConsultationBooked возвращается, когда по консультации уже
	// подтверждена другая заявка
	ErrConsultationBooked = errors.New("accept_booking: consultation is already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("accept_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("accept_booking: internal error")
)
