package candidates

import "errors"

var (
	// ErrCandidateNotFound возвращается, когда кандидатура не найдена
	ErrCandidateNotFound = errors.New("candidate not found")

	// ErrAlreadyApplied возвращается при повторной подаче кандидатуры
	ErrAlreadyApplied = errors.New("candidacy already submitted")

	// ErrAlreadySpecialist возвращается, когда пользователь уже специалист
	ErrAlreadySpecialist = errors.New("user is already a specialist")

	// ErrNotPending возвращается, когда операция требует кандидатуру
	// в статусе pending
	ErrNotPending = errors.New("candidacy is not pending")

	// ErrNotRejected возвращается при попытке повторной подачи, когда
	// кандидатура не была отклонена
	ErrNotRejected = errors.New("candidacy is not rejected")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
