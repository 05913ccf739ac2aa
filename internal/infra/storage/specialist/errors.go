package specialist

import "errors"

var (
	// ErrSpecialistNotFound возвращается, когда специалист не найден
	ErrSpecialistNotFound = errors.New("specialist.repository: specialist not found")

	// ErrDuplicateSpecialist возвращается при попытке создать второй профиль для пользователя
	ErrDuplicateSpecialist = errors.New("specialist.repository: specialist already exists for user")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("specialist.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("specialist.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("specialist.repository: failed to scan row")
)
